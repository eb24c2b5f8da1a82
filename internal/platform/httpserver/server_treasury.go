package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	treasuryerrors "demoday/contexts/finance/treasury-service/domain/errors"
	treasuryhttp "demoday/contexts/finance/treasury-service/transport/http"
)

func (s *Server) handleListTransfers(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeTreasuryError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}

	resp, err := s.treasury.Handler.ListTransfersHandler(r.Context(), limit)
	if err != nil {
		writeTreasuryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTransfer(w http.ResponseWriter, r *http.Request) {
	resp, err := s.treasury.Handler.GetTransferHandler(r.Context(), r.PathValue("transfer_id"))
	if err != nil {
		writeTreasuryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeTreasuryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, treasuryerrors.ErrTransferNotFound):
		writeTreasuryError(w, http.StatusNotFound, "transfer_not_found", err.Error())
	case errors.Is(err, treasuryerrors.ErrAccountNotFound):
		writeTreasuryError(w, http.StatusNotFound, "account_not_found", err.Error())
	case errors.Is(err, treasuryerrors.ErrInsufficientFunds):
		writeTreasuryError(w, http.StatusConflict, "insufficient_funds", err.Error())
	case errors.Is(err, treasuryerrors.ErrInvalidTransferInput):
		writeTreasuryError(w, http.StatusBadRequest, "invalid_transfer", err.Error())
	default:
		writeTreasuryError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeTreasuryError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, treasuryhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
