package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	votingerrors "demoday/contexts/hackathon/voting-service/domain/errors"
	votinghttp "demoday/contexts/hackathon/voting-service/transport/http"
)

func (s *Server) handleRegisterProject(w http.ResponseWriter, r *http.Request) {
	callerID := resolveCallerID(r)
	if callerID == "" {
		writeVotingError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req votinghttp.RegisterProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.voting.Handler.RegisterProjectHandler(r.Context(), callerID, req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRegisterProjectBatch(w http.ResponseWriter, r *http.Request) {
	callerID := resolveCallerID(r)
	if callerID == "" {
		writeVotingError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req votinghttp.RegisterProjectBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.voting.Handler.RegisterProjectBatchHandler(r.Context(), callerID, req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.ListProjectsHandler(r.Context())
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.ParseUint(r.PathValue("project_id"), 10, 64)
	if err != nil {
		writeVotingError(w, http.StatusBadRequest, "invalid_project_id", "project_id must be a positive integer")
		return
	}

	resp, err := s.voting.Handler.GetProjectHandler(r.Context(), projectID)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	voterID := resolveCallerID(r)
	if voterID == "" {
		writeVotingError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req votinghttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.voting.Handler.CastVoteHandler(r.Context(), voterID, req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMyVotes(w http.ResponseWriter, r *http.Request) {
	voterID := resolveCallerID(r)
	if voterID == "" {
		writeVotingError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.voting.Handler.MyVotesHandler(r.Context(), voterID)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTotalVotes(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.TotalVotesHandler(r.Context())
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVotingData(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.VotingDataHandler(r.Context(), resolveCallerID(r))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResolveVoting(w http.ResponseWriter, r *http.Request) {
	callerID := resolveCallerID(r)
	if callerID == "" {
		writeVotingError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.voting.Handler.ResolveVotingHandler(r.Context(), callerID)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResolutionStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.ResolutionStatusHandler(r.Context())
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeVotingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, votingerrors.ErrUnauthorized):
		writeVotingError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, votingerrors.ErrProjectNotFound):
		writeVotingError(w, http.StatusNotFound, "project_not_found", err.Error())
	case errors.Is(err, votingerrors.ErrAlreadyVotedForProject):
		writeVotingError(w, http.StatusConflict, "already_voted_for_project", err.Error())
	case errors.Is(err, votingerrors.ErrMaxVotesReached):
		writeVotingError(w, http.StatusConflict, "max_votes_reached", err.Error())
	case errors.Is(err, votingerrors.ErrVotingAlreadyResolved):
		writeVotingError(w, http.StatusConflict, "voting_already_resolved", err.Error())
	case errors.Is(err, votingerrors.ErrNoVotesCast):
		writeVotingError(w, http.StatusUnprocessableEntity, "no_votes_cast", err.Error())
	case errors.Is(err, votingerrors.ErrArrayLengthMismatch):
		writeVotingError(w, http.StatusBadRequest, "array_length_mismatch", err.Error())
	case errors.Is(err, votingerrors.ErrInvalidProjectInput),
		errors.Is(err, votingerrors.ErrInvalidVoteInput):
		writeVotingError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, votingerrors.ErrConflict):
		writeVotingError(w, http.StatusConflict, "conflict", err.Error())
	default:
		writeVotingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeVotingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, votinghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func resolveCallerID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-Id"))
}
