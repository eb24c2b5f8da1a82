package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"demoday/contexts/finance/treasury-service/application"
	"demoday/contexts/finance/treasury-service/domain/entities"
	httptransport "demoday/contexts/finance/treasury-service/transport/http"
)

type Handler struct {
	Treasury application.Service
	Logger   *slog.Logger
}

func (h Handler) ListTransfersHandler(ctx context.Context, limit int) (httptransport.TransferListResponse, error) {
	transfers, err := h.Treasury.ListTransfers(ctx, limit)
	if err != nil {
		return httptransport.TransferListResponse{}, err
	}
	resp := httptransport.TransferListResponse{
		Items: make([]httptransport.TransferResponse, 0, len(transfers)),
	}
	for _, transfer := range transfers {
		resp.Items = append(resp.Items, mapTransfer(transfer))
	}
	return resp, nil
}

func (h Handler) GetTransferHandler(ctx context.Context, transferID string) (httptransport.TransferResponse, error) {
	transfer, err := h.Treasury.GetTransfer(ctx, transferID)
	if err != nil {
		return httptransport.TransferResponse{}, err
	}
	return mapTransfer(transfer), nil
}

func mapTransfer(transfer entities.Transfer) httptransport.TransferResponse {
	return httptransport.TransferResponse{
		TransferID: transfer.TransferID,
		Account:    transfer.Account,
		Target:     transfer.Target,
		Amount:     transfer.Amount,
		Status:     string(transfer.Status),
		FailReason: transfer.FailReason,
		CreatedAt:  transfer.CreatedAt.UTC().Format(time.RFC3339),
	}
}
