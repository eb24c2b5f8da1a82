package application

import (
	"context"
	"errors"
	"testing"

	"demoday/contexts/finance/treasury-service/adapters/memory"
	"demoday/contexts/finance/treasury-service/domain/entities"
	domainerrors "demoday/contexts/finance/treasury-service/domain/errors"
)

func newService(balance int64) (Service, *memory.Store) {
	store := memory.NewStore("prize-pool", balance)
	return Service{
		Repo:    store,
		UoW:     store,
		Clock:   store,
		IDGen:   store,
		Account: "prize-pool",
	}, store
}

func TestTransferDebitsAccountAndRecords(t *testing.T) {
	service, store := newService(1000)
	if err := service.Transfer(context.Background(), "acct-1", 300); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	account, err := store.GetAccount(context.Background(), "prize-pool")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if account.Balance != 700 {
		t.Fatalf("expected balance 700, got %d", account.Balance)
	}

	transfers, err := service.ListTransfers(context.Background(), 10)
	if err != nil {
		t.Fatalf("list transfers: %v", err)
	}
	if len(transfers) != 1 {
		t.Fatalf("expected 1 transfer, got %d", len(transfers))
	}
	if transfers[0].Status != entities.TransferStatusCompleted {
		t.Fatalf("expected completed transfer, got %s", transfers[0].Status)
	}
	if transfers[0].Target != "acct-1" || transfers[0].Amount != 300 {
		t.Fatalf("unexpected transfer %+v", transfers[0])
	}
}

func TestTransferRejectsInvalidInput(t *testing.T) {
	service, _ := newService(1000)
	if err := service.Transfer(context.Background(), "", 5); !errors.Is(err, domainerrors.ErrInvalidTransferInput) {
		t.Fatalf("expected ErrInvalidTransferInput for empty target, got %v", err)
	}
	if err := service.Transfer(context.Background(), "acct-1", 0); !errors.Is(err, domainerrors.ErrInvalidTransferInput) {
		t.Fatalf("expected ErrInvalidTransferInput for zero amount, got %v", err)
	}
}

func TestTransferInsufficientFundsRecordsFailure(t *testing.T) {
	service, store := newService(100)
	err := service.Transfer(context.Background(), "acct-1", 300)
	if !errors.Is(err, domainerrors.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	account, getErr := store.GetAccount(context.Background(), "prize-pool")
	if getErr != nil {
		t.Fatalf("get account: %v", getErr)
	}
	if account.Balance != 100 {
		t.Fatalf("failed transfer must not debit, got balance %d", account.Balance)
	}

	transfers, listErr := service.ListTransfers(context.Background(), 10)
	if listErr != nil {
		t.Fatalf("list transfers: %v", listErr)
	}
	if len(transfers) != 1 || transfers[0].Status != entities.TransferStatusFailed {
		t.Fatalf("expected one failed transfer, got %+v", transfers)
	}
	if transfers[0].FailReason == "" {
		t.Fatalf("expected recorded failure reason")
	}
}

func TestGetTransferByID(t *testing.T) {
	service, _ := newService(500)
	if err := service.Transfer(context.Background(), "acct-1", 100); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	transfers, err := service.ListTransfers(context.Background(), 10)
	if err != nil {
		t.Fatalf("list transfers: %v", err)
	}

	transfer, err := service.GetTransfer(context.Background(), transfers[0].TransferID)
	if err != nil {
		t.Fatalf("get transfer: %v", err)
	}
	if transfer.Target != "acct-1" {
		t.Fatalf("unexpected transfer %+v", transfer)
	}

	if _, err := service.GetTransfer(context.Background(), "missing"); !errors.Is(err, domainerrors.ErrTransferNotFound) {
		t.Fatalf("expected ErrTransferNotFound, got %v", err)
	}
}
