package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"demoday/contexts/finance/treasury-service/domain/entities"
	domainerrors "demoday/contexts/finance/treasury-service/domain/errors"
	"demoday/contexts/finance/treasury-service/ports"
)

// Service executes prize transfers against a funded account and serves the
// transfer ledger for audit reads.
type Service struct {
	Repo    ports.Repository
	UoW     ports.UnitOfWork
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Account string
	Logger  *slog.Logger
}

// Transfer debits the configured account and records the attempt. A failed
// attempt (unknown account, insufficient funds) is recorded with its reason
// and returned as an error; the debit never partially applies.
func (s Service) Transfer(ctx context.Context, target string, amount int64) error {
	logger := s.resolveLogger()
	target = strings.TrimSpace(target)
	logger.Info("treasury transfer started",
		"event", "treasury_transfer_started",
		"module", "finance/treasury-service",
		"layer", "application",
		"account", s.Account,
		"target", target,
		"amount", amount,
	)
	if target == "" || amount <= 0 {
		logger.Warn("treasury transfer invalid input",
			"event", "treasury_transfer_invalid_input",
			"module", "finance/treasury-service",
			"layer", "application",
			"target", target,
			"amount", amount,
		)
		return domainerrors.ErrInvalidTransferInput
	}

	now := s.now()
	transferID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return err
	}

	var failCause error
	err = s.UoW.Execute(ctx, func(ctx context.Context) error {
		account, err := s.Repo.GetAccount(ctx, s.Account)
		if err != nil {
			failCause = err
			return s.recordFailure(ctx, transferID, target, amount, now, err)
		}
		if account.Balance < amount {
			failCause = domainerrors.ErrInsufficientFunds
			return s.recordFailure(ctx, transferID, target, amount, now, failCause)
		}

		account.Balance -= amount
		if err := s.Repo.SaveAccount(ctx, account); err != nil {
			return err
		}
		return s.Repo.SaveTransfer(ctx, entities.Transfer{
			TransferID: transferID,
			Account:    account.Name,
			Target:     target,
			Amount:     amount,
			Status:     entities.TransferStatusCompleted,
			CreatedAt:  now,
		})
	})
	if err != nil {
		return err
	}
	if failCause != nil {
		logger.Warn("treasury transfer failed",
			"event", "treasury_transfer_failed",
			"module", "finance/treasury-service",
			"layer", "application",
			"transfer_id", transferID,
			"target", target,
			"amount", amount,
			"error", failCause.Error(),
		)
		return failCause
	}

	logger.Info("treasury transfer completed",
		"event", "treasury_transfer_completed",
		"module", "finance/treasury-service",
		"layer", "application",
		"transfer_id", transferID,
		"target", target,
		"amount", amount,
	)
	return nil
}

// ListTransfers returns recent transfer attempts, newest last.
func (s Service) ListTransfers(ctx context.Context, limit int) ([]entities.Transfer, error) {
	return s.Repo.ListTransfers(ctx, limit)
}

// GetTransfer returns one recorded attempt by id.
func (s Service) GetTransfer(ctx context.Context, transferID string) (entities.Transfer, error) {
	return s.Repo.GetTransfer(ctx, strings.TrimSpace(transferID))
}

func (s Service) recordFailure(
	ctx context.Context,
	transferID string,
	target string,
	amount int64,
	now time.Time,
	cause error,
) error {
	return s.Repo.SaveTransfer(ctx, entities.Transfer{
		TransferID: transferID,
		Account:    s.Account,
		Target:     target,
		Amount:     amount,
		Status:     entities.TransferStatusFailed,
		FailReason: cause.Error(),
		CreatedAt:  now,
	})
}

func (s Service) now() time.Time {
	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock.Now().UTC()
	}
	return now
}

func (s Service) resolveLogger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
