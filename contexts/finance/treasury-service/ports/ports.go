package ports

import (
	"context"
	"time"

	"demoday/contexts/finance/treasury-service/domain/entities"
)

type Repository interface {
	GetAccount(ctx context.Context, name string) (entities.Account, error)
	SaveAccount(ctx context.Context, account entities.Account) error
	SaveTransfer(ctx context.Context, transfer entities.Transfer) error
	GetTransfer(ctx context.Context, transferID string) (entities.Transfer, error)
	ListTransfers(ctx context.Context, limit int) ([]entities.Transfer, error)
}

// UnitOfWork brackets the debit-then-record sequence so a transfer either
// debits and records in full or leaves the ledger untouched.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
