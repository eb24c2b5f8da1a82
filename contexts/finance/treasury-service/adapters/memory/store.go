package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"demoday/contexts/finance/treasury-service/domain/entities"
	domainerrors "demoday/contexts/finance/treasury-service/domain/errors"
	"demoday/contexts/finance/treasury-service/ports"
)

type unitKey struct{}

// Store is an in-memory treasury ledger guarded by a single mutex. Execute
// holds the mutex for the whole callback so a debit and its transfer row
// commit together.
type Store struct {
	mu        sync.Mutex
	accounts  map[string]entities.Account
	transfers map[string]entities.Transfer
	order     []string
}

func NewStore(account string, balance int64) *Store {
	s := &Store{
		accounts:  make(map[string]entities.Account),
		transfers: make(map[string]entities.Transfer),
	}
	if account != "" {
		s.accounts[account] = entities.Account{Name: account, Balance: balance}
	}
	return s
}

func (s *Store) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(unitKey{}) == s {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(context.WithValue(ctx, unitKey{}, s))
}

func (s *Store) acquire(ctx context.Context) func() {
	if ctx.Value(unitKey{}) == s {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) GetAccount(ctx context.Context, name string) (entities.Account, error) {
	defer s.acquire(ctx)()
	account, ok := s.accounts[name]
	if !ok {
		return entities.Account{}, domainerrors.ErrAccountNotFound
	}
	return account, nil
}

func (s *Store) SaveAccount(ctx context.Context, account entities.Account) error {
	defer s.acquire(ctx)()
	s.accounts[account.Name] = account
	return nil
}

func (s *Store) SaveTransfer(ctx context.Context, transfer entities.Transfer) error {
	defer s.acquire(ctx)()
	if _, exists := s.transfers[transfer.TransferID]; !exists {
		s.order = append(s.order, transfer.TransferID)
	}
	s.transfers[transfer.TransferID] = transfer
	return nil
}

func (s *Store) GetTransfer(ctx context.Context, transferID string) (entities.Transfer, error) {
	defer s.acquire(ctx)()
	transfer, ok := s.transfers[transferID]
	if !ok {
		return entities.Transfer{}, domainerrors.ErrTransferNotFound
	}
	return transfer, nil
}

func (s *Store) ListTransfers(ctx context.Context, limit int) ([]entities.Transfer, error) {
	defer s.acquire(ctx)()
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	sort.SliceStable(ids, func(i, j int) bool {
		return s.transfers[ids[i]].CreatedAt.Before(s.transfers[ids[j]].CreatedAt)
	})
	if limit > 0 && limit < len(ids) {
		ids = ids[len(ids)-limit:]
	}
	out := make([]entities.Transfer, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.transfers[id])
	}
	return out, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(context.Context) (string, error) {
	return uuid.NewString(), nil
}

var (
	_ ports.Repository  = (*Store)(nil)
	_ ports.UnitOfWork  = (*Store)(nil)
	_ ports.Clock       = (*Store)(nil)
	_ ports.IDGenerator = (*Store)(nil)
)
