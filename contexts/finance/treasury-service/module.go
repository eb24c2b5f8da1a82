package treasuryservice

import (
	"log/slog"

	httpadapter "demoday/contexts/finance/treasury-service/adapters/http"
	"demoday/contexts/finance/treasury-service/adapters/memory"
	"demoday/contexts/finance/treasury-service/application"
	"demoday/contexts/finance/treasury-service/ports"
)

type Module struct {
	Service application.Service
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repo    ports.Repository
	UoW     ports.UnitOfWork
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Account string
	Logger  *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:    deps.Repo,
		UoW:     deps.UoW,
		Clock:   deps.Clock,
		IDGen:   deps.IDGen,
		Account: deps.Account,
		Logger:  deps.Logger,
	}
	return Module{
		Service: service,
		Handler: httpadapter.Handler{
			Treasury: service,
			Logger:   deps.Logger,
		},
	}
}

// NewInMemoryModule wires the treasury on an in-memory store seeded with one
// funded account.
func NewInMemoryModule(account string, balance int64, logger *slog.Logger) Module {
	store := memory.NewStore(account, balance)
	module := NewModule(Dependencies{
		Repo:    store,
		UoW:     store,
		Clock:   store,
		IDGen:   store,
		Account: account,
		Logger:  logger,
	})
	module.Store = store
	return module
}
