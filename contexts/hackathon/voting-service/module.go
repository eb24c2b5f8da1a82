package votingservice

import (
	"log/slog"

	httpadapter "demoday/contexts/hackathon/voting-service/adapters/http"
	"demoday/contexts/hackathon/voting-service/adapters/memory"
	"demoday/contexts/hackathon/voting-service/application/commands"
	"demoday/contexts/hackathon/voting-service/application/queries"
	"demoday/contexts/hackathon/voting-service/domain/entities"
	"demoday/contexts/hackathon/voting-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Ledger   ports.Repository
	UoW      ports.UnitOfWork
	Admins   ports.AdminGate
	Treasury ports.Treasury
	Outbox   ports.OutboxWriter
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	registerUseCase := commands.RegisterUseCase{
		Ledger: deps.Ledger,
		UoW:    deps.UoW,
		Admins: deps.Admins,
		Outbox: deps.Outbox,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	voteUseCase := commands.VoteUseCase{
		Ledger: deps.Ledger,
		UoW:    deps.UoW,
		Outbox: deps.Outbox,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	resolveUseCase := commands.ResolveUseCase{
		Ledger:   deps.Ledger,
		UoW:      deps.UoW,
		Admins:   deps.Admins,
		Treasury: deps.Treasury,
		Outbox:   deps.Outbox,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Registry:   registerUseCase,
			Votes:      voteUseCase,
			Resolution: resolveUseCase,
			Projects:   queries.ProjectUseCase{Ledger: deps.Ledger},
			VoteReads:  queries.VoteUseCase{Ledger: deps.Ledger},
			VotingData: queries.VotingDataUseCase{Ledger: deps.Ledger},
			Logger:     deps.Logger,
		},
	}
}

// NewInMemoryModule wires the module on the in-memory ledger host. Admin
// identities and the optional prize pool come from the caller; treasury may
// be nil for the prize-free variant.
func NewInMemoryModule(
	pool entities.PrizePool,
	admins []string,
	treasury ports.Treasury,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(pool)
	module := NewModule(Dependencies{
		Ledger:   store,
		UoW:      store,
		Admins:   memory.NewAdminGate(admins),
		Treasury: treasury,
		Outbox:   store,
		Clock:    store,
		IDGen:    store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
