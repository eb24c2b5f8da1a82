package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	treasuryservice "demoday/contexts/finance/treasury-service"
	treasurypostgres "demoday/contexts/finance/treasury-service/adapters/postgres"
	treasuryentities "demoday/contexts/finance/treasury-service/domain/entities"
	treasuryerrors "demoday/contexts/finance/treasury-service/domain/errors"
	treasuryports "demoday/contexts/finance/treasury-service/ports"
	votingservice "demoday/contexts/hackathon/voting-service"
	votingpostgres "demoday/contexts/hackathon/voting-service/adapters/postgres"
	"demoday/contexts/hackathon/voting-service/adapters/memory"
	workerapp "demoday/contexts/hackathon/voting-service/application/workers"
	"demoday/contexts/hackathon/voting-service/domain/entities"
	votingports "demoday/contexts/hackathon/voting-service/ports"
	"demoday/internal/platform/config"
	"demoday/internal/platform/db"
	"demoday/internal/platform/httpserver"
	"demoday/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  workerapp.OutboxRelay
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	treasuryRepo := treasurypostgres.NewRepository(pg.DB, logger)
	treasuryModule := treasuryservice.NewModule(treasuryservice.Dependencies{
		Repo:    treasuryRepo,
		UoW:     treasuryRepo,
		Clock:   treasurypostgres.SystemClock{},
		IDGen:   treasurypostgres.UUIDGenerator{},
		Account: cfg.TreasuryAccount,
		Logger:  logger,
	})

	var treasury votingports.Treasury
	if cfg.EnablePrizeDistribution {
		if err := seedTreasuryAccount(context.Background(), treasuryRepo, treasuryRepo, cfg); err != nil {
			_ = pg.Close()
			return nil, err
		}
		treasury = treasuryModule.Service
	}

	votingRepo := votingpostgres.NewRepository(pg.DB, logger)
	votingModule := votingservice.NewModule(votingservice.Dependencies{
		Ledger:   votingRepo,
		UoW:      votingRepo,
		Admins:   memory.NewAdminGate(cfg.AdminIdentities),
		Treasury: treasury,
		Outbox:   votingRepo,
		Clock:    votingpostgres.SystemClock{},
		IDGen:    votingpostgres.UUIDGenerator{},
		Logger:   logger,
	})

	if err := seedPrizePool(context.Background(), votingRepo, cfg); err != nil {
		_ = pg.Close()
		return nil, err
	}

	server := httpserver.New(votingModule, treasuryModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

// seedTreasuryAccount creates the funded payout account on first start so
// resolution-time transfers find it. An existing account keeps its balance.
func seedTreasuryAccount(
	ctx context.Context,
	repo treasuryports.Repository,
	uow treasuryports.UnitOfWork,
	cfg config.Config,
) error {
	account := strings.TrimSpace(cfg.TreasuryAccount)
	if account == "" {
		return nil
	}
	return uow.Execute(ctx, func(ctx context.Context) error {
		_, err := repo.GetAccount(ctx, account)
		if err == nil {
			return nil
		}
		if !errors.Is(err, treasuryerrors.ErrAccountNotFound) {
			return err
		}
		return repo.SaveAccount(ctx, treasuryentities.Account{
			Name:    account,
			Balance: cfg.TreasuryBalance,
		})
	})
}

// seedPrizePool writes the configured pool into event state once. A pool
// already recorded (or a resolved event) is left untouched.
func seedPrizePool(ctx context.Context, repo *votingpostgres.Repository, cfg config.Config) error {
	if cfg.PrizePoolAmount <= 0 {
		return nil
	}
	return repo.Execute(ctx, func(ctx context.Context) error {
		state, err := repo.GetEventState(ctx)
		if err != nil {
			return err
		}
		if state.Resolved || state.PrizePool.Configured {
			return nil
		}
		state.PrizePool = entities.PrizePool{
			Source:     cfg.PrizePoolSource,
			Amount:     cfg.PrizePoolAmount,
			Configured: true,
		}
		return repo.SaveEventState(ctx, state)
	})
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if !cfg.EnableOutboxRelay {
		return nil, errors.New("outbox relay is disabled for this process")
	}
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	repo := votingpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		outboxRelay: workerapp.OutboxRelay{
			Outbox:    repo,
			Publisher: kafka,
			Clock:     votingpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
