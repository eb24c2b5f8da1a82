package ports

import (
	"context"
	"time"

	"demoday/contexts/hackathon/voting-service/domain/entities"
	contractsv1 "demoday/contracts/gen/events/v1"
)

// EventEnvelope is the canonical event shape appended to the outbox and
// published on the bus.
type EventEnvelope = contractsv1.Envelope

// Snapshot is one atomic read of the full ledger state, assembled under a
// single lock or transaction so it never mixes pre- and post-mutation
// values.
type Snapshot struct {
	Projects    []entities.Project
	TotalVotes  uint64
	TotalVoters uint64
	ViewerVotes []uint64
	Resolved    bool
	WinnerID    uint64
}

// Repository owns the durable ledger state. Mutating methods are only
// called inside a UnitOfWork execution.
type Repository interface {
	GetEventState(ctx context.Context) (entities.EventState, error)
	SaveEventState(ctx context.Context, state entities.EventState) error
	SaveProject(ctx context.Context, project entities.Project) error
	GetProject(ctx context.Context, projectID uint64) (entities.Project, error)
	ListProjects(ctx context.Context) ([]entities.Project, error)
	GetVoterRecord(ctx context.Context, voterID string) (entities.VoterRecord, bool, error)
	SaveVoterRecord(ctx context.Context, record entities.VoterRecord) error
	LoadSnapshot(ctx context.Context, viewerID string) (Snapshot, error)
}

// UnitOfWork serializes a mutating command: fn either completes with all
// invariants intact or has no effect. The memory adapter backs this with an
// explicit single-writer lock, the postgres adapter with a transaction.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}

// AdminGate is the injected capability check for administrator-only
// operations.
type AdminGate interface {
	IsAdministrator(ctx context.Context, identity string) (bool, error)
}

// Treasury is the external value-transfer sink used during resolution
// payout. It is never invoked before the ledger state for the call is
// finalized.
type Treasury interface {
	Transfer(ctx context.Context, target string, amount int64) error
}

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
