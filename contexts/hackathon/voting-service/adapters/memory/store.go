package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"demoday/contexts/hackathon/voting-service/domain/entities"
	domainerrors "demoday/contexts/hackathon/voting-service/domain/errors"
	"demoday/contexts/hackathon/voting-service/ports"

	"github.com/google/uuid"
)

type unitKey struct{}

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store is the in-memory ledger host. A single store-level mutex serializes
// every unit of work, so mutating command sequences never interleave and
// snapshot reads observe a consistent state.
type Store struct {
	mu sync.Mutex

	state    entities.EventState
	projects map[uint64]entities.Project
	voters   map[string]entities.VoterRecord
	outbox   map[string]outboxRecord
}

func NewStore(pool entities.PrizePool) *Store {
	return &Store{
		state:    entities.EventState{PrizePool: pool},
		projects: make(map[uint64]entities.Project),
		voters:   make(map[string]entities.VoterRecord),
		outbox:   make(map[string]outboxRecord),
	}
}

// Execute holds the single-writer lock for the whole unit. Repository calls
// made inside fn detect the held unit through the context and skip
// re-locking.
func (s *Store) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if owner, ok := ctx.Value(unitKey{}).(*Store); ok && owner == s {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(context.WithValue(ctx, unitKey{}, s))
}

func (s *Store) acquire(ctx context.Context) func() {
	if owner, ok := ctx.Value(unitKey{}).(*Store); ok && owner == s {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) GetEventState(ctx context.Context) (entities.EventState, error) {
	defer s.acquire(ctx)()
	return s.state, nil
}

func (s *Store) SaveEventState(ctx context.Context, state entities.EventState) error {
	defer s.acquire(ctx)()
	s.state = state
	return nil
}

func (s *Store) SaveProject(ctx context.Context, project entities.Project) error {
	defer s.acquire(ctx)()
	s.projects[project.ID] = project
	return nil
}

func (s *Store) GetProject(ctx context.Context, projectID uint64) (entities.Project, error) {
	defer s.acquire(ctx)()
	project, ok := s.projects[projectID]
	if !ok {
		return entities.Project{}, domainerrors.ErrProjectNotFound
	}
	return project, nil
}

func (s *Store) ListProjects(ctx context.Context) ([]entities.Project, error) {
	defer s.acquire(ctx)()
	return s.listProjectsLocked(), nil
}

func (s *Store) GetVoterRecord(ctx context.Context, voterID string) (entities.VoterRecord, bool, error) {
	defer s.acquire(ctx)()
	record, ok := s.voters[strings.TrimSpace(voterID)]
	if !ok {
		return entities.VoterRecord{}, false, nil
	}
	record.ProjectIDs = append([]uint64(nil), record.ProjectIDs...)
	return record, true, nil
}

func (s *Store) SaveVoterRecord(ctx context.Context, record entities.VoterRecord) error {
	defer s.acquire(ctx)()
	record.VoterID = strings.TrimSpace(record.VoterID)
	record.ProjectIDs = append([]uint64(nil), record.ProjectIDs...)
	s.voters[record.VoterID] = record
	return nil
}

func (s *Store) LoadSnapshot(ctx context.Context, viewerID string) (ports.Snapshot, error) {
	defer s.acquire(ctx)()

	snapshot := ports.Snapshot{
		Projects:    s.listProjectsLocked(),
		TotalVoters: s.state.TotalVoters,
		ViewerVotes: []uint64{},
		Resolved:    s.state.Resolved,
		WinnerID:    s.state.WinnerID,
	}
	for _, project := range snapshot.Projects {
		snapshot.TotalVotes += project.VoteCount
	}
	if record, ok := s.voters[strings.TrimSpace(viewerID)]; ok {
		snapshot.ViewerVotes = append([]uint64(nil), record.ProjectIDs...)
	}
	return snapshot, nil
}

func (s *Store) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	defer s.acquire(ctx)()

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	outboxID := strings.TrimSpace(envelope.EventID)
	if outboxID == "" {
		outboxID = uuid.NewString()
	}
	if existing, ok := s.outbox[outboxID]; ok {
		if !bytes.Equal(existing.message.Payload, payload) {
			return domainerrors.ErrConflict
		}
		return nil
	}
	createdAt := envelope.OccurredAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	s.outbox[outboxID] = outboxRecord{
		message: ports.OutboxMessage{
			OutboxID:     outboxID,
			EventType:    strings.TrimSpace(envelope.EventType),
			PartitionKey: strings.TrimSpace(envelope.PartitionKey),
			Payload:      payload,
			CreatedAt:    createdAt,
		},
	}
	return nil
}

func (s *Store) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	defer s.acquire(ctx)()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0, len(s.outbox))
	for _, row := range s.outbox {
		if row.published {
			continue
		}
		items = append(items, row.message)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(ctx context.Context, outboxID string, _ time.Time) error {
	defer s.acquire(ctx)()
	row, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return domainerrors.ErrConflict
	}
	row.published = true
	s.outbox[strings.TrimSpace(outboxID)] = row
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) listProjectsLocked() []entities.Project {
	items := make([]entities.Project, 0, len(s.projects))
	for _, project := range s.projects {
		items = append(items, project)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
	return items
}

var _ ports.Repository = (*Store)(nil)
var _ ports.UnitOfWork = (*Store)(nil)
var _ ports.OutboxWriter = (*Store)(nil)
var _ ports.OutboxRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
