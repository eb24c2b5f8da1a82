package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"demoday/contexts/hackathon/voting-service/domain/entities"
	"demoday/contexts/hackathon/voting-service/ports"
)

func TestExecuteRollsNothingBack(t *testing.T) {
	// The in-memory unit of work serializes access but does not undo
	// writes, so callbacks must fail before mutating. This test pins the
	// re-entrancy contract: nested Execute calls share one lock hold.
	store := NewStore(entities.PrizePool{})
	err := store.Execute(context.Background(), func(ctx context.Context) error {
		return store.Execute(ctx, func(ctx context.Context) error {
			return store.SaveProject(ctx, entities.Project{ID: 1, Title: "nested"})
		})
	})
	if err != nil {
		t.Fatalf("nested execute: %v", err)
	}

	project, err := store.GetProject(context.Background(), 1)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if project.Title != "nested" {
		t.Fatalf("unexpected project %+v", project)
	}
}

func TestExecuteReentryCompletes(t *testing.T) {
	// A command that re-enters the unit of work (resolution invoking a
	// callee that wraps its own Execute) must run on the already-held
	// lock instead of waiting on it forever.
	store := NewStore(entities.PrizePool{})
	done := make(chan error, 1)
	go func() {
		done <- store.Execute(context.Background(), func(ctx context.Context) error {
			return store.Execute(ctx, func(ctx context.Context) error {
				if err := store.SaveProject(ctx, entities.Project{ID: 1, Title: "inner"}); err != nil {
					return err
				}
				return store.Execute(ctx, func(ctx context.Context) error {
					_, err := store.GetProject(ctx, 1)
					return err
				})
			})
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("re-entrant execute: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("re-entrant execute deadlocked")
	}
}

func TestExecutePropagatesCallbackError(t *testing.T) {
	store := NewStore(entities.PrizePool{})
	sentinel := errors.New("boom")
	err := store.Execute(context.Background(), func(ctx context.Context) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected callback error, got %v", err)
	}
}

func TestVoterRecordsAreCopied(t *testing.T) {
	store := NewStore(entities.PrizePool{})
	record := entities.VoterRecord{
		VoterID:     "voter-1",
		ProjectIDs:  []uint64{1},
		VoteCount:   1,
		FirstVoteAt: time.Now().UTC(),
		LastVoteAt:  time.Now().UTC(),
	}
	if err := store.SaveVoterRecord(context.Background(), record); err != nil {
		t.Fatalf("save record: %v", err)
	}

	// Mutating the caller's slice must not leak into the store.
	record.ProjectIDs[0] = 99

	loaded, found, err := store.GetVoterRecord(context.Background(), "voter-1")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if !found {
		t.Fatalf("expected record")
	}
	if loaded.ProjectIDs[0] != 1 {
		t.Fatalf("store leaked caller slice: %+v", loaded.ProjectIDs)
	}

	// And mutating the loaded slice must not corrupt the store either.
	loaded.ProjectIDs[0] = 42
	again, _, err := store.GetVoterRecord(context.Background(), "voter-1")
	if err != nil {
		t.Fatalf("reload record: %v", err)
	}
	if again.ProjectIDs[0] != 1 {
		t.Fatalf("store shared returned slice: %+v", again.ProjectIDs)
	}
}

func TestLoadSnapshotIsConsistent(t *testing.T) {
	store := NewStore(entities.PrizePool{Source: "sponsor", Amount: 300, Configured: true})
	ctx := context.Background()
	if err := store.SaveProject(ctx, entities.Project{ID: 1, Title: "a", VoteCount: 2}); err != nil {
		t.Fatalf("save project: %v", err)
	}
	if err := store.SaveProject(ctx, entities.Project{ID: 2, Title: "b", VoteCount: 1}); err != nil {
		t.Fatalf("save project: %v", err)
	}
	if err := store.SaveEventState(ctx, entities.EventState{ProjectCount: 2, TotalVoters: 2}); err != nil {
		t.Fatalf("save state: %v", err)
	}
	if err := store.SaveVoterRecord(ctx, entities.VoterRecord{
		VoterID:    "voter-1",
		ProjectIDs: []uint64{1, 2},
		VoteCount:  2,
	}); err != nil {
		t.Fatalf("save record: %v", err)
	}

	snapshot, err := store.LoadSnapshot(ctx, "voter-1")
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if snapshot.TotalVotes != 3 {
		t.Fatalf("expected 3 total votes, got %d", snapshot.TotalVotes)
	}
	if snapshot.TotalVoters != 2 {
		t.Fatalf("expected 2 voters, got %d", snapshot.TotalVoters)
	}
	if len(snapshot.Projects) != 2 || snapshot.Projects[0].ID != 1 {
		t.Fatalf("expected id-ordered projects, got %+v", snapshot.Projects)
	}
	if len(snapshot.ViewerVotes) != 2 {
		t.Fatalf("expected viewer history, got %v", snapshot.ViewerVotes)
	}

	anonymous, err := store.LoadSnapshot(ctx, "")
	if err != nil {
		t.Fatalf("anonymous snapshot: %v", err)
	}
	if anonymous.ViewerVotes == nil || len(anonymous.ViewerVotes) != 0 {
		t.Fatalf("expected empty non-nil history for unknown viewer, got %#v", anonymous.ViewerVotes)
	}
}

func TestOutboxLifecycle(t *testing.T) {
	store := NewStore(entities.PrizePool{})
	ctx := context.Background()
	envelope := ports.EventEnvelope{
		EventID:    "evt-1",
		EventType:  "vote.cast",
		OccurredAt: time.Now().UTC(),
	}
	if err := store.AppendOutbox(ctx, envelope); err != nil {
		t.Fatalf("append outbox: %v", err)
	}

	pending, err := store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 || pending[0].OutboxID != "evt-1" {
		t.Fatalf("unexpected pending rows %+v", pending)
	}

	if err := store.MarkOutboxPublished(ctx, "evt-1", time.Now().UTC()); err != nil {
		t.Fatalf("mark published: %v", err)
	}
	pending, err = store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list pending after mark: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected drained outbox, got %+v", pending)
	}
}
