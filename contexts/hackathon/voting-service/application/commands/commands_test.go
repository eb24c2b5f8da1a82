package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"demoday/contexts/hackathon/voting-service/adapters/memory"
	"demoday/contexts/hackathon/voting-service/domain/entities"
	domainerrors "demoday/contexts/hackathon/voting-service/domain/errors"
)

type recordingTreasury struct {
	transfers []recordedTransfer
	failFor   map[string]error
}

type recordedTransfer struct {
	target string
	amount int64
}

func (t *recordingTreasury) Transfer(_ context.Context, target string, amount int64) error {
	if err, ok := t.failFor[target]; ok {
		return err
	}
	t.transfers = append(t.transfers, recordedTransfer{target: target, amount: amount})
	return nil
}

type testFixture struct {
	store    *memory.Store
	register RegisterUseCase
	vote     VoteUseCase
	resolve  ResolveUseCase
	treasury *recordingTreasury
}

func newFixture(pool entities.PrizePool) testFixture {
	store := memory.NewStore(pool)
	admins := memory.NewAdminGate([]string{"admin-1"})
	treasury := &recordingTreasury{failFor: map[string]error{}}
	return testFixture{
		store: store,
		register: RegisterUseCase{
			Ledger: store,
			UoW:    store,
			Admins: admins,
			Outbox: store,
			Clock:  store,
			IDGen:  store,
		},
		vote: VoteUseCase{
			Ledger: store,
			UoW:    store,
			Outbox: store,
			Clock:  store,
			IDGen:  store,
		},
		resolve: ResolveUseCase{
			Ledger:   store,
			UoW:      store,
			Admins:   admins,
			Treasury: treasury,
			Outbox:   store,
			Clock:    store,
			IDGen:    store,
		},
		treasury: treasury,
	}
}

func (f testFixture) registerN(t *testing.T, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		_, err := f.register.RegisterProject(context.Background(), RegisterProjectCommand{
			CallerID: "admin-1",
			Fields: ProjectFields{
				Title:        fmt.Sprintf("Project %d", i+1),
				Description:  "entry",
				TeamName:     fmt.Sprintf("team-%d", i+1),
				Category:     "tools",
				PayoutTarget: fmt.Sprintf("acct-%d", i+1),
			},
		})
		if err != nil {
			t.Fatalf("register project %d: %v", i+1, err)
		}
	}
}

func (f testFixture) castVote(t *testing.T, voterID string, projectID uint64) {
	t.Helper()
	if _, err := f.vote.CastVote(context.Background(), CastVoteCommand{VoterID: voterID, ProjectID: projectID}); err != nil {
		t.Fatalf("vote %s->%d: %v", voterID, projectID, err)
	}
}

func TestRegisterProjectRequiresAdministrator(t *testing.T) {
	f := newFixture(entities.PrizePool{})
	_, err := f.register.RegisterProject(context.Background(), RegisterProjectCommand{
		CallerID: "user-1",
		Fields:   ProjectFields{Title: "x"},
	})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRegisterProjectAssignsSequentialIDs(t *testing.T) {
	f := newFixture(entities.PrizePool{})
	first, err := f.register.RegisterProject(context.Background(), RegisterProjectCommand{
		CallerID: "admin-1",
		Fields:   ProjectFields{Title: "First"},
	})
	if err != nil {
		t.Fatalf("register first: %v", err)
	}
	if first.ID != 1 {
		t.Fatalf("expected id 1, got %d", first.ID)
	}

	batch, err := f.register.RegisterProjectBatch(context.Background(), RegisterProjectBatchCommand{
		CallerID:      "admin-1",
		Titles:        []string{"Second", "Third"},
		Descriptions:  []string{"d", "d"},
		TeamNames:     []string{"t", "t"},
		Categories:    []string{"c", "c"},
		LiveURLs:      []string{"", ""},
		DemoURLs:      []string{"", ""},
		SourceURLs:    []string{"", ""},
		PayoutTargets: []string{"a", "b"},
	})
	if err != nil {
		t.Fatalf("register batch: %v", err)
	}
	if len(batch) != 2 || batch[0].ID != 2 || batch[1].ID != 3 {
		t.Fatalf("expected ids 2 and 3, got %+v", batch)
	}
}

func TestRegisterProjectBatchLengthMismatchRegistersNothing(t *testing.T) {
	f := newFixture(entities.PrizePool{})
	_, err := f.register.RegisterProjectBatch(context.Background(), RegisterProjectBatchCommand{
		CallerID:      "admin-1",
		Titles:        []string{"a", "b"},
		Descriptions:  []string{"only one"},
		TeamNames:     []string{"t", "t"},
		Categories:    []string{"c", "c"},
		LiveURLs:      []string{"", ""},
		DemoURLs:      []string{"", ""},
		SourceURLs:    []string{"", ""},
		PayoutTargets: []string{"x", "y"},
	})
	if !errors.Is(err, domainerrors.ErrArrayLengthMismatch) {
		t.Fatalf("expected ErrArrayLengthMismatch, got %v", err)
	}

	state, err := f.store.GetEventState(context.Background())
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if state.ProjectCount != 0 {
		t.Fatalf("expected no registrations, got count %d", state.ProjectCount)
	}
}

func TestCastVoteRejectsUnknownProject(t *testing.T) {
	f := newFixture(entities.PrizePool{})
	f.registerN(t, 1)

	_, err := f.vote.CastVote(context.Background(), CastVoteCommand{VoterID: "voter-1", ProjectID: 5})
	if !errors.Is(err, domainerrors.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
	_, err = f.vote.CastVote(context.Background(), CastVoteCommand{VoterID: "voter-1", ProjectID: 0})
	if !errors.Is(err, domainerrors.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound for id 0, got %v", err)
	}
}

func TestCastVoteRejectsDuplicate(t *testing.T) {
	f := newFixture(entities.PrizePool{})
	f.registerN(t, 2)
	f.castVote(t, "voter-1", 1)

	_, err := f.vote.CastVote(context.Background(), CastVoteCommand{VoterID: "voter-1", ProjectID: 1})
	if !errors.Is(err, domainerrors.ErrAlreadyVotedForProject) {
		t.Fatalf("expected ErrAlreadyVotedForProject, got %v", err)
	}

	project, err := f.store.GetProject(context.Background(), 1)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if project.VoteCount != 1 {
		t.Fatalf("rejected vote must not change count, got %d", project.VoteCount)
	}
}

func TestCastVoteEnforcesTwoVoteCap(t *testing.T) {
	f := newFixture(entities.PrizePool{})
	f.registerN(t, 3)
	f.castVote(t, "voter-1", 1)
	f.castVote(t, "voter-1", 2)

	_, err := f.vote.CastVote(context.Background(), CastVoteCommand{VoterID: "voter-1", ProjectID: 3})
	if !errors.Is(err, domainerrors.ErrMaxVotesReached) {
		t.Fatalf("expected ErrMaxVotesReached, got %v", err)
	}

	project, err := f.store.GetProject(context.Background(), 3)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if project.VoteCount != 0 {
		t.Fatalf("capped vote must not change count, got %d", project.VoteCount)
	}
}

func TestCastVoteTracksDistinctVoters(t *testing.T) {
	f := newFixture(entities.PrizePool{})
	f.registerN(t, 2)
	f.castVote(t, "voter-1", 1)
	f.castVote(t, "voter-1", 2)
	f.castVote(t, "voter-2", 1)

	state, err := f.store.GetEventState(context.Background())
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if state.TotalVoters != 2 {
		t.Fatalf("expected 2 distinct voters, got %d", state.TotalVoters)
	}
}

func TestResolveVotingRequiresAdministrator(t *testing.T) {
	f := newFixture(entities.PrizePool{})
	_, err := f.resolve.ResolveVoting(context.Background(), ResolveVotingCommand{CallerID: "user-1"})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestResolveVotingRejectsWithoutVotes(t *testing.T) {
	f := newFixture(entities.PrizePool{})
	f.registerN(t, 2)

	_, err := f.resolve.ResolveVoting(context.Background(), ResolveVotingCommand{CallerID: "admin-1"})
	if !errors.Is(err, domainerrors.ErrNoVotesCast) {
		t.Fatalf("expected ErrNoVotesCast, got %v", err)
	}
}

func TestResolveVotingHappensOnce(t *testing.T) {
	f := newFixture(entities.PrizePool{})
	f.registerN(t, 2)
	f.castVote(t, "voter-1", 2)

	result, err := f.resolve.ResolveVoting(context.Background(), ResolveVotingCommand{CallerID: "admin-1"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.WinnerID != 2 {
		t.Fatalf("expected winner 2, got %d", result.WinnerID)
	}

	_, err = f.resolve.ResolveVoting(context.Background(), ResolveVotingCommand{CallerID: "admin-1"})
	if !errors.Is(err, domainerrors.ErrVotingAlreadyResolved) {
		t.Fatalf("expected ErrVotingAlreadyResolved, got %v", err)
	}

	_, err = f.vote.CastVote(context.Background(), CastVoteCommand{VoterID: "voter-9", ProjectID: 1})
	if !errors.Is(err, domainerrors.ErrVotingAlreadyResolved) {
		t.Fatalf("expected post-resolution vote rejection, got %v", err)
	}
}

func TestResolveVotingDistributesPrizesToOccupiedSlots(t *testing.T) {
	f := newFixture(entities.PrizePool{Source: "sponsor", Amount: 900, Configured: true})
	f.registerN(t, 5)
	// Counts become [5:skipped zeros] p1=2, p2=2, p3=1; p4 and p5 stay at zero.
	f.castVote(t, "voter-1", 1)
	f.castVote(t, "voter-1", 2)
	f.castVote(t, "voter-2", 1)
	f.castVote(t, "voter-2", 2)
	f.castVote(t, "voter-3", 3)

	result, err := f.resolve.ResolveVoting(context.Background(), ResolveVotingCommand{CallerID: "admin-1"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.WinnerID != 1 {
		t.Fatalf("expected tie to resolve to project 1, got %d", result.WinnerID)
	}
	if len(result.Payouts) != 3 {
		t.Fatalf("expected 3 payouts, got %d", len(result.Payouts))
	}
	if len(f.treasury.transfers) != 3 {
		t.Fatalf("expected 3 transfers, got %d", len(f.treasury.transfers))
	}
	for _, transfer := range f.treasury.transfers {
		if transfer.amount != 300 {
			t.Fatalf("expected 300 per slot, got %d", transfer.amount)
		}
	}
}

func TestResolveVotingPaysExactlyTopThree(t *testing.T) {
	f := newFixture(entities.PrizePool{Source: "sponsor", Amount: 900, Configured: true})
	f.registerN(t, 5)
	// Final counts [5, 3, 2, 0, 0] under the two-vote cap.
	for _, v := range []struct {
		voter     string
		projectID uint64
	}{
		{"voter-1", 1}, {"voter-1", 2},
		{"voter-2", 1}, {"voter-2", 2},
		{"voter-3", 1}, {"voter-3", 2},
		{"voter-4", 1}, {"voter-4", 3},
		{"voter-5", 1}, {"voter-5", 3},
	} {
		f.castVote(t, v.voter, v.projectID)
	}

	result, err := f.resolve.ResolveVoting(context.Background(), ResolveVotingCommand{CallerID: "admin-1"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	wantRanked := []uint64{1, 2, 3}
	if len(result.Ranked) != len(wantRanked) {
		t.Fatalf("expected ranking %v, got %+v", wantRanked, result.Ranked)
	}
	for i, slot := range result.Ranked {
		if slot.ProjectID != wantRanked[i] {
			t.Fatalf("expected ranking %v, got %+v", wantRanked, result.Ranked)
		}
	}
	if result.WinnerVotes != 5 {
		t.Fatalf("expected winner with 5 votes, got %d", result.WinnerVotes)
	}

	if len(f.treasury.transfers) != 3 {
		t.Fatalf("expected transfers to ranks 1-3 only, got %+v", f.treasury.transfers)
	}
	paid := map[string]int64{}
	for _, transfer := range f.treasury.transfers {
		paid[transfer.target] = transfer.amount
	}
	for _, target := range []string{"acct-1", "acct-2", "acct-3"} {
		if paid[target] != 300 {
			t.Fatalf("expected 300 to %s, got %+v", target, paid)
		}
	}
	for _, target := range []string{"acct-4", "acct-5"} {
		if _, ok := paid[target]; ok {
			t.Fatalf("zero-vote project must not be paid: %+v", paid)
		}
	}
}

func TestResolveVotingSurvivesFailedTransfer(t *testing.T) {
	f := newFixture(entities.PrizePool{Source: "sponsor", Amount: 900, Configured: true})
	f.treasury.failFor["acct-1"] = errors.New("treasury offline")
	f.registerN(t, 2)
	f.castVote(t, "voter-1", 1)
	f.castVote(t, "voter-2", 2)

	result, err := f.resolve.ResolveVoting(context.Background(), ResolveVotingCommand{CallerID: "admin-1"})
	if err != nil {
		t.Fatalf("resolution must survive transfer failure, got %v", err)
	}

	var failed, delivered int
	for _, payout := range result.Payouts {
		if payout.Delivered {
			delivered++
		} else {
			failed++
		}
	}
	if failed != 1 || delivered != 1 {
		t.Fatalf("expected 1 failed and 1 delivered payout, got %+v", result.Payouts)
	}

	state, err := f.store.GetEventState(context.Background())
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if !state.Resolved {
		t.Fatalf("event must stay resolved after failed transfer")
	}
}

func TestResolveVotingWithoutPoolSkipsPayouts(t *testing.T) {
	f := newFixture(entities.PrizePool{})
	f.registerN(t, 2)
	f.castVote(t, "voter-1", 1)

	result, err := f.resolve.ResolveVoting(context.Background(), ResolveVotingCommand{CallerID: "admin-1"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(result.Payouts) != 0 {
		t.Fatalf("expected no payouts, got %+v", result.Payouts)
	}
	if len(f.treasury.transfers) != 0 {
		t.Fatalf("expected no transfers, got %+v", f.treasury.transfers)
	}
}
