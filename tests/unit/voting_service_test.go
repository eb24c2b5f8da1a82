package unit

import (
	"context"
	"testing"

	treasuryservice "demoday/contexts/finance/treasury-service"
	votingservice "demoday/contexts/hackathon/voting-service"
	"demoday/contexts/hackathon/voting-service/domain/entities"
	httptransport "demoday/contexts/hackathon/voting-service/transport/http"
)

func newVotingModule(pool entities.PrizePool) (votingservice.Module, treasuryservice.Module) {
	treasury := treasuryservice.NewInMemoryModule("prize-pool", 10_000, nil)
	voting := votingservice.NewInMemoryModule(pool, []string{"admin-1"}, treasury.Service, nil)
	return voting, treasury
}

func registerProjects(t *testing.T, module votingservice.Module, titles ...string) {
	t.Helper()
	size := len(titles)
	fill := func(value string) []string {
		out := make([]string, size)
		for i := range out {
			out[i] = value
		}
		return out
	}
	targets := make([]string, size)
	for i := range targets {
		targets[i] = "acct-" + titles[i]
	}
	_, err := module.Handler.RegisterProjectBatchHandler(context.Background(), "admin-1", httptransport.RegisterProjectBatchRequest{
		Titles:        titles,
		Descriptions:  fill("entry"),
		TeamNames:     fill("team"),
		Categories:    fill("tools"),
		LiveURLs:      fill(""),
		DemoURLs:      fill(""),
		SourceURLs:    fill(""),
		PayoutTargets: targets,
	})
	if err != nil {
		t.Fatalf("register batch: %v", err)
	}
}

func TestVotingLifecycleWithPrizeDistribution(t *testing.T) {
	voting, treasury := newVotingModule(entities.PrizePool{Source: "sponsor", Amount: 900, Configured: true})
	registerProjects(t, voting, "alpha", "beta", "gamma", "delta")

	votes := []struct {
		voter   string
		project uint64
	}{
		{"voter-1", 1},
		{"voter-2", 1},
		{"voter-2", 2},
		{"voter-3", 2},
		{"voter-3", 1},
		{"voter-4", 3},
	}
	for _, v := range votes {
		if _, err := voting.Handler.CastVoteHandler(context.Background(), v.voter, httptransport.CastVoteRequest{ProjectID: v.project}); err != nil {
			t.Fatalf("vote %s->%d: %v", v.voter, v.project, err)
		}
	}

	data, err := voting.Handler.VotingDataHandler(context.Background(), "voter-2")
	if err != nil {
		t.Fatalf("voting data: %v", err)
	}
	if data.TotalVotes != 6 || data.TotalVoters != 4 {
		t.Fatalf("expected 6 votes from 4 voters, got %d/%d", data.TotalVotes, data.TotalVoters)
	}
	if len(data.ViewerVotes) != 2 {
		t.Fatalf("expected viewer history of 2, got %v", data.ViewerVotes)
	}

	resolution, err := voting.Handler.ResolveVotingHandler(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolution.WinnerID != 1 {
		t.Fatalf("expected winner 1, got %d", resolution.WinnerID)
	}
	if len(resolution.Ranked) != 3 {
		t.Fatalf("expected 3 ranked slots, got %d", len(resolution.Ranked))
	}
	if resolution.Ranked[1].ProjectID != 2 || resolution.Ranked[2].ProjectID != 3 {
		t.Fatalf("unexpected ranking %+v", resolution.Ranked)
	}

	transfers, err := treasury.Handler.ListTransfersHandler(context.Background(), 10)
	if err != nil {
		t.Fatalf("list transfers: %v", err)
	}
	if len(transfers.Items) != 3 {
		t.Fatalf("expected 3 prize transfers, got %d", len(transfers.Items))
	}
	var paid int64
	for _, item := range transfers.Items {
		paid += item.Amount
	}
	// Three 300 shares of the 900 pool; a 1000 pool would leave 1 behind.
	if paid != 900 {
		t.Fatalf("expected 900 distributed, got %d", paid)
	}

	status, err := voting.Handler.ResolutionStatusHandler(context.Background())
	if err != nil {
		t.Fatalf("resolution status: %v", err)
	}
	if !status.Resolved || status.WinnerID != 1 {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestVotingLifecycleWithoutPrizePool(t *testing.T) {
	voting, treasury := newVotingModule(entities.PrizePool{})
	registerProjects(t, voting, "alpha", "beta")

	if _, err := voting.Handler.CastVoteHandler(context.Background(), "voter-1", httptransport.CastVoteRequest{ProjectID: 2}); err != nil {
		t.Fatalf("vote: %v", err)
	}

	resolution, err := voting.Handler.ResolveVotingHandler(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolution.WinnerID != 2 {
		t.Fatalf("expected winner 2, got %d", resolution.WinnerID)
	}
	if len(resolution.Payouts) != 0 {
		t.Fatalf("expected no payouts, got %+v", resolution.Payouts)
	}

	transfers, err := treasury.Handler.ListTransfersHandler(context.Background(), 10)
	if err != nil {
		t.Fatalf("list transfers: %v", err)
	}
	if len(transfers.Items) != 0 {
		t.Fatalf("expected no transfers, got %+v", transfers.Items)
	}
}

func TestTotalVotesRecomputedFromProjects(t *testing.T) {
	voting, _ := newVotingModule(entities.PrizePool{})
	registerProjects(t, voting, "alpha", "beta", "gamma")

	for _, v := range []struct {
		voter   string
		project uint64
	}{
		{"voter-1", 1},
		{"voter-1", 3},
		{"voter-2", 3},
	} {
		if _, err := voting.Handler.CastVoteHandler(context.Background(), v.voter, httptransport.CastVoteRequest{ProjectID: v.project}); err != nil {
			t.Fatalf("vote: %v", err)
		}
	}

	totals, err := voting.Handler.TotalVotesHandler(context.Background())
	if err != nil {
		t.Fatalf("total votes: %v", err)
	}
	if totals.TotalVotes != 3 {
		t.Fatalf("expected 3, got %d", totals.TotalVotes)
	}

	mine, err := voting.Handler.MyVotesHandler(context.Background(), "voter-1")
	if err != nil {
		t.Fatalf("my votes: %v", err)
	}
	if len(mine.ProjectIDs) != 2 || mine.ProjectIDs[0] != 1 || mine.ProjectIDs[1] != 3 {
		t.Fatalf("expected ordered history [1 3], got %v", mine.ProjectIDs)
	}

	empty, err := voting.Handler.MyVotesHandler(context.Background(), "voter-none")
	if err != nil {
		t.Fatalf("my votes for unknown voter: %v", err)
	}
	if len(empty.ProjectIDs) != 0 {
		t.Fatalf("expected empty history, got %v", empty.ProjectIDs)
	}
}
