package queries

import (
	"context"
	"strings"

	"demoday/contexts/hackathon/voting-service/ports"
)

// VoteUseCase serves read-only vote lookups.
type VoteUseCase struct {
	Ledger ports.Repository
}

// MyVotes returns the voter's history in insertion order. Voters with no
// recorded vote get an empty history, not an error.
func (uc VoteUseCase) MyVotes(ctx context.Context, voterID string) ([]uint64, error) {
	record, found, err := uc.Ledger.GetVoterRecord(ctx, strings.TrimSpace(voterID))
	if err != nil {
		return nil, err
	}
	if !found {
		return []uint64{}, nil
	}
	return append([]uint64(nil), record.ProjectIDs...), nil
}

// TotalVotes recomputes the sum of all project vote counts on every call.
func (uc VoteUseCase) TotalVotes(ctx context.Context) (uint64, error) {
	projects, err := uc.Ledger.ListProjects(ctx)
	if err != nil {
		return 0, err
	}
	var total uint64
	for _, project := range projects {
		total += project.VoteCount
	}
	return total, nil
}
