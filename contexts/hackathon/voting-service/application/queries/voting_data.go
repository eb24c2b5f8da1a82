package queries

import (
	"context"
	"strings"

	"demoday/contexts/hackathon/voting-service/ports"
)

// VotingDataUseCase serves the composed dashboard view.
type VotingDataUseCase struct {
	Ledger ports.Repository
}

// VotingData returns the full project list, vote totals, the viewer's
// history, and resolution status as one consistent snapshot. The repository
// assembles it under a single lock or transaction, so the view never mixes
// pre- and post-mutation values.
func (uc VotingDataUseCase) VotingData(ctx context.Context, viewerID string) (ports.Snapshot, error) {
	return uc.Ledger.LoadSnapshot(ctx, strings.TrimSpace(viewerID))
}
