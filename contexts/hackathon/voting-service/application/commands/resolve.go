package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "demoday/contexts/hackathon/voting-service/application"
	"demoday/contexts/hackathon/voting-service/domain/entities"
	domainerrors "demoday/contexts/hackathon/voting-service/domain/errors"
	"demoday/contexts/hackathon/voting-service/domain/services"
	"demoday/contexts/hackathon/voting-service/ports"
)

// ResolveVotingCommand freezes the ledger and computes the final ranking.
type ResolveVotingCommand struct {
	CallerID string
}

// PayoutResult records one attempted prize transfer.
type PayoutResult struct {
	ProjectID uint64
	Target    string
	Amount    int64
	Delivered bool
}

// ResolveVotingResult is the irreversible outcome of the event.
type ResolveVotingResult struct {
	WinnerID    uint64
	WinnerTitle string
	WinnerVotes uint64
	Ranked      []entities.RankedProject
	Payouts     []PayoutResult
}

// ResolveUseCase performs the one-time resolution: administrator gate,
// ranking, winner selection, and optional prize distribution. All ledger
// state is finalized before the treasury is invoked, so a re-entrant
// transfer callee can never observe an unresolved event.
type ResolveUseCase struct {
	Ledger   ports.Repository
	UoW      ports.UnitOfWork
	Admins   ports.AdminGate
	Treasury ports.Treasury
	Outbox   ports.OutboxWriter
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

// ResolveVoting ranks projects, marks the event resolved, and issues prize
// shares to the occupied slots when a pool is configured. A failed transfer
// does not unwind resolution; it is logged and emitted for out-of-band
// retry.
func (uc ResolveUseCase) ResolveVoting(ctx context.Context, cmd ResolveVotingCommand) (ResolveVotingResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	callerID := strings.TrimSpace(cmd.CallerID)
	logger.Info("resolution started",
		"event", "voting_resolve_started",
		"module", "hackathon/voting-service",
		"layer", "application",
		"caller_id", callerID,
	)

	allowed, err := uc.Admins.IsAdministrator(ctx, callerID)
	if err != nil {
		logger.Error("administrator check failed",
			"event", "voting_admin_check_failed",
			"module", "hackathon/voting-service",
			"layer", "application",
			"caller_id", callerID,
			"error", err.Error(),
		)
		return ResolveVotingResult{}, err
	}
	if !allowed {
		logger.Warn("administrator gate rejected caller",
			"event", "voting_resolve_unauthorized",
			"module", "hackathon/voting-service",
			"layer", "application",
			"caller_id", callerID,
		)
		return ResolveVotingResult{}, domainerrors.ErrUnauthorized
	}

	now := uc.now()
	var result ResolveVotingResult
	var pool entities.PrizePool
	err = uc.UoW.Execute(ctx, func(ctx context.Context) error {
		state, err := uc.Ledger.GetEventState(ctx)
		if err != nil {
			return err
		}
		if state.Resolved {
			return domainerrors.ErrVotingAlreadyResolved
		}
		if state.ProjectCount == 0 || state.TotalVoters == 0 {
			return domainerrors.ErrNoVotesCast
		}

		projects, err := uc.Ledger.ListProjects(ctx)
		if err != nil {
			return err
		}
		ranked := services.RankTopProjects(projects)

		state.Resolved = true
		state.ResolvedAt = &now
		if len(ranked) > 0 {
			state.WinnerID = ranked[0].ProjectID
		}
		if err := uc.Ledger.SaveEventState(ctx, state); err != nil {
			return err
		}

		result = ResolveVotingResult{Ranked: ranked}
		if len(ranked) > 0 {
			result.WinnerID = ranked[0].ProjectID
			result.WinnerTitle = ranked[0].Title
			result.WinnerVotes = ranked[0].VoteCount
		}
		pool = state.PrizePool
		return uc.appendResolutionEvent(ctx, result, now)
	})
	if err != nil {
		logger.Warn("resolution rejected",
			"event", "voting_resolve_rejected",
			"module", "hackathon/voting-service",
			"layer", "application",
			"caller_id", callerID,
			"error", err.Error(),
		)
		return ResolveVotingResult{}, err
	}

	// State is final from here; payouts happen strictly after the unit of
	// work commits.
	result.Payouts = uc.distributePrizes(ctx, pool, result.Ranked, now)

	logger.Info("voting resolved",
		"event", "voting_resolved",
		"module", "hackathon/voting-service",
		"layer", "application",
		"winner_id", result.WinnerID,
		"winner_title", result.WinnerTitle,
		"winner_votes", result.WinnerVotes,
		"ranked_count", len(result.Ranked),
		"payout_count", len(result.Payouts),
	)
	return result, nil
}

func (uc ResolveUseCase) distributePrizes(
	ctx context.Context,
	pool entities.PrizePool,
	ranked []entities.RankedProject,
	occurredAt time.Time,
) []PayoutResult {
	logger := application.ResolveLogger(uc.Logger)
	if !pool.Configured || pool.Amount <= 0 || uc.Treasury == nil {
		return nil
	}
	share := services.SplitPrize(pool.Amount)
	if share <= 0 {
		return nil
	}

	payouts := make([]PayoutResult, 0, len(ranked))
	for _, slot := range ranked {
		if slot.VoteCount == 0 || strings.TrimSpace(slot.PayoutTarget) == "" {
			continue
		}
		payout := PayoutResult{
			ProjectID: slot.ProjectID,
			Target:    slot.PayoutTarget,
			Amount:    share,
		}
		if err := uc.Treasury.Transfer(ctx, slot.PayoutTarget, share); err != nil {
			logger.Error("prize transfer failed",
				"event", "voting_prize_transfer_failed",
				"module", "hackathon/voting-service",
				"layer", "application",
				"project_id", slot.ProjectID,
				"target", slot.PayoutTarget,
				"amount", share,
				"error", err.Error(),
			)
			uc.appendTransferFailedEvent(ctx, payout, occurredAt, err)
		} else {
			payout.Delivered = true
			logger.Info("prize share delivered",
				"event", "voting_prize_transfer_delivered",
				"module", "hackathon/voting-service",
				"layer", "application",
				"project_id", slot.ProjectID,
				"target", slot.PayoutTarget,
				"amount", share,
			)
		}
		payouts = append(payouts, payout)
	}
	return payouts
}

func (uc ResolveUseCase) appendResolutionEvent(ctx context.Context, result ResolveVotingResult, occurredAt time.Time) error {
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := newVotingEnvelope(eventID, "voting.resolved", result.WinnerID, occurredAt, map[string]any{
		"winner_id":    result.WinnerID,
		"winner_title": result.WinnerTitle,
		"winner_votes": result.WinnerVotes,
		"occurred_at":  occurredAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, envelope)
}

func (uc ResolveUseCase) appendTransferFailedEvent(ctx context.Context, payout PayoutResult, occurredAt time.Time, cause error) {
	if uc.Outbox == nil {
		return
	}
	logger := application.ResolveLogger(uc.Logger)
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		logger.Error("transfer failure event id generation failed",
			"event", "voting_transfer_failed_event_id_failed",
			"module", "hackathon/voting-service",
			"layer", "application",
			"error", err.Error(),
		)
		return
	}
	envelope, err := newVotingEnvelope(eventID, "prize.transfer_failed", payout.ProjectID, occurredAt, map[string]any{
		"project_id":  payout.ProjectID,
		"target":      payout.Target,
		"amount":      payout.Amount,
		"cause":       cause.Error(),
		"occurred_at": occurredAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	if err := uc.Outbox.AppendOutbox(ctx, envelope); err != nil {
		logger.Error("transfer failure event append failed",
			"event", "voting_transfer_failed_event_append_failed",
			"module", "hackathon/voting-service",
			"layer", "application",
			"project_id", payout.ProjectID,
			"error", err.Error(),
		)
	}
}

func (uc ResolveUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
