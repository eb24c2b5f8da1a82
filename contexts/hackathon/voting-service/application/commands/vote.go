package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "demoday/contexts/hackathon/voting-service/application"
	domainerrors "demoday/contexts/hackathon/voting-service/domain/errors"
	"demoday/contexts/hackathon/voting-service/ports"
)

// CastVoteCommand is the write-model input for vote recording.
type CastVoteCommand struct {
	VoterID   string
	ProjectID uint64
}

// CastVoteResult returns the voter's updated history and the project's new
// count for transport mapping and event payloads.
type CastVoteResult struct {
	VoterID           string
	ProjectID         uint64
	ProjectVotes      uint64
	VoterHistory      []uint64
	FirstVoteForVoter bool
}

// VoteUseCase records votes under the per-voter constraints: two distinct
// projects at most, no duplicates, nothing after resolution. The whole
// check-then-update sequence runs as one unit of work so the cap can never
// be exceeded by interleaving.
type VoteUseCase struct {
	Ledger ports.Repository
	UoW    ports.UnitOfWork
	Outbox ports.OutboxWriter
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// CastVote appends projectID to the voter's history and increments the
// project's count, or rejects the call leaving state untouched.
func (uc VoteUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (CastVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	voterID := strings.TrimSpace(cmd.VoterID)
	logger.Info("vote processing started",
		"event", "voting_vote_started",
		"module", "hackathon/voting-service",
		"layer", "application",
		"voter_id", voterID,
		"project_id", cmd.ProjectID,
	)
	if voterID == "" {
		logger.Warn("vote validation failed",
			"event", "voting_vote_validation_failed",
			"module", "hackathon/voting-service",
			"layer", "application",
			"project_id", cmd.ProjectID,
		)
		return CastVoteResult{}, domainerrors.ErrInvalidVoteInput
	}

	now := uc.now()
	var result CastVoteResult
	err := uc.UoW.Execute(ctx, func(ctx context.Context) error {
		state, err := uc.Ledger.GetEventState(ctx)
		if err != nil {
			return err
		}
		if state.Resolved {
			return domainerrors.ErrVotingAlreadyResolved
		}
		if cmd.ProjectID == 0 || cmd.ProjectID > state.ProjectCount {
			return domainerrors.ErrProjectNotFound
		}

		record, found, err := uc.Ledger.GetVoterRecord(ctx, voterID)
		if err != nil {
			return err
		}
		if record.HasVoted(cmd.ProjectID) {
			return domainerrors.ErrAlreadyVotedForProject
		}
		if record.AtCapacity() {
			return domainerrors.ErrMaxVotesReached
		}

		project, err := uc.Ledger.GetProject(ctx, cmd.ProjectID)
		if err != nil {
			return err
		}

		if !found {
			record.VoterID = voterID
			record.FirstVoteAt = now
			state.TotalVoters++
		}
		record.ProjectIDs = append(record.ProjectIDs, cmd.ProjectID)
		record.VoteCount = len(record.ProjectIDs)
		record.LastVoteAt = now
		project.VoteCount++

		if err := uc.Ledger.SaveVoterRecord(ctx, record); err != nil {
			return err
		}
		if err := uc.Ledger.SaveProject(ctx, project); err != nil {
			return err
		}
		if err := uc.Ledger.SaveEventState(ctx, state); err != nil {
			return err
		}

		result = CastVoteResult{
			VoterID:           voterID,
			ProjectID:         cmd.ProjectID,
			ProjectVotes:      project.VoteCount,
			VoterHistory:      append([]uint64(nil), record.ProjectIDs...),
			FirstVoteForVoter: !found,
		}
		return uc.appendVoteEvent(ctx, result, now)
	})
	if err != nil {
		logger.Warn("vote rejected",
			"event", "voting_vote_rejected",
			"module", "hackathon/voting-service",
			"layer", "application",
			"voter_id", voterID,
			"project_id", cmd.ProjectID,
			"error", err.Error(),
		)
		return CastVoteResult{}, err
	}

	logger.Info("vote recorded",
		"event", "voting_vote_recorded",
		"module", "hackathon/voting-service",
		"layer", "application",
		"voter_id", voterID,
		"project_id", cmd.ProjectID,
		"project_votes", result.ProjectVotes,
		"first_vote", result.FirstVoteForVoter,
	)
	return result, nil
}

func (uc VoteUseCase) appendVoteEvent(ctx context.Context, result CastVoteResult, occurredAt time.Time) error {
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := newVotingEnvelope(eventID, "vote.cast", result.ProjectID, occurredAt, map[string]any{
		"project_id":    result.ProjectID,
		"voter_id":      result.VoterID,
		"project_votes": result.ProjectVotes,
		"first_vote":    result.FirstVoteForVoter,
		"occurred_at":   occurredAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, envelope)
}

func (uc VoteUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
