package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "demoday/contexts/hackathon/voting-service/application"
	"demoday/contexts/hackathon/voting-service/domain/entities"
	domainerrors "demoday/contexts/hackathon/voting-service/domain/errors"
	"demoday/contexts/hackathon/voting-service/ports"
)

// ProjectFields carries the caller-supplied attributes of one registration.
// Field contents are stored as given; only call-level shape is validated.
type ProjectFields struct {
	Title        string
	Description  string
	TeamName     string
	Category     string
	LiveURL      string
	DemoURL      string
	SourceURL    string
	PayoutTarget string
}

// RegisterProjectCommand registers a single project on behalf of an
// administrator.
type RegisterProjectCommand struct {
	CallerID string
	Fields   ProjectFields
}

// RegisterProjectBatchCommand registers several projects from parallel
// field arrays. All arrays must have equal length; the batch is
// all-or-nothing.
type RegisterProjectBatchCommand struct {
	CallerID      string
	Titles        []string
	Descriptions  []string
	TeamNames     []string
	Categories    []string
	LiveURLs      []string
	DemoURLs      []string
	SourceURLs    []string
	PayoutTargets []string
}

// RegisterUseCase orchestrates project registration: administrator gate,
// sequential identifier assignment, and registration event emission.
type RegisterUseCase struct {
	Ledger ports.Repository
	UoW    ports.UnitOfWork
	Admins ports.AdminGate
	Outbox ports.OutboxWriter
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// RegisterProject assigns the next sequential identifier and stores a new
// project with vote count zero.
func (uc RegisterUseCase) RegisterProject(ctx context.Context, cmd RegisterProjectCommand) (entities.Project, error) {
	logger := application.ResolveLogger(uc.Logger)
	logger.Info("project registration started",
		"event", "voting_register_project_started",
		"module", "hackathon/voting-service",
		"layer", "application",
		"caller_id", strings.TrimSpace(cmd.CallerID),
		"title", strings.TrimSpace(cmd.Fields.Title),
	)

	if err := uc.requireAdministrator(ctx, cmd.CallerID, "voting_register_project_unauthorized"); err != nil {
		return entities.Project{}, err
	}

	now := uc.now()
	var project entities.Project
	err := uc.UoW.Execute(ctx, func(ctx context.Context) error {
		var err error
		project, err = uc.registerOne(ctx, cmd.Fields, now)
		return err
	})
	if err != nil {
		return entities.Project{}, err
	}

	logger.Info("project registered",
		"event", "voting_project_registered",
		"module", "hackathon/voting-service",
		"layer", "application",
		"project_id", project.ID,
		"title", project.Title,
		"team_name", project.TeamName,
	)
	return project, nil
}

// RegisterProjectBatch registers entries in array order, assigning
// identifiers in that same order. A length mismatch rejects the whole batch
// before any identifier is assigned.
func (uc RegisterUseCase) RegisterProjectBatch(ctx context.Context, cmd RegisterProjectBatchCommand) ([]entities.Project, error) {
	logger := application.ResolveLogger(uc.Logger)
	logger.Info("project batch registration started",
		"event", "voting_register_batch_started",
		"module", "hackathon/voting-service",
		"layer", "application",
		"caller_id", strings.TrimSpace(cmd.CallerID),
		"batch_size", len(cmd.Titles),
	)

	if err := uc.requireAdministrator(ctx, cmd.CallerID, "voting_register_batch_unauthorized"); err != nil {
		return nil, err
	}

	size := len(cmd.Titles)
	for _, length := range []int{
		len(cmd.Descriptions),
		len(cmd.TeamNames),
		len(cmd.Categories),
		len(cmd.LiveURLs),
		len(cmd.DemoURLs),
		len(cmd.SourceURLs),
		len(cmd.PayoutTargets),
	} {
		if length != size {
			logger.Warn("project batch arrays mismatched",
				"event", "voting_register_batch_length_mismatch",
				"module", "hackathon/voting-service",
				"layer", "application",
				"caller_id", strings.TrimSpace(cmd.CallerID),
				"batch_size", size,
			)
			return nil, domainerrors.ErrArrayLengthMismatch
		}
	}

	now := uc.now()
	projects := make([]entities.Project, 0, size)
	err := uc.UoW.Execute(ctx, func(ctx context.Context) error {
		for i := 0; i < size; i++ {
			project, err := uc.registerOne(ctx, ProjectFields{
				Title:        cmd.Titles[i],
				Description:  cmd.Descriptions[i],
				TeamName:     cmd.TeamNames[i],
				Category:     cmd.Categories[i],
				LiveURL:      cmd.LiveURLs[i],
				DemoURL:      cmd.DemoURLs[i],
				SourceURL:    cmd.SourceURLs[i],
				PayoutTarget: cmd.PayoutTargets[i],
			}, now)
			if err != nil {
				return err
			}
			projects = append(projects, project)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("project batch registered",
		"event", "voting_project_batch_registered",
		"module", "hackathon/voting-service",
		"layer", "application",
		"batch_size", len(projects),
	)
	return projects, nil
}

func (uc RegisterUseCase) registerOne(ctx context.Context, fields ProjectFields, now time.Time) (entities.Project, error) {
	state, err := uc.Ledger.GetEventState(ctx)
	if err != nil {
		return entities.Project{}, err
	}

	state.ProjectCount++
	project := entities.Project{
		ID:           state.ProjectCount,
		Title:        strings.TrimSpace(fields.Title),
		Description:  strings.TrimSpace(fields.Description),
		TeamName:     strings.TrimSpace(fields.TeamName),
		Category:     strings.TrimSpace(fields.Category),
		LiveURL:      strings.TrimSpace(fields.LiveURL),
		DemoURL:      strings.TrimSpace(fields.DemoURL),
		SourceURL:    strings.TrimSpace(fields.SourceURL),
		PayoutTarget: strings.TrimSpace(fields.PayoutTarget),
		VoteCount:    0,
		RegisteredAt: now,
	}
	if err := uc.Ledger.SaveProject(ctx, project); err != nil {
		return entities.Project{}, err
	}
	if err := uc.Ledger.SaveEventState(ctx, state); err != nil {
		return entities.Project{}, err
	}
	if err := uc.appendRegistrationEvent(ctx, project, now); err != nil {
		return entities.Project{}, err
	}
	return project, nil
}

func (uc RegisterUseCase) requireAdministrator(ctx context.Context, callerID string, event string) error {
	logger := application.ResolveLogger(uc.Logger)
	allowed, err := uc.Admins.IsAdministrator(ctx, strings.TrimSpace(callerID))
	if err != nil {
		logger.Error("administrator check failed",
			"event", "voting_admin_check_failed",
			"module", "hackathon/voting-service",
			"layer", "application",
			"caller_id", strings.TrimSpace(callerID),
			"error", err.Error(),
		)
		return err
	}
	if !allowed {
		logger.Warn("administrator gate rejected caller",
			"event", event,
			"module", "hackathon/voting-service",
			"layer", "application",
			"caller_id", strings.TrimSpace(callerID),
		)
		return domainerrors.ErrUnauthorized
	}
	return nil
}

func (uc RegisterUseCase) appendRegistrationEvent(ctx context.Context, project entities.Project, occurredAt time.Time) error {
	// Outbox is optional for pure read/test wiring, so nil is treated as no-op.
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := newVotingEnvelope(eventID, "project.registered", project.ID, occurredAt, map[string]any{
		"project_id":  project.ID,
		"title":       project.Title,
		"team_name":   project.TeamName,
		"category":    project.Category,
		"occurred_at": occurredAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, envelope)
}

func (uc RegisterUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
