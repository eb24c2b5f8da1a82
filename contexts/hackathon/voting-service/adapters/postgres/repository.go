package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"demoday/contexts/hackathon/voting-service/domain/entities"
	domainerrors "demoday/contexts/hackathon/voting-service/domain/errors"
	"demoday/contexts/hackathon/voting-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"

	eventStateRowID = 1
)

type unitKey struct{}

// Repository persists the ledger in postgres. Units of work map to database
// transactions; repository methods pick up the transaction handle from the
// context when one is active.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Execute runs fn inside one serializable transaction so the check-then-
// update sequences of the command layer commit atomically or not at all.
func (r *Repository) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, unitKey{}, tx))
	})
}

func (r *Repository) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(unitKey{}).(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *Repository) GetEventState(ctx context.Context) (entities.EventState, error) {
	var row eventStateModel
	err := r.conn(ctx).Where("id = ?", eventStateRowID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.EventState{}, nil
		}
		return entities.EventState{}, r.logError("voting_repo_get_state_failed", err)
	}
	return row.toEntity(), nil
}

func (r *Repository) SaveEventState(ctx context.Context, state entities.EventState) error {
	row := eventStateModelFromEntity(state)
	create := r.conn(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"project_count":         row.ProjectCount,
			"total_voters":          row.TotalVoters,
			"resolved":              row.Resolved,
			"winner_id":             row.WinnerID,
			"prize_pool_source":     row.PrizePoolSource,
			"prize_pool_amount":     row.PrizePoolAmount,
			"prize_pool_configured": row.PrizePoolConfigured,
			"resolved_at":           row.ResolvedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("voting_repo_save_state_failed", create.Error)
	}
	return nil
}

func (r *Repository) SaveProject(ctx context.Context, project entities.Project) error {
	row := projectModelFromEntity(project)
	create := r.conn(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"vote_count": row.VoteCount,
		}),
	}).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return domainerrors.ErrConflict
		}
		return r.logError("voting_repo_save_project_failed", create.Error,
			"project_id", project.ID,
		)
	}
	return nil
}

func (r *Repository) GetProject(ctx context.Context, projectID uint64) (entities.Project, error) {
	var row projectModel
	err := r.conn(ctx).Where("id = ?", projectID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Project{}, domainerrors.ErrProjectNotFound
		}
		return entities.Project{}, r.logError("voting_repo_get_project_failed", err,
			"project_id", projectID,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListProjects(ctx context.Context) ([]entities.Project, error) {
	var rows []projectModel
	if err := r.conn(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_projects_failed", err)
	}
	return toProjectEntities(rows), nil
}

func (r *Repository) GetVoterRecord(ctx context.Context, voterID string) (entities.VoterRecord, bool, error) {
	var rows []voteModel
	err := r.conn(ctx).
		Where("voter_id = ?", strings.TrimSpace(voterID)).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return entities.VoterRecord{}, false, r.logError("voting_repo_get_voter_failed", err,
			"voter_id", strings.TrimSpace(voterID),
		)
	}
	if len(rows) == 0 {
		return entities.VoterRecord{}, false, nil
	}
	record := entities.VoterRecord{
		VoterID:     strings.TrimSpace(voterID),
		ProjectIDs:  make([]uint64, 0, len(rows)),
		FirstVoteAt: rows[0].CreatedAt.UTC(),
		LastVoteAt:  rows[len(rows)-1].CreatedAt.UTC(),
	}
	for _, row := range rows {
		record.ProjectIDs = append(record.ProjectIDs, row.ProjectID)
	}
	record.VoteCount = len(record.ProjectIDs)
	return record, true, nil
}

func (r *Repository) SaveVoterRecord(ctx context.Context, record entities.VoterRecord) error {
	voterID := strings.TrimSpace(record.VoterID)
	for position, projectID := range record.ProjectIDs {
		row := voteModel{
			VoterID:   voterID,
			ProjectID: projectID,
			Position:  position,
			CreatedAt: record.LastVoteAt.UTC(),
		}
		if row.CreatedAt.IsZero() {
			row.CreatedAt = time.Now().UTC()
		}
		create := r.conn(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "voter_id"}, {Name: "project_id"}},
			DoNothing: true,
		}).Create(&row)
		if create.Error != nil {
			if isUniqueViolation(create.Error) {
				return domainerrors.ErrConflict
			}
			return r.logError("voting_repo_save_voter_failed", create.Error,
				"voter_id", voterID,
				"project_id", projectID,
			)
		}
	}
	return nil
}

func (r *Repository) LoadSnapshot(ctx context.Context, viewerID string) (ports.Snapshot, error) {
	snapshot := ports.Snapshot{ViewerVotes: []uint64{}}
	err := r.Execute(ctx, func(ctx context.Context) error {
		state, err := r.GetEventState(ctx)
		if err != nil {
			return err
		}
		projects, err := r.ListProjects(ctx)
		if err != nil {
			return err
		}
		record, found, err := r.GetVoterRecord(ctx, viewerID)
		if err != nil {
			return err
		}

		snapshot.Projects = projects
		snapshot.TotalVoters = state.TotalVoters
		snapshot.Resolved = state.Resolved
		snapshot.WinnerID = state.WinnerID
		for _, project := range projects {
			snapshot.TotalVotes += project.VoteCount
		}
		if found {
			snapshot.ViewerVotes = record.ProjectIDs
		}
		return nil
	})
	if err != nil {
		return ports.Snapshot{}, err
	}
	return snapshot, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := marshalEnvelope(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	create := r.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "outbox_id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return r.logError("voting_repo_append_outbox_failed", create.Error,
			"event_id", row.OutboxID,
			"event_type", row.EventType,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	err := r.conn(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("voting_repo_list_outbox_failed", err)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      row.Payload,
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	ts := publishedAt.UTC()
	update := r.conn(ctx).Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": &ts,
		})
	if update.Error != nil {
		return r.logError("voting_repo_mark_outbox_failed", update.Error,
			"outbox_id", strings.TrimSpace(outboxID),
		)
	}
	if update.RowsAffected == 0 {
		return domainerrors.ErrConflict
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "hackathon/voting-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("voting repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
var _ ports.UnitOfWork = (*Repository)(nil)
var _ ports.OutboxWriter = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
