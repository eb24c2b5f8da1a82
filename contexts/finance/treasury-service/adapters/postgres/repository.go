package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"demoday/contexts/finance/treasury-service/domain/entities"
	domainerrors "demoday/contexts/finance/treasury-service/domain/errors"
	"demoday/contexts/finance/treasury-service/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type unitKey struct{}

// Repository persists accounts and transfer attempts in postgres. A unit of
// work maps to one database transaction.
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

func (r *Repository) GetAccount(ctx context.Context, name string) (entities.Account, error) {
	var row accountModel
	err := r.conn(ctx).Where("name = ?", strings.TrimSpace(name)).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Account{}, domainerrors.ErrAccountNotFound
		}
		return entities.Account{}, r.logError("treasury_repo_get_account_failed", err,
			"account", strings.TrimSpace(name),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) SaveAccount(ctx context.Context, account entities.Account) error {
	row := accountModelFromEntity(account)
	create := r.conn(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]any{
			"balance":    row.Balance,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("treasury_repo_save_account_failed", create.Error,
			"account", account.Name,
		)
	}
	return nil
}

func (r *Repository) SaveTransfer(ctx context.Context, transfer entities.Transfer) error {
	row := transferModelFromEntity(transfer)
	create := r.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "transfer_id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return r.logError("treasury_repo_save_transfer_failed", create.Error,
			"transfer_id", transfer.TransferID,
		)
	}
	return nil
}

func (r *Repository) GetTransfer(ctx context.Context, transferID string) (entities.Transfer, error) {
	var row transferModel
	err := r.conn(ctx).Where("transfer_id = ?", strings.TrimSpace(transferID)).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Transfer{}, domainerrors.ErrTransferNotFound
		}
		return entities.Transfer{}, r.logError("treasury_repo_get_transfer_failed", err,
			"transfer_id", strings.TrimSpace(transferID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListTransfers(ctx context.Context, limit int) ([]entities.Transfer, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []transferModel
	err := r.conn(ctx).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("treasury_repo_list_transfers_failed", err)
	}
	return toTransferEntities(rows), nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "finance/treasury-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("treasury repository operation failed", fields...)
	return err
}

var _ ports.Repository = (*Repository)(nil)
var _ ports.UnitOfWork = (*Repository)(nil)
