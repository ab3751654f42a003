package billboard

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/adstack-mw/billboard-service/internal/domain"
	"github.com/adstack-mw/billboard-service/pkg/dbmetrics"
	"github.com/adstack-mw/billboard-service/pkg/psqlbuilder"
)

// Repository репозиторий для работы с рекламными щитами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория щитов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает щит по ID в рамках тенанта
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Billboard, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"name",
		"location",
		"base_price",
		"physical_status",
		"status",
		"created_at",
		"updated_at",
	).
		From("billboards").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var billboard domain.Billboard
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&billboard.ID,
		&billboard.TenantID,
		&billboard.Name,
		&billboard.Location,
		&billboard.BasePrice,
		&billboard.PhysicalStatus,
		&billboard.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBillboardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan billboard: %v", ErrScanRow, err)
	}

	billboard.CreatedAt = createdAt.Time
	billboard.UpdatedAt = updatedAt.Time

	return &billboard, nil
}

// UpdateStatus обновляет производный статус щита
// Вызывается после каждого успешного перехода бронирования (push-based синхронизация),
// чтобы billboard.status оставался консистентным без пересканирования на чтении
func (r *Repository) UpdateStatus(ctx context.Context, tenantID, id int64, status domain.BillboardStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("billboards").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBillboardNotFound
	}

	return nil
}
