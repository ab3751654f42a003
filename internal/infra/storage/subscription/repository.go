package subscription

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/adstack-mw/billboard-service/internal/domain"
	"github.com/adstack-mw/billboard-service/pkg/dbmetrics"
	"github.com/adstack-mw/billboard-service/pkg/psqlbuilder"
)

// Repository репозиторий для работы с подписками тенантов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория подписок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает подписку по ID в рамках тенанта
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"plan_name",
		"amount",
		"status",
		"current_period_start",
		"current_period_end",
		"failed_payment_attempts",
		"created_at",
		"updated_at",
	).
		From("subscriptions").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var sub domain.Subscription
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&sub.ID,
		&sub.TenantID,
		&sub.PlanName,
		&sub.Amount,
		&sub.Status,
		&sub.CurrentPeriodStart,
		&sub.CurrentPeriodEnd,
		&sub.FailedPaymentAttempts,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan subscription: %v", ErrScanRow, err)
	}

	sub.CreatedAt = createdAt.Time
	sub.UpdatedAt = updatedAt.Time

	return &sub, nil
}

// IncrementFailedAttempts увеличивает счетчик неудачных попыток оплаты
// Вызывается, когда связанный с подпиской платеж терминально провалился
// Счетчик насыщается на MaxFailedPaymentAttempts и дальше не растет
func (r *Repository) IncrementFailedAttempts(ctx context.Context, tenantID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("subscriptions").
		Set("failed_payment_attempts", squirrel.Expr("LEAST(failed_payment_attempts + 1, ?)", domain.MaxFailedPaymentAttempts)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementFailedAttempts - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "IncrementFailedAttempts")
}

// ResetFailedAttempts сбрасывает счетчик неудачных попыток оплаты
// Вызывается после успешного платежа по подписке
func (r *Repository) ResetFailedAttempts(ctx context.Context, tenantID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("subscriptions").
		Set("failed_payment_attempts", 0).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ResetFailedAttempts - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "ResetFailedAttempts")
}

// execExpectingRow выполняет запрос и проверяет, что хотя бы одна строка затронута
func (r *Repository) execExpectingRow(ctx context.Context, executor dbmetrics.DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrSubscriptionNotFound
	}

	return nil
}
