package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/adstack-mw/billboard-service/internal/domain"
	"github.com/adstack-mw/billboard-service/pkg/dbmetrics"
	"github.com/adstack-mw/billboard-service/pkg/psqlbuilder"
)

// paymentColumns полный список колонок таблицы payments
var paymentColumns = []string{
	"id",
	"tenant_id",
	"provider",
	"amount",
	"phone_number",
	"reference",
	"status",
	"retry_count",
	"max_attempts",
	"booking_id",
	"subscription_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с платежами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый платеж
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"tenant_id",
			"provider",
			"amount",
			"phone_number",
			"reference",
			"status",
			"retry_count",
			"max_attempts",
			"booking_id",
			"subscription_id",
		).
		Values(
			payment.TenantID,
			payment.Provider,
			payment.Amount,
			payment.PhoneNumber,
			payment.Reference,
			payment.Status,
			payment.RetryCount,
			payment.MaxAttempts,
			payment.BookingID,
			payment.SubscriptionID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&payment.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return payment, nil
}

// GetByID получает платеж по ID в рамках тенанта
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Payment, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id, "tenant_id": tenantID}, "GetByID")
}

// GetByReference получает платеж по уникальному reference
// Используется при обработке webhook'ов от платежного шлюза
func (r *Repository) GetByReference(ctx context.Context, tenantID int64, reference string) (*domain.Payment, error) {
	return r.getOne(ctx, squirrel.Eq{"reference": reference, "tenant_id": tenantID}, "GetByReference")
}

// UpdateStatus обновляет статус платежа
func (r *Repository) UpdateStatus(ctx context.Context, tenantID, id int64, status domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// MarkRetried увеличивает счетчик повторов и возвращает платеж в pending
func (r *Repository) MarkRetried(ctx context.Context, tenantID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentPending).
		Set("retry_count", squirrel.Expr("retry_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkRetried - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "MarkRetried")
}

// AppendProviderResponse добавляет ответ провайдера в append-only лог
func (r *Repository) AppendProviderResponse(ctx context.Context, entry *domain.ProviderResponse) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payment_provider_responses").
		Columns("payment_id", "result_code", "raw_payload").
		Values(entry.PaymentID, entry.ResultCode, entry.RawPayload).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AppendProviderResponse - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt); err != nil {
		return fmt.Errorf("%w: AppendProviderResponse - execute insert: %v", ErrExecQuery, err)
	}
	entry.CreatedAt = createdAt.Time

	return nil
}

// AppendRetryAttempt добавляет запись в историю повторов платежа
func (r *Repository) AppendRetryAttempt(ctx context.Context, entry *domain.RetryAttempt) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payment_retry_history").
		Columns("payment_id", "attempt_number").
		Values(entry.PaymentID, entry.AttemptNumber).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AppendRetryAttempt - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt); err != nil {
		return fmt.Errorf("%w: AppendRetryAttempt - execute insert: %v", ErrExecQuery, err)
	}
	entry.CreatedAt = createdAt.Time

	return nil
}

// ListProviderResponses получает лог ответов провайдера в порядке вставки
func (r *Repository) ListProviderResponses(ctx context.Context, paymentID int64) ([]domain.ProviderResponse, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "payment_id", "result_code", "raw_payload", "created_at").
		From("payment_provider_responses").
		Where(squirrel.Eq{"payment_id": paymentID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListProviderResponses - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListProviderResponses - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	responses := make([]domain.ProviderResponse, 0)
	for rows.Next() {
		var entry domain.ProviderResponse
		var createdAt sql.NullTime

		if err := rows.Scan(&entry.ID, &entry.PaymentID, &entry.ResultCode, &entry.RawPayload, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListProviderResponses - scan row: %v", ErrScanRow, err)
		}

		entry.CreatedAt = createdAt.Time
		responses = append(responses, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListProviderResponses - rows error: %v", ErrScanRow, err)
	}

	return responses, nil
}

// getOne получает один платеж по условию
func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, op string) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(where)

	// В транзакции блокируем строку - переходы статуса платежа атомарны
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var payment domain.Payment
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&payment.ID,
		&payment.TenantID,
		&payment.Provider,
		&payment.Amount,
		&payment.PhoneNumber,
		&payment.Reference,
		&payment.Status,
		&payment.RetryCount,
		&payment.MaxAttempts,
		&payment.BookingID,
		&payment.SubscriptionID,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan payment: %v", ErrScanRow, op, err)
	}

	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return &payment, nil
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
		return ErrPaymentNotFound
	}

	return nil
}
