package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/adstack-mw/billboard-service/internal/domain"
	"github.com/adstack-mw/billboard-service/pkg/dbmetrics"
	"github.com/adstack-mw/billboard-service/pkg/psqlbuilder"
)

// bookingColumns полный список колонок таблицы bookings
var bookingColumns = []string{
	"id",
	"tenant_id",
	"billboard_id",
	"client_id",
	"start_date",
	"end_date",
	"requested_price",
	"final_price",
	"status",
	"rejection_reason",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями щитов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"tenant_id",
			"billboard_id",
			"client_id",
			"start_date",
			"end_date",
			"requested_price",
			"status",
		).
		Values(
			booking.TenantID,
			booking.BillboardID,
			booking.ClientID,
			booking.StartDate,
			booking.EndDate,
			booking.RequestedPrice,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID в рамках тенанта
// Историю статусов и переговоры по цене нужно загружать отдельно
// (ListStatusHistory, ListNegotiations)
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID})

	// В транзакции блокируем строку - переходы статуса должны быть
	// атомарными per-booking
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByBillboardWithFilter получает бронирования щита с фильтрацией
// OnlyBlocking оставляет только подтвержденные бронирования (блокирующие новые заявки)
//
// Если вызывается внутри транзакции с OnlyBlocking=true, добавляет FOR UPDATE -
// это критическая секция подтверждения бронирования: проверка конфликта
// и запись нового статуса должны выполняться как единое целое per-billboard
func (r *Repository) GetByBillboardWithFilter(ctx context.Context, tenantID int64, filter domain.BillboardBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"tenant_id": tenantID, "billboard_id": filter.BillboardID})

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.OnlyBlocking {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StatusConfirmed})
	}

	selectBuilder = selectBuilder.OrderBy("start_date ASC")

	if dbmetrics.IsInTransaction(ctx) && filter.OnlyBlocking {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBillboardWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBillboardWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByClientID получает список бронирований клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByClientID(ctx context.Context, tenantID, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"tenant_id": tenantID, "client_id": clientID}).
		OrderBy("start_date DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListExpiredConfirmed получает подтвержденные бронирования, у которых
// дата окончания уже прошла - кандидаты на автозавершение sweep'ом
func (r *Repository) ListExpiredConfirmed(ctx context.Context, tenantID int64, now time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"tenant_id": tenantID, "status": domain.StatusConfirmed}).
		Where(squirrel.Lt{"end_date": now}).
		OrderBy("end_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListExpiredConfirmed - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpiredConfirmed - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Confirm подтверждает бронирование: статус confirmed + итоговая цена
func (r *Repository) Confirm(ctx context.Context, tenantID, id int64, finalPrice float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("final_price", finalPrice).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Confirm")
}

// Reject отклоняет бронирование с указанием причины
func (r *Repository) Reject(ctx context.Context, tenantID, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusRejected).
		Set("rejection_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reject - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Reject")
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, tenantID, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// UpdateStatus обновляет статус бронирования
// Используется sweep'ом для автозавершения (confirmed → completed)
func (r *Repository) UpdateStatus(ctx context.Context, tenantID, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// AppendStatusHistory добавляет запись в audit trail бронирования
// История append-only: одна запись на переход, первая запись имеет from_status = NULL
func (r *Repository) AppendStatusHistory(ctx context.Context, entry *domain.StatusChange) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_status_history").
		Columns("booking_id", "from_status", "to_status", "reason").
		Values(entry.BookingID, entry.FromStatus, entry.ToStatus, entry.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AppendStatusHistory - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt); err != nil {
		return fmt.Errorf("%w: AppendStatusHistory - execute insert: %v", ErrExecQuery, err)
	}
	entry.CreatedAt = createdAt.Time

	return nil
}

// AppendNegotiation добавляет ценовое предложение в историю переговоров
func (r *Repository) AppendNegotiation(ctx context.Context, entry *domain.PriceNegotiation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_price_negotiations").
		Columns("booking_id", "offered_price", "offered_by", "notes").
		Values(entry.BookingID, entry.OfferedPrice, entry.OfferedBy, entry.Notes).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AppendNegotiation - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt); err != nil {
		return fmt.Errorf("%w: AppendNegotiation - execute insert: %v", ErrExecQuery, err)
	}
	entry.CreatedAt = createdAt.Time

	return nil
}

// ListStatusHistory получает audit trail бронирования в порядке вставки
func (r *Repository) ListStatusHistory(ctx context.Context, bookingID int64) ([]domain.StatusChange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booking_id", "from_status", "to_status", "reason", "created_at").
		From("booking_status_history").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListStatusHistory - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStatusHistory - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	history := make([]domain.StatusChange, 0)
	for rows.Next() {
		var entry domain.StatusChange
		var createdAt sql.NullTime

		if err := rows.Scan(&entry.ID, &entry.BookingID, &entry.FromStatus, &entry.ToStatus, &entry.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListStatusHistory - scan row: %v", ErrScanRow, err)
		}

		entry.CreatedAt = createdAt.Time
		history = append(history, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStatusHistory - rows error: %v", ErrScanRow, err)
	}

	return history, nil
}

// ListNegotiations получает историю переговоров по цене в порядке вставки
func (r *Repository) ListNegotiations(ctx context.Context, bookingID int64) ([]domain.PriceNegotiation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booking_id", "offered_price", "offered_by", "notes", "created_at").
		From("booking_price_negotiations").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListNegotiations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListNegotiations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	negotiations := make([]domain.PriceNegotiation, 0)
	for rows.Next() {
		var entry domain.PriceNegotiation
		var createdAt sql.NullTime

		if err := rows.Scan(&entry.ID, &entry.BookingID, &entry.OfferedPrice, &entry.OfferedBy, &entry.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListNegotiations - scan row: %v", ErrScanRow, err)
		}

		entry.CreatedAt = createdAt.Time
		negotiations = append(negotiations, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListNegotiations - rows error: %v", ErrScanRow, err)
	}

	return negotiations, nil
}

// execExpectingRow выполняет запрос и проверяет, что хотя бы одна строка затронута
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner интерфейс, объединяющий *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в бронирование
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.TenantID,
		&booking.BillboardID,
		&booking.ClientID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.RequestedPrice,
		&booking.FinalPrice,
		&booking.Status,
		&booking.RejectionReason,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
