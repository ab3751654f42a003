package contract

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

// contractColumns полный список колонок таблицы contracts
var contractColumns = []string{
	"id",
	"tenant_id",
	"client_id",
	"start_date",
	"end_date",
	"agreement_status",
	"total_amount",
	"discount",
	"final_amount",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с договорами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория договоров
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает договор по ID вместе с pivot-записями щитов
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Contract, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(contractColumns...).
		From("contracts").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID})

	// В транзакции блокируем строку - смена статуса договора и каскад
	// на pivot-записи должны применяться как единое целое
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	contract, err := scanContract(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrContractNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan contract: %v", ErrScanRow, err)
	}

	billboards, err := r.listPivots(ctx, executor, contract.ID)
	if err != nil {
		return nil, err
	}
	contract.Billboards = billboards

	return contract, nil
}

// ListActive получает все активные договоры тенанта
// Используется sweep'ом реконсиляции
func (r *Repository) ListActive(ctx context.Context, tenantID int64) ([]*domain.Contract, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(contractColumns...).
		From("contracts").
		Where(squirrel.Eq{"tenant_id": tenantID, "agreement_status": domain.AgreementActive}).
		OrderBy("end_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	contracts := make([]*domain.Contract, 0)
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		contracts = append(contracts, contract)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return contracts, nil
}

// ListTenantIDs получает список всех тенантов, у которых есть договоры
// Используется one-shot sweep-раннером для обхода всех тенантов
func (r *Repository) ListTenantIDs(ctx context.Context) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT tenant_id").
		From("contracts").
		OrderBy("tenant_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListTenantIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTenantIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tenantIDs := make([]int64, 0)
	for rows.Next() {
		var tenantID int64
		if err := rows.Scan(&tenantID); err != nil {
			return nil, fmt.Errorf("%w: ListTenantIDs - scan tenant_id: %v", ErrScanRow, err)
		}
		tenantIDs = append(tenantIDs, tenantID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTenantIDs - rows error: %v", ErrScanRow, err)
	}

	return tenantIDs, nil
}

// UpdateAgreementStatus обновляет статус договора
func (r *Repository) UpdateAgreementStatus(ctx context.Context, tenantID, id int64, status domain.AgreementStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("contracts").
		Set("agreement_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateAgreementStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateAgreementStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateAgreementStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrContractNotFound
	}

	return nil
}

// UpdatePivotStatuses переводит все pivot-записи договора в указанный статус
// Каскад зеркалирует статус договора в booking_status каждой связки щита
func (r *Repository) UpdatePivotStatuses(ctx context.Context, contractID int64, status domain.PivotBookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("contract_billboards").
		Set("booking_status", status).
		Where(squirrel.Eq{"contract_id": contractID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePivotStatuses - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpdatePivotStatuses - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// listPivots получает pivot-записи щитов договора
func (r *Repository) listPivots(ctx context.Context, executor dbmetrics.DBExecutor, contractID int64) ([]domain.ContractBillboard, error) {
	query, args, err := psqlbuilder.Select(
		"contract_id",
		"billboard_id",
		"booking_status",
		"billboard_base_price",
		"billboard_discount_amount",
		"billboard_final_price",
	).
		From("contract_billboards").
		Where(squirrel.Eq{"contract_id": contractID}).
		OrderBy("billboard_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: listPivots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listPivots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	pivots := make([]domain.ContractBillboard, 0)
	for rows.Next() {
		var pivot domain.ContractBillboard
		if err := rows.Scan(
			&pivot.ContractID,
			&pivot.BillboardID,
			&pivot.BookingStatus,
			&pivot.BillboardBasePrice,
			&pivot.BillboardDiscountAmount,
			&pivot.BillboardFinalPrice,
		); err != nil {
			return nil, fmt.Errorf("%w: listPivots - scan row: %v", ErrScanRow, err)
		}
		pivots = append(pivots, pivot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listPivots - rows error: %v", ErrScanRow, err)
	}

	return pivots, nil
}

// rowScanner интерфейс, объединяющий *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanContract сканирует одну строку в договор (без pivot-записей)
func scanContract(row rowScanner) (*domain.Contract, error) {
	var contract domain.Contract
	var startDate, endDate time.Time
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&contract.ID,
		&contract.TenantID,
		&contract.ClientID,
		&startDate,
		&endDate,
		&contract.AgreementStatus,
		&contract.TotalAmount,
		&contract.Discount,
		&contract.FinalAmount,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	contract.StartDate = startDate
	contract.EndDate = endDate
	contract.CreatedAt = createdAt.Time
	contract.UpdatedAt = updatedAt.Time

	return &contract, nil
}
