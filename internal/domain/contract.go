package domain

import "time"

// AgreementStatus represents the overall status of a contract
type AgreementStatus string

const (
	AgreementDraft     AgreementStatus = "draft"
	AgreementActive    AgreementStatus = "active"
	AgreementCompleted AgreementStatus = "completed"
	AgreementCancelled AgreementStatus = "cancelled"
)

// PivotBookingStatus represents the per-billboard booking status within a contract
type PivotBookingStatus string

const (
	PivotPending   PivotBookingStatus = "pending"
	PivotInUse     PivotBookingStatus = "in_use"
	PivotCompleted PivotBookingStatus = "completed"
	PivotCancelled PivotBookingStatus = "cancelled"
)

// Contract represents a tenant-level agreement binding a client
// to one-or-more billboards with a price and agreement period
type Contract struct {
	ID       int64
	TenantID int64
	ClientID int64

	StartDate time.Time
	EndDate   time.Time

	AgreementStatus AgreementStatus
	TotalAmount     float64
	Discount        float64
	FinalAmount     float64

	Billboards []ContractBillboard

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContractBillboard represents the pivot record of a billboard within a contract,
// carrying its own booking status independent of the contract's overall status
type ContractBillboard struct {
	ContractID  int64
	BillboardID int64

	BookingStatus           PivotBookingStatus
	BillboardBasePrice      float64
	BillboardDiscountAmount float64
	BillboardFinalPrice     float64
}

// PivotStatusFor возвращает статус pivot-записи, соответствующий статусу договора
// Единая таблица соответствия для time-driven sweep'а и ручного изменения
// статуса оператором - обе ветки обязаны использовать её, чтобы логика не расходилась
func PivotStatusFor(status AgreementStatus) PivotBookingStatus {
	switch status {
	case AgreementActive:
		return PivotInUse
	case AgreementCompleted:
		return PivotCompleted
	case AgreementCancelled:
		return PivotCancelled
	default:
		return PivotPending
	}
}

// CanTransitionTo проверяет допустимость перехода статуса договора
// draft → active | cancelled; active → completed | cancelled;
// completed и cancelled - терминальные
func (c *Contract) CanTransitionTo(next AgreementStatus) bool {
	switch c.AgreementStatus {
	case AgreementDraft:
		return next == AgreementActive || next == AgreementCancelled
	case AgreementActive:
		return next == AgreementCompleted || next == AgreementCancelled
	default:
		return false
	}
}

// DaysUntilExpiration возвращает количество дней до истечения договора
// (целое, усечение)
func (c *Contract) DaysUntilExpiration(now time.Time) int {
	return DaysBetween(now, c.EndDate)
}

// IsExpired returns true if the contract's end date has passed
func (c *Contract) IsExpired(now time.Time) bool {
	return now.After(c.EndDate)
}
