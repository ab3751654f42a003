package domain

import "time"

// BookingStatus represents the status of a billboard booking
type BookingStatus string

const (
	StatusRequested BookingStatus = "requested"
	StatusConfirmed BookingStatus = "confirmed"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// NegotiationParty represents who made a price offer
type NegotiationParty string

const (
	OfferedByClient NegotiationParty = "client"
	OfferedByOwner  NegotiationParty = "owner"
)

// Booking represents a client's request to occupy a billboard for a date range
type Booking struct {
	ID          int64
	TenantID    int64
	BillboardID int64
	ClientID    int64
	StartDate   time.Time
	EndDate     time.Time

	RequestedPrice float64
	FinalPrice     *float64 // Устанавливается только при подтверждении
	Status         BookingStatus

	RejectionReason    *string
	CancellationReason *string
	CancelledAt        *time.Time

	// Append-only логи, порядок вставки значим
	Negotiations  []PriceNegotiation
	StatusHistory []StatusChange

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PriceNegotiation represents a single price offer in the negotiation history
type PriceNegotiation struct {
	ID           int64
	BookingID    int64
	OfferedPrice float64
	OfferedBy    NegotiationParty
	Notes        *string
	CreatedAt    time.Time
}

// StatusChange represents a single entry in the booking's audit trail
// FromStatus is nil for the initial entry (creation)
type StatusChange struct {
	ID         int64
	BookingID  int64
	FromStatus *BookingStatus
	ToStatus   BookingStatus
	Reason     *string
	CreatedAt  time.Time
}

// IsActiveAt returns true if the booking occupies its billboard at the given moment:
// confirmed and now within [StartDate, EndDate] inclusive
func (b *Booking) IsActiveAt(now time.Time) bool {
	return b.Status == StatusConfirmed &&
		!now.Before(b.StartDate) &&
		!now.After(b.EndDate)
}

// IsTerminal returns true if the booking is in a terminal state
func (b *Booking) IsTerminal() bool {
	for _, status := range TerminalBookingStatuses {
		if b.Status == status {
			return true
		}
	}
	return false
}

// Blocks returns true if the booking blocks new requests on its billboard
// Only confirmed bookings block; requested/rejected/cancelled/completed never do
func (b *Booking) Blocks() bool {
	return b.Status == StatusConfirmed
}

// CanBeConfirmed returns true if the booking can transition to confirmed
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusRequested
}

// CanBeRejected returns true if the booking can transition to rejected
func (b *Booking) CanBeRejected() bool {
	return b.Status == StatusRequested
}

// CanBeCancelled returns true if the booking can transition to cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusRequested || b.Status == StatusConfirmed
}

// CanBeCompleted returns true if the booking can transition to completed at the given moment
// Completion is time-gated: only confirmed bookings whose end date has passed
func (b *Booking) CanBeCompleted(now time.Time) bool {
	return b.Status == StatusConfirmed && now.After(b.EndDate)
}

// CanNegotiate returns true if price negotiation is still open
func (b *Booking) CanNegotiate() bool {
	return b.Status == StatusRequested
}

// BillboardBookingsFilter фильтр для получения бронирований щита
type BillboardBookingsFilter struct {
	BillboardID  int64          // Обязательный параметр
	Status       *BookingStatus // Фильтр по статусу (опционально)
	OnlyBlocking bool           // Только блокирующие (confirmed) бронирования
}
