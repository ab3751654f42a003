package models

import (
	"errors"
	"time"

	"github.com/adstack-mw/billboard-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidParty возвращается при некорректной стороне переговоров
	ErrInvalidParty = errors.New("invalid negotiation party")
)

// Request модели

// NegotiateRequest предложение цены одной из сторон
type NegotiateRequest struct {
	TenantID     int64   `json:"-"`
	OfferedPrice float64 `json:"offeredPrice"`
	OfferedBy    string  `json:"offeredBy"` // client | owner
	Notes        *string `json:"notes,omitempty"`
}

// RejectRequest запрос на отклонение заявки владельцем
type RejectRequest struct {
	TenantID int64  `json:"-"`
	Reason   string `json:"reason"`
}

// CancelRequest запрос на отмену бронирования
type CancelRequest struct {
	TenantID           int64  `json:"-"`
	CancellationReason string `json:"cancellationReason"`
}

// GetClientBookingsRequest запрос истории бронирований клиента
type GetClientBookingsRequest struct {
	TenantID int64   `json:"-"`
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64  `json:"id"`
	BillboardID int64  `json:"billboardId"`
	ClientID    int64  `json:"clientId"`
	StartDate   string `json:"startDate"` // "2026-01-15"
	EndDate     string `json:"endDate"`
	Status      string `json:"status"`

	RequestedPrice float64  `json:"requestedPrice"`
	FinalPrice     *float64 `json:"finalPrice,omitempty"`

	RejectionReason    *string `json:"rejectionReason,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	Negotiations  []NegotiationResponse  `json:"negotiations,omitempty"`
	StatusHistory []StatusChangeResponse `json:"statusHistory,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NegotiationResponse одно ценовое предложение из истории переговоров
type NegotiationResponse struct {
	OfferedPrice float64   `json:"offeredPrice"`
	OfferedBy    string    `json:"offeredBy"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// StatusChangeResponse одна запись audit trail
type StatusChangeResponse struct {
	FromStatus *string   `json:"fromStatus,omitempty"` // nil для записи о создании
	ToStatus   string    `json:"toStatus"`
	Reason     *string   `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		BillboardID:        b.BillboardID,
		ClientID:           b.ClientID,
		StartDate:          b.StartDate.Format(domain.DateFormat),
		EndDate:            b.EndDate.Format(domain.DateFormat),
		Status:             string(b.Status),
		RequestedPrice:     b.RequestedPrice,
		FinalPrice:         b.FinalPrice,
		RejectionReason:    b.RejectionReason,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	for _, n := range b.Negotiations {
		resp.Negotiations = append(resp.Negotiations, NegotiationResponse{
			OfferedPrice: n.OfferedPrice,
			OfferedBy:    string(n.OfferedBy),
			Notes:        n.Notes,
			CreatedAt:    n.CreatedAt,
		})
	}

	for _, sc := range b.StatusHistory {
		entry := StatusChangeResponse{
			ToStatus:  string(sc.ToStatus),
			Reason:    sc.Reason,
			CreatedAt: sc.CreatedAt,
		}
		if sc.FromStatus != nil {
			from := string(*sc.FromStatus)
			entry.FromStatus = &from
		}
		resp.StatusHistory = append(resp.StatusHistory, entry)
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// ToDomainBookingStatus валидирует и конвертирует строковый статус
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.StatusRequested, domain.StatusConfirmed, domain.StatusRejected,
		domain.StatusCancelled, domain.StatusCompleted:
		return domain.BookingStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}

// ToDomainParty валидирует и конвертирует сторону переговоров
func ToDomainParty(party string) (domain.NegotiationParty, error) {
	switch domain.NegotiationParty(party) {
	case domain.OfferedByClient, domain.OfferedByOwner:
		return domain.NegotiationParty(party), nil
	default:
		return "", ErrInvalidParty
	}
}
