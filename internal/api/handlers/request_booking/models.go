package request_booking

import (
	"time"

	"github.com/adstack-mw/billboard-service/internal/domain"
	requestBooking "github.com/adstack-mw/billboard-service/internal/usecase/request_booking"
)

// RequestBookingRequest HTTP request model
type RequestBookingRequest struct {
	BillboardID    int64   `json:"billboardId"`
	ClientID       int64   `json:"clientId"`
	StartDate      string  `json:"startDate"` // "2026-01-15"
	EndDate        string  `json:"endDate"`
	RequestedPrice float64 `json:"requestedPrice"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             int64   `json:"id"`
	BillboardID    int64   `json:"billboardId"`
	ClientID       int64   `json:"clientId"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	RequestedPrice float64 `json:"requestedPrice"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RequestBookingRequest) ToUseCaseRequest(tenantID int64) (*requestBooking.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &requestBooking.Request{
		TenantID:       tenantID,
		BillboardID:    r.BillboardID,
		ClientID:       r.ClientID,
		StartDate:      startDate,
		EndDate:        endDate,
		RequestedPrice: r.RequestedPrice,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *requestBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:             resp.ID,
		BillboardID:    resp.BillboardID,
		ClientID:       resp.ClientID,
		StartDate:      resp.StartDate.Format(domain.DateFormat),
		EndDate:        resp.EndDate.Format(domain.DateFormat),
		RequestedPrice: resp.RequestedPrice,
		Status:         resp.Status,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
