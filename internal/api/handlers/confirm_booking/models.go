package confirm_booking

import (
	"time"

	"github.com/adstack-mw/billboard-service/internal/domain"
	confirmBooking "github.com/adstack-mw/billboard-service/internal/usecase/confirm_booking"
)

// ConfirmBookingRequest HTTP request model
type ConfirmBookingRequest struct {
	FinalPrice float64 `json:"finalPrice"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64   `json:"id"`
	BillboardID int64   `json:"billboardId"`
	ClientID    int64   `json:"clientId"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	FinalPrice  float64 `json:"finalPrice"`
	Status      string  `json:"status"`
	UpdatedAt   string  `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		BillboardID: resp.BillboardID,
		ClientID:    resp.ClientID,
		StartDate:   resp.StartDate.Format(domain.DateFormat),
		EndDate:     resp.EndDate.Format(domain.DateFormat),
		FinalPrice:  resp.FinalPrice,
		Status:      resp.Status,
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
