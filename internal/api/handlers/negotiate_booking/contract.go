package negotiate_booking

import (
	"context"

	"github.com/adstack-mw/billboard-service/internal/service/bookings/models"
)

type BookingsService interface {
	Negotiate(ctx context.Context, bookingID int64, req *models.NegotiateRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
