package reject_booking

import (
	"context"

	"github.com/adstack-mw/billboard-service/internal/service/bookings/models"
)

type BookingsService interface {
	Reject(ctx context.Context, bookingID int64, req *models.RejectRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
