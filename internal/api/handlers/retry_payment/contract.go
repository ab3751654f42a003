package retry_payment

import (
	"context"

	"github.com/adstack-mw/billboard-service/internal/service/payments/models"
)

type PaymentsService interface {
	Retry(ctx context.Context, tenantID, paymentID int64) (*models.PaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
