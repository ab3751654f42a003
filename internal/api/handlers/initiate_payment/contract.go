package initiate_payment

import (
	"context"

	"github.com/adstack-mw/billboard-service/internal/service/payments/models"
)

type PaymentsService interface {
	Initiate(ctx context.Context, req *models.InitiatePaymentRequest) (*models.PaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
