package payment_webhook

import (
	"context"

	"github.com/adstack-mw/billboard-service/internal/service/payments/models"
)

type PaymentsService interface {
	HandleWebhook(ctx context.Context, req *models.WebhookRequest) (*models.PaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
