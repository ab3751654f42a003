package get_subscription

import (
	"context"

	"github.com/adstack-mw/billboard-service/internal/service/subscriptions/models"
)

type SubscriptionsService interface {
	GetByID(ctx context.Context, tenantID, id int64) (*models.SubscriptionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
