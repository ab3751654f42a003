package payments

import (
	"context"
	"time"

	"github.com/adstack-mw/billboard-service/internal/domain"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Payment, error)
	GetByReference(ctx context.Context, tenantID int64, reference string) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, tenantID, id int64, status domain.PaymentStatus) error
	MarkRetried(ctx context.Context, tenantID, id int64) error
	AppendProviderResponse(ctx context.Context, entry *domain.ProviderResponse) error
	AppendRetryAttempt(ctx context.Context, entry *domain.RetryAttempt) error
	ListProviderResponses(ctx context.Context, paymentID int64) ([]domain.ProviderResponse, error)
}

// SubscriptionRepository интерфейс репозитория подписок
type SubscriptionRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Subscription, error)
	IncrementFailedAttempts(ctx context.Context, tenantID, id int64) error
	ResetFailedAttempts(ctx context.Context, tenantID, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
