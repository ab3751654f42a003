package run_sweep

import (
	"context"
	"time"

	"github.com/adstack-mw/billboard-service/internal/domain"
	"github.com/adstack-mw/billboard-service/internal/integrations/notify"
)

// ContractRepository интерфейс репозитория договоров
type ContractRepository interface {
	ListActive(ctx context.Context, tenantID int64) ([]*domain.Contract, error)
	UpdateAgreementStatus(ctx context.Context, tenantID, id int64, status domain.AgreementStatus) error
	UpdatePivotStatuses(ctx context.Context, contractID int64, status domain.PivotBookingStatus) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Booking, error)
	ListExpiredConfirmed(ctx context.Context, tenantID int64, now time.Time) ([]*domain.Booking, error)
	GetByBillboardWithFilter(ctx context.Context, tenantID int64, filter domain.BillboardBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, tenantID, id int64, status domain.BookingStatus) error
	AppendStatusHistory(ctx context.Context, entry *domain.StatusChange) error
}

// BillboardRepository интерфейс репозитория щитов
type BillboardRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Billboard, error)
	UpdateStatus(ctx context.Context, tenantID, id int64, status domain.BillboardStatus) error
}

// WarningPublisher интерфейс публикации предупреждений об истечении договоров
type WarningPublisher interface {
	PublishExpirationWarning(ctx context.Context, event notify.ExpirationWarning) error
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
