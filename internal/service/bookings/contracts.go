package bookings

import (
	"context"
	"time"

	"github.com/adstack-mw/billboard-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Booking, error)
	GetByClientID(ctx context.Context, tenantID, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByBillboardWithFilter(ctx context.Context, tenantID int64, filter domain.BillboardBookingsFilter) ([]*domain.Booking, error)
	Reject(ctx context.Context, tenantID, id int64, reason string) error
	Cancel(ctx context.Context, tenantID, id int64, reason string) error
	AppendStatusHistory(ctx context.Context, entry *domain.StatusChange) error
	AppendNegotiation(ctx context.Context, entry *domain.PriceNegotiation) error
	ListStatusHistory(ctx context.Context, bookingID int64) ([]domain.StatusChange, error)
	ListNegotiations(ctx context.Context, bookingID int64) ([]domain.PriceNegotiation, error)
}

// BillboardRepository интерфейс репозитория щитов
type BillboardRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Billboard, error)
	UpdateStatus(ctx context.Context, tenantID, id int64, status domain.BillboardStatus) error
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
