package get_occupancy

import (
	"context"
	"time"

	"github.com/adstack-mw/billboard-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByBillboardWithFilter(ctx context.Context, tenantID int64, filter domain.BillboardBookingsFilter) ([]*domain.Booking, error)
}

// BillboardRepository интерфейс репозитория щитов
type BillboardRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Billboard, error)
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
