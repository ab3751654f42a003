package get_occupancy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/adstack-mw/billboard-service/internal/domain"
	billboardRepository "github.com/adstack-mw/billboard-service/internal/infra/storage/billboard"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByBillboardWithFilter(ctx context.Context, tenantID int64, filter domain.BillboardBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type MockBillboardRepository struct {
	mock.Mock
}

func (m *MockBillboardRepository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Billboard, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Billboard), args.Error(1)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestUseCase(bookingRepo *MockBookingRepository, billRepo *MockBillboardRepository) *UseCase {
	uc := NewUseCase(bookingRepo, billRepo, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: date(2026, 1, 20)}
	return uc
}

func confirmed(id int64, start, end time.Time) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		BillboardID: 10,
		Status:      domain.StatusConfirmed,
		StartDate:   start,
		EndDate:     end,
	}
}

func TestGetOccupancyValidation(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{"нулевой tenantID", &Request{BillboardID: 10, WindowStart: date(2026, 1, 1), WindowEnd: date(2026, 1, 31)}},
		{"нулевой billboardID", &Request{TenantID: 1, WindowStart: date(2026, 1, 1), WindowEnd: date(2026, 1, 31)}},
		{"пустое окно", &Request{TenantID: 1, BillboardID: 10}},
		{"конец окна раньше начала", &Request{TenantID: 1, BillboardID: 10, WindowStart: date(2026, 1, 31), WindowEnd: date(2026, 1, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			billRepo := new(MockBillboardRepository)
			uc := newTestUseCase(new(MockBookingRepository), billRepo)

			resp, err := uc.Execute(context.Background(), tt.req)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrInvalidInput)
			billRepo.AssertNotCalled(t, "GetByID")
		})
	}
}

func TestGetOccupancyBillboardNotFound(t *testing.T) {
	bookingRepo := new(MockBookingRepository)
	billRepo := new(MockBillboardRepository)
	uc := newTestUseCase(bookingRepo, billRepo)

	billRepo.On("GetByID", mock.Anything, int64(1), int64(10)).
		Return(nil, billboardRepository.ErrBillboardNotFound)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:    1,
		BillboardID: 10,
		WindowStart: date(2026, 1, 1),
		WindowEnd:   date(2026, 1, 31),
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrBillboardNotFound)
}

func TestGetOccupancySumsWithoutDeduplication(t *testing.T) {
	// Два подтвержденных бронирования на весь 30-дневный период дают 200%:
	// занятость суммируется по бронированиям без дедупликации дней
	bookingRepo := new(MockBookingRepository)
	billRepo := new(MockBillboardRepository)
	uc := newTestUseCase(bookingRepo, billRepo)

	billRepo.On("GetByID", mock.Anything, int64(1), int64(10)).
		Return(&domain.Billboard{ID: 10, TenantID: 1, PhysicalStatus: domain.PhysicalOperational}, nil)
	bookingRepo.On("GetByBillboardWithFilter", mock.Anything, int64(1), domain.BillboardBookingsFilter{
		BillboardID:  10,
		OnlyBlocking: true,
	}).Return([]*domain.Booking{
		confirmed(1, date(2026, 1, 1), date(2026, 1, 31)),
		confirmed(2, date(2026, 1, 1), date(2026, 1, 31)),
	}, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:    1,
		BillboardID: 10,
		WindowStart: date(2026, 1, 1),
		WindowEnd:   date(2026, 1, 31),
	})

	assert.NoError(t, err)
	assert.InDelta(t, 200.0, resp.OccupancyRate, 0.01)
	assert.Len(t, resp.Bookings, 2)
	// 20 января щит занят активным бронированием
	assert.Equal(t, string(domain.BillboardOccupied), resp.Status)
}

func TestGetOccupancyEmptyWindow(t *testing.T) {
	bookingRepo := new(MockBookingRepository)
	billRepo := new(MockBillboardRepository)
	uc := newTestUseCase(bookingRepo, billRepo)

	billRepo.On("GetByID", mock.Anything, int64(1), int64(10)).
		Return(&domain.Billboard{ID: 10, TenantID: 1, PhysicalStatus: domain.PhysicalOperational}, nil)
	bookingRepo.On("GetByBillboardWithFilter", mock.Anything, int64(1), mock.Anything).
		Return([]*domain.Booking{}, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:    1,
		BillboardID: 10,
		WindowStart: date(2026, 3, 1),
		WindowEnd:   date(2026, 3, 31),
	})

	assert.NoError(t, err)
	assert.Zero(t, resp.OccupancyRate)
	assert.Equal(t, string(domain.BillboardAvailable), resp.Status)
}
