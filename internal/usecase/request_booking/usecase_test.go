package request_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/adstack-mw/billboard-service/internal/domain"
	billboardRepo "github.com/adstack-mw/billboard-service/internal/infra/storage/billboard"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByBillboardWithFilter(ctx context.Context, tenantID int64, filter domain.BillboardBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) AppendStatusHistory(ctx context.Context, entry *domain.StatusChange) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
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

func (m *MockBillboardRepository) UpdateStatus(ctx context.Context, tenantID, id int64, status domain.BillboardStatus) error {
	args := m.Called(ctx, tenantID, id, status)
	return args.Error(0)
}

// stubTxManager выполняет функцию без реальной транзакции
type stubTxManager struct{}

func (s *stubTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fixedTimeProvider возвращает фиксированное время для детерминированных тестов
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

func newTestUseCase(bookingRepo *MockBookingRepository, billboardRepo *MockBillboardRepository) *UseCase {
	uc := NewUseCase(bookingRepo, billboardRepo, &stubTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: date(2026, 1, 5)}
	return uc
}

func validRequest() *Request {
	return &Request{
		TenantID:       1,
		BillboardID:    10,
		ClientID:       100,
		StartDate:      date(2026, 1, 15),
		EndDate:        date(2026, 2, 15),
		RequestedPrice: 50000,
	}
}

func TestRequestBookingValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"нулевой tenantID", func(r *Request) { r.TenantID = 0 }},
		{"отрицательный billboardID", func(r *Request) { r.BillboardID = -1 }},
		{"нулевой clientID", func(r *Request) { r.ClientID = 0 }},
		{"пустая дата начала", func(r *Request) { r.StartDate = time.Time{} }},
		{"пустая дата конца", func(r *Request) { r.EndDate = time.Time{} }},
		{"конец раньше начала", func(r *Request) { r.EndDate = r.StartDate.AddDate(0, 0, -1) }},
		{"конец равен началу", func(r *Request) { r.EndDate = r.StartDate }},
		{"отрицательная цена", func(r *Request) { r.RequestedPrice = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookingRepo := new(MockBookingRepository)
			billRepo := new(MockBillboardRepository)
			uc := newTestUseCase(bookingRepo, billRepo)

			req := validRequest()
			tt.mutate(req)

			resp, err := uc.Execute(context.Background(), req)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrInvalidInput)
			billRepo.AssertNotCalled(t, "GetByID")
			bookingRepo.AssertNotCalled(t, "Create")
		})
	}
}

func TestRequestBookingBillboardNotFound(t *testing.T) {
	bookingRepo := new(MockBookingRepository)
	billRepo := new(MockBillboardRepository)
	uc := newTestUseCase(bookingRepo, billRepo)

	billRepo.On("GetByID", mock.Anything, int64(1), int64(10)).
		Return(nil, billboardRepo.ErrBillboardNotFound)

	resp, err := uc.Execute(context.Background(), validRequest())

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrBillboardNotFound)
	bookingRepo.AssertNotCalled(t, "Create")
}

func TestRequestBookingConflict(t *testing.T) {
	bookingRepo := new(MockBookingRepository)
	billRepo := new(MockBillboardRepository)
	uc := newTestUseCase(bookingRepo, billRepo)

	billRepo.On("GetByID", mock.Anything, int64(1), int64(10)).
		Return(&domain.Billboard{ID: 10, TenantID: 1, PhysicalStatus: domain.PhysicalOperational}, nil)

	// Подтвержденное бронирование 01.01-31.01 пересекается с запросом 15.01-15.02
	blocking := []*domain.Booking{
		{
			ID:          7,
			BillboardID: 10,
			Status:      domain.StatusConfirmed,
			StartDate:   date(2026, 1, 1),
			EndDate:     date(2026, 1, 31),
		},
	}
	bookingRepo.On("GetByBillboardWithFilter", mock.Anything, int64(1), domain.BillboardBookingsFilter{
		BillboardID:  10,
		OnlyBlocking: true,
	}).Return(blocking, nil)

	resp, err := uc.Execute(context.Background(), validRequest())

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrBookingConflict)
	bookingRepo.AssertNotCalled(t, "Create")
	bookingRepo.AssertNotCalled(t, "AppendStatusHistory")
}

func TestRequestBookingAdjacentRangesDoNotConflict(t *testing.T) {
	bookingRepo := new(MockBookingRepository)
	billRepo := new(MockBillboardRepository)
	uc := newTestUseCase(bookingRepo, billRepo)

	billRepo.On("GetByID", mock.Anything, int64(1), int64(10)).
		Return(&domain.Billboard{ID: 10, TenantID: 1, PhysicalStatus: domain.PhysicalOperational}, nil)

	// Существующее бронирование заканчивается ровно в момент начала нового
	blocking := []*domain.Booking{
		{
			ID:          7,
			BillboardID: 10,
			Status:      domain.StatusConfirmed,
			StartDate:   date(2026, 1, 1),
			EndDate:     date(2026, 1, 15),
		},
	}
	bookingRepo.On("GetByBillboardWithFilter", mock.Anything, int64(1), mock.Anything).
		Return(blocking, nil)

	created := &domain.Booking{
		ID:             42,
		TenantID:       1,
		BillboardID:    10,
		ClientID:       100,
		StartDate:      date(2026, 1, 15),
		EndDate:        date(2026, 2, 15),
		RequestedPrice: 50000,
		Status:         domain.StatusRequested,
	}
	bookingRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.StatusRequested && b.BillboardID == 10
	})).Return(created, nil)
	bookingRepo.On("AppendStatusHistory", mock.Anything, mock.MatchedBy(func(e *domain.StatusChange) bool {
		return e.BookingID == 42 && e.FromStatus == nil && e.ToStatus == domain.StatusRequested
	})).Return(nil)
	billRepo.On("UpdateStatus", mock.Anything, int64(1), int64(10), mock.Anything).Return(nil)

	resp, err := uc.Execute(context.Background(), validRequest())

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusRequested), resp.Status)
}

func TestRequestBookingSuccess(t *testing.T) {
	bookingRepo := new(MockBookingRepository)
	billRepo := new(MockBillboardRepository)
	uc := newTestUseCase(bookingRepo, billRepo)

	billRepo.On("GetByID", mock.Anything, int64(1), int64(10)).
		Return(&domain.Billboard{ID: 10, TenantID: 1, PhysicalStatus: domain.PhysicalOperational}, nil)
	bookingRepo.On("GetByBillboardWithFilter", mock.Anything, int64(1), mock.Anything).
		Return([]*domain.Booking{}, nil)

	created := &domain.Booking{
		ID:             42,
		TenantID:       1,
		BillboardID:    10,
		ClientID:       100,
		StartDate:      date(2026, 1, 15),
		EndDate:        date(2026, 2, 15),
		RequestedPrice: 50000,
		Status:         domain.StatusRequested,
	}
	bookingRepo.On("Create", mock.Anything, mock.Anything).Return(created, nil)
	bookingRepo.On("AppendStatusHistory", mock.Anything, mock.Anything).Return(nil)

	// Нет активных бронирований на момент запроса, щит свободен
	billRepo.On("UpdateStatus", mock.Anything, int64(1), int64(10), domain.BillboardAvailable).Return(nil)

	resp, err := uc.Execute(context.Background(), validRequest())

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, float64(50000), resp.RequestedPrice)
	bookingRepo.AssertExpectations(t)
	billRepo.AssertExpectations(t)
}

func TestRequestBookingCreateFailureWrapsInternal(t *testing.T) {
	bookingRepo := new(MockBookingRepository)
	billRepo := new(MockBillboardRepository)
	uc := newTestUseCase(bookingRepo, billRepo)

	billRepo.On("GetByID", mock.Anything, int64(1), int64(10)).
		Return(&domain.Billboard{ID: 10, TenantID: 1, PhysicalStatus: domain.PhysicalOperational}, nil)
	bookingRepo.On("GetByBillboardWithFilter", mock.Anything, int64(1), mock.Anything).
		Return([]*domain.Booking{}, nil)
	bookingRepo.On("Create", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection reset"))

	resp, err := uc.Execute(context.Background(), validRequest())

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInternal)
}
