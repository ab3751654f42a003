package payments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/adstack-mw/billboard-service/internal/domain"
	"github.com/adstack-mw/billboard-service/internal/service/payments/models"
	"github.com/adstack-mw/billboard-service/pkg/ptr"
)

// Mock repositories
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByReference(ctx context.Context, tenantID int64, reference string) (*domain.Payment, error) {
	args := m.Called(ctx, tenantID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, tenantID, id int64, status domain.PaymentStatus) error {
	args := m.Called(ctx, tenantID, id, status)
	return args.Error(0)
}

func (m *MockPaymentRepository) MarkRetried(ctx context.Context, tenantID, id int64) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockPaymentRepository) AppendProviderResponse(ctx context.Context, entry *domain.ProviderResponse) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockPaymentRepository) AppendRetryAttempt(ctx context.Context, entry *domain.RetryAttempt) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListProviderResponses(ctx context.Context, paymentID int64) ([]domain.ProviderResponse, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProviderResponse), args.Error(1)
}

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Subscription, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) IncrementFailedAttempts(ctx context.Context, tenantID, id int64) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) ResetFailedAttempts(ctx context.Context, tenantID, id int64) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type stubTxManager struct{}

func (s *stubTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestService(paymentRepo *MockPaymentRepository, subRepo *MockSubscriptionRepository) *Service {
	return NewService(paymentRepo, subRepo, &stubTxManager{}, nopLogger{}, 3)
}

func pendingPayment() *domain.Payment {
	return &domain.Payment{
		ID:          7,
		TenantID:    1,
		Provider:    "mpesa",
		Amount:      50000,
		Reference:   "ref-123",
		Status:      domain.PaymentPending,
		MaxAttempts: 3,
		BookingID:   ptr.Ptr(int64(42)),
	}
}

func TestInitiateValidation(t *testing.T) {
	tests := []struct {
		name string
		req  *models.InitiatePaymentRequest
	}{
		{
			"ни бронирование, ни подписка",
			&models.InitiatePaymentRequest{TenantID: 1, Provider: "mpesa", Amount: 100},
		},
		{
			"и бронирование, и подписка",
			&models.InitiatePaymentRequest{
				TenantID: 1, Provider: "mpesa", Amount: 100,
				BookingID:      ptr.Ptr(int64(42)),
				SubscriptionID: ptr.Ptr(int64(9)),
			},
		},
		{
			"нулевая сумма",
			&models.InitiatePaymentRequest{TenantID: 1, Provider: "mpesa", BookingID: ptr.Ptr(int64(42))},
		},
		{
			"пустой провайдер",
			&models.InitiatePaymentRequest{TenantID: 1, Amount: 100, BookingID: ptr.Ptr(int64(42))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paymentRepo := new(MockPaymentRepository)
			svc := newTestService(paymentRepo, new(MockSubscriptionRepository))

			resp, err := svc.Initiate(context.Background(), tt.req)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrInvalidInput)
			paymentRepo.AssertNotCalled(t, "Create")
		})
	}
}

func TestInitiateForBooking(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	svc := newTestService(paymentRepo, new(MockSubscriptionRepository))

	created := pendingPayment()
	paymentRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.Status == domain.PaymentPending &&
			p.MaxAttempts == 3 &&
			p.Reference != "" &&
			p.BookingID != nil && *p.BookingID == 42 &&
			p.SubscriptionID == nil
	})).Return(created, nil)

	resp, err := svc.Initiate(context.Background(), &models.InitiatePaymentRequest{
		TenantID:  1,
		Provider:  "mpesa",
		Amount:    50000,
		BookingID: ptr.Ptr(int64(42)),
	})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, string(domain.PaymentPending), resp.Status)
	paymentRepo.AssertExpectations(t)
}

func TestInitiateForNonBillableSubscription(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	subRepo := new(MockSubscriptionRepository)
	svc := newTestService(paymentRepo, subRepo)

	subRepo.On("GetByID", mock.Anything, int64(1), int64(9)).
		Return(&domain.Subscription{ID: 9, TenantID: 1, Status: domain.SubscriptionCancelled}, nil)

	resp, err := svc.Initiate(context.Background(), &models.InitiatePaymentRequest{
		TenantID:       1,
		Provider:       "mpesa",
		Amount:         50000,
		SubscriptionID: ptr.Ptr(int64(9)),
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrNotBillable)
	paymentRepo.AssertNotCalled(t, "Create")
}

func TestHandleWebhookTerminalPaymentIsNoOp(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	svc := newTestService(paymentRepo, new(MockSubscriptionRepository))

	completed := pendingPayment()
	completed.Status = domain.PaymentCompleted
	paymentRepo.On("GetByReference", mock.Anything, int64(1), "ref-123").Return(completed, nil)

	// Ответ провайдера записывается в журнал даже для терминального платежа
	paymentRepo.On("AppendProviderResponse", mock.Anything, mock.MatchedBy(func(e *domain.ProviderResponse) bool {
		return e.PaymentID == 7 && e.ResultCode == domain.ResultFailed
	})).Return(nil)

	resp, err := svc.HandleWebhook(context.Background(), &models.WebhookRequest{
		TenantID:   1,
		Reference:  "ref-123",
		ResultCode: "failed",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.PaymentCompleted), resp.Status)
	paymentRepo.AssertNotCalled(t, "UpdateStatus")
	paymentRepo.AssertExpectations(t)
}

func TestHandleWebhookSuccessResetsSubscriptionFailures(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	subRepo := new(MockSubscriptionRepository)
	svc := newTestService(paymentRepo, subRepo)

	payment := pendingPayment()
	payment.BookingID = nil
	payment.SubscriptionID = ptr.Ptr(int64(9))
	paymentRepo.On("GetByReference", mock.Anything, int64(1), "ref-123").Return(payment, nil)
	paymentRepo.On("AppendProviderResponse", mock.Anything, mock.Anything).Return(nil)
	paymentRepo.On("UpdateStatus", mock.Anything, int64(1), int64(7), domain.PaymentCompleted).Return(nil)
	subRepo.On("ResetFailedAttempts", mock.Anything, int64(1), int64(9)).Return(nil)

	resp, err := svc.HandleWebhook(context.Background(), &models.WebhookRequest{
		TenantID:   1,
		Reference:  "ref-123",
		ResultCode: "success",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.PaymentCompleted), resp.Status)
	subRepo.AssertExpectations(t)
}

func TestHandleWebhookFailureIncrementsSubscriptionFailures(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	subRepo := new(MockSubscriptionRepository)
	svc := newTestService(paymentRepo, subRepo)

	payment := pendingPayment()
	payment.BookingID = nil
	payment.SubscriptionID = ptr.Ptr(int64(9))
	payment.Status = domain.PaymentProcessing
	paymentRepo.On("GetByReference", mock.Anything, int64(1), "ref-123").Return(payment, nil)
	paymentRepo.On("AppendProviderResponse", mock.Anything, mock.Anything).Return(nil)
	paymentRepo.On("UpdateStatus", mock.Anything, int64(1), int64(7), domain.PaymentFailed).Return(nil)
	subRepo.On("IncrementFailedAttempts", mock.Anything, int64(1), int64(9)).Return(nil)

	resp, err := svc.HandleWebhook(context.Background(), &models.WebhookRequest{
		TenantID:   1,
		Reference:  "ref-123",
		ResultCode: "failed",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.PaymentFailed), resp.Status)
	subRepo.AssertExpectations(t)
}

func TestHandleWebhookInapplicableResultRecordedWithoutTransition(t *testing.T) {
	// accepted применим только к pending: для processing платежа ответ
	// записывается в журнал, но статус не меняется
	paymentRepo := new(MockPaymentRepository)
	svc := newTestService(paymentRepo, new(MockSubscriptionRepository))

	payment := pendingPayment()
	payment.Status = domain.PaymentProcessing
	paymentRepo.On("GetByReference", mock.Anything, int64(1), "ref-123").Return(payment, nil)
	paymentRepo.On("AppendProviderResponse", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.HandleWebhook(context.Background(), &models.WebhookRequest{
		TenantID:   1,
		Reference:  "ref-123",
		ResultCode: "accepted",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.PaymentProcessing), resp.Status)
	paymentRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestHandleWebhookInvalidResultCode(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	svc := newTestService(paymentRepo, new(MockSubscriptionRepository))

	resp, err := svc.HandleWebhook(context.Background(), &models.WebhookRequest{
		TenantID:   1,
		Reference:  "ref-123",
		ResultCode: "PAID_OK",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidInput)
	paymentRepo.AssertNotCalled(t, "GetByReference")
}

func TestRetryFailedPayment(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	svc := newTestService(paymentRepo, new(MockSubscriptionRepository))

	payment := pendingPayment()
	payment.Status = domain.PaymentFailed
	payment.RetryCount = 1
	paymentRepo.On("GetByID", mock.Anything, int64(1), int64(7)).Return(payment, nil)
	paymentRepo.On("MarkRetried", mock.Anything, int64(1), int64(7)).Return(nil)
	paymentRepo.On("AppendRetryAttempt", mock.Anything, mock.MatchedBy(func(a *domain.RetryAttempt) bool {
		return a.PaymentID == 7 && a.AttemptNumber == 2
	})).Return(nil)

	resp, err := svc.Retry(context.Background(), 1, 7)

	assert.NoError(t, err)
	assert.Equal(t, string(domain.PaymentPending), resp.Status)
	paymentRepo.AssertExpectations(t)
}

func TestRetryExhausted(t *testing.T) {
	// Лимит строгий: retry_count == max_attempts означает исчерпание
	paymentRepo := new(MockPaymentRepository)
	svc := newTestService(paymentRepo, new(MockSubscriptionRepository))

	payment := pendingPayment()
	payment.Status = domain.PaymentFailed
	payment.RetryCount = 3
	paymentRepo.On("GetByID", mock.Anything, int64(1), int64(7)).Return(payment, nil)

	resp, err := svc.Retry(context.Background(), 1, 7)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrRetriesExhausted)
	paymentRepo.AssertNotCalled(t, "MarkRetried")
	paymentRepo.AssertNotCalled(t, "AppendRetryAttempt")
}

func TestRetryNonFailedPayment(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	svc := newTestService(paymentRepo, new(MockSubscriptionRepository))

	paymentRepo.On("GetByID", mock.Anything, int64(1), int64(7)).Return(pendingPayment(), nil)

	resp, err := svc.Retry(context.Background(), 1, 7)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidInput)
	paymentRepo.AssertNotCalled(t, "MarkRetried")
}

// Защита от регрессии формата времени в ответе
func TestPaymentResponseCarriesTimestamps(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	svc := newTestService(paymentRepo, new(MockSubscriptionRepository))

	payment := pendingPayment()
	payment.CreatedAt = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	paymentRepo.On("GetByID", mock.Anything, int64(1), int64(7)).Return(payment, nil)
	paymentRepo.On("ListProviderResponses", mock.Anything, int64(7)).
		Return([]domain.ProviderResponse{}, nil)

	resp, err := svc.GetByID(context.Background(), 1, 7)

	assert.NoError(t, err)
	assert.Equal(t, payment.CreatedAt, resp.CreatedAt)
}
