package subscriptions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/adstack-mw/billboard-service/internal/domain"
	subscriptionRepo "github.com/adstack-mw/billboard-service/internal/infra/storage/subscription"
)

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

func TestGetByIDDerivesHealth(t *testing.T) {
	now := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)

	repo := new(MockSubscriptionRepository)
	svc := NewService(repo, nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}

	sub := &domain.Subscription{
		ID:                    9,
		TenantID:              1,
		PlanName:              "standard",
		Amount:                15000,
		Status:                domain.SubscriptionActive,
		CurrentPeriodStart:    now.AddDate(0, -1, 0),
		CurrentPeriodEnd:      now.AddDate(0, 0, 10),
		FailedPaymentAttempts: 1,
	}
	repo.On("GetByID", mock.Anything, int64(1), int64(9)).Return(sub, nil)

	resp, err := svc.GetByID(context.Background(), 1, 9)

	assert.NoError(t, err)
	assert.Equal(t, sub.HealthScore(now), resp.HealthScore)
	assert.Equal(t, string(sub.PaymentStatusOf(now)), resp.PaymentHealth)
	assert.Equal(t, string(domain.SubscriptionActive), resp.Status)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	svc := NewService(repo, nopLogger{})

	repo.On("GetByID", mock.Anything, int64(1), int64(9)).
		Return(nil, subscriptionRepo.ErrSubscriptionNotFound)

	resp, err := svc.GetByID(context.Background(), 1, 9)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}
