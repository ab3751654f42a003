package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionHealthScore(t *testing.T) {
	now := date(2026, 1, 15)
	periodEnd := date(2026, 2, 1)

	t.Run("активная подписка без проблем", func(t *testing.T) {
		s := &Subscription{Status: SubscriptionActive, CurrentPeriodEnd: periodEnd}
		assert.Equal(t, 100, s.HealthScore(now))
	})

	t.Run("каждая неудачная попытка снимает 15 очков", func(t *testing.T) {
		s := &Subscription{Status: SubscriptionActive, FailedPaymentAttempts: 2, CurrentPeriodEnd: periodEnd}
		assert.Equal(t, 70, s.HealthScore(now))
	})

	t.Run("истекший период снимает еще 20", func(t *testing.T) {
		s := &Subscription{Status: SubscriptionActive, CurrentPeriodEnd: date(2026, 1, 1)}
		assert.Equal(t, 80, s.HealthScore(now))
	})

	t.Run("результат не опускается ниже нуля", func(t *testing.T) {
		s := &Subscription{Status: SubscriptionSuspended, FailedPaymentAttempts: 5, CurrentPeriodEnd: date(2026, 1, 1)}
		assert.Equal(t, 0, s.HealthScore(now))
	})

	t.Run("базовые значения по статусам", func(t *testing.T) {
		for status, expected := range map[SubscriptionStatus]int{
			SubscriptionActive:    100,
			SubscriptionTrial:     80,
			SubscriptionPastDue:   50,
			SubscriptionSuspended: 20,
			SubscriptionCancelled: 0,
			SubscriptionExpired:   0,
		} {
			s := &Subscription{Status: status, CurrentPeriodEnd: periodEnd}
			assert.Equal(t, expected, s.HealthScore(now), "status=%s", status)
		}
	})
}

func TestSubscriptionPaymentStatusOf(t *testing.T) {
	now := date(2026, 1, 15)
	periodEnd := date(2026, 2, 1)

	t.Run("good", func(t *testing.T) {
		s := &Subscription{Status: SubscriptionActive, CurrentPeriodEnd: periodEnd}
		assert.Equal(t, HealthGood, s.PaymentStatusOf(now))
	})

	t.Run("warning при неудачных попытках", func(t *testing.T) {
		s := &Subscription{Status: SubscriptionActive, FailedPaymentAttempts: 1, CurrentPeriodEnd: periodEnd}
		assert.Equal(t, HealthWarning, s.PaymentStatusOf(now))
	})

	t.Run("warning при истекшем периоде", func(t *testing.T) {
		s := &Subscription{Status: SubscriptionActive, CurrentPeriodEnd: date(2026, 1, 1)}
		assert.Equal(t, HealthWarning, s.PaymentStatusOf(now))
	})

	t.Run("critical при трех и более неудачах", func(t *testing.T) {
		s := &Subscription{Status: SubscriptionActive, FailedPaymentAttempts: 3, CurrentPeriodEnd: periodEnd}
		assert.Equal(t, HealthCritical, s.PaymentStatusOf(now))
	})

	t.Run("critical при приостановке", func(t *testing.T) {
		s := &Subscription{Status: SubscriptionSuspended, CurrentPeriodEnd: periodEnd}
		assert.Equal(t, HealthCritical, s.PaymentStatusOf(now))
	})
}

func TestSubscriptionIsBillable(t *testing.T) {
	assert.True(t, (&Subscription{Status: SubscriptionTrial}).IsBillable())
	assert.True(t, (&Subscription{Status: SubscriptionActive}).IsBillable())
	assert.True(t, (&Subscription{Status: SubscriptionPastDue}).IsBillable())
	assert.True(t, (&Subscription{Status: SubscriptionSuspended}).IsBillable())
	assert.False(t, (&Subscription{Status: SubscriptionCancelled}).IsBillable())
	assert.False(t, (&Subscription{Status: SubscriptionExpired}).IsBillable())
}
