package domain

import "time"

// SubscriptionStatus represents the billing status of a tenant subscription
type SubscriptionStatus string

const (
	SubscriptionTrial     SubscriptionStatus = "trial"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionPastDue   SubscriptionStatus = "past_due"
	SubscriptionSuspended SubscriptionStatus = "suspended"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
)

// PaymentHealth derived payment health of a subscription
type PaymentHealth string

const (
	HealthGood     PaymentHealth = "good"
	HealthWarning  PaymentHealth = "warning"
	HealthCritical PaymentHealth = "critical"
)

// Subscription represents a tenant's billing subscription
type Subscription struct {
	ID       int64
	TenantID int64
	PlanName string
	Amount   float64
	Status   SubscriptionStatus

	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time

	FailedPaymentAttempts int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HealthScore вычисляет показатель здоровья подписки в диапазоне 0-100
// Чистая функция без побочных эффектов: статус задает базу, каждая
// неудачная попытка оплаты снимает 15 очков, истекший период - еще 20
func (s *Subscription) HealthScore(now time.Time) int {
	var score int
	switch s.Status {
	case SubscriptionActive:
		score = 100
	case SubscriptionTrial:
		score = 80
	case SubscriptionPastDue:
		score = 50
	case SubscriptionSuspended:
		score = 20
	default: // cancelled, expired
		score = 0
	}

	score -= s.FailedPaymentAttempts * 15

	if now.After(s.CurrentPeriodEnd) && score > 0 {
		score -= 20
	}

	if score < 0 {
		score = 0
	}
	return score
}

// PaymentStatusOf возвращает производное состояние оплат подписки
func (s *Subscription) PaymentStatusOf(now time.Time) PaymentHealth {
	switch {
	case s.Status == SubscriptionSuspended,
		s.Status == SubscriptionExpired,
		s.FailedPaymentAttempts >= 3:
		return HealthCritical
	case s.Status == SubscriptionPastDue,
		s.FailedPaymentAttempts > 0,
		now.After(s.CurrentPeriodEnd):
		return HealthWarning
	default:
		return HealthGood
	}
}

// IsBillable returns true if the subscription is in a state that accepts payments
func (s *Subscription) IsBillable() bool {
	return s.Status == SubscriptionTrial ||
		s.Status == SubscriptionActive ||
		s.Status == SubscriptionPastDue ||
		s.Status == SubscriptionSuspended
}
