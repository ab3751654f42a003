package models

import (
	"time"

	"github.com/adstack-mw/billboard-service/internal/domain"
)

// SubscriptionResponse ответ с данными подписки и производными показателями
type SubscriptionResponse struct {
	ID       int64   `json:"id"`
	PlanName string  `json:"planName"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`

	CurrentPeriodStart time.Time `json:"currentPeriodStart"`
	CurrentPeriodEnd   time.Time `json:"currentPeriodEnd"`

	FailedPaymentAttempts int `json:"failedPaymentAttempts"`

	// Производные показатели, не хранятся в БД
	HealthScore   int    `json:"healthScore"`
	PaymentHealth string `json:"paymentHealth"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainSubscription конвертирует domain модель в DTO,
// вычисляя производные показатели на момент now
func FromDomainSubscription(s *domain.Subscription, now time.Time) *SubscriptionResponse {
	if s == nil {
		return nil
	}

	return &SubscriptionResponse{
		ID:                    s.ID,
		PlanName:              s.PlanName,
		Amount:                s.Amount,
		Status:                string(s.Status),
		CurrentPeriodStart:    s.CurrentPeriodStart,
		CurrentPeriodEnd:      s.CurrentPeriodEnd,
		FailedPaymentAttempts: s.FailedPaymentAttempts,
		HealthScore:           s.HealthScore(now),
		PaymentHealth:         string(s.PaymentStatusOf(now)),
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}
