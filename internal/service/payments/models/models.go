package models

import (
	"errors"
	"time"

	"github.com/adstack-mw/billboard-service/internal/domain"
)

var (
	// ErrInvalidResult возвращается при некорректном результате провайдера
	ErrInvalidResult = errors.New("invalid provider result")
)

// Request модели

// InitiatePaymentRequest запрос на инициацию платежа
// Платеж привязывается ровно к одной сущности: бронированию или подписке
type InitiatePaymentRequest struct {
	TenantID       int64   `json:"-"`
	Provider       string  `json:"provider"`
	Amount         float64 `json:"amount"`
	PhoneNumber    *string `json:"phoneNumber,omitempty"`
	BookingID      *int64  `json:"bookingId,omitempty"`
	SubscriptionID *int64  `json:"subscriptionId,omitempty"`
}

// WebhookRequest нормализованный callback платежного провайдера
type WebhookRequest struct {
	TenantID   int64  `json:"-"`
	Reference  string `json:"reference"`
	ResultCode string `json:"resultCode"` // accepted | success | failed
	RawPayload []byte `json:"-"`
}

// Response модели

// PaymentResponse ответ с данными платежа
type PaymentResponse struct {
	ID          int64   `json:"id"`
	Provider    string  `json:"provider"`
	Amount      float64 `json:"amount"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Reference   string  `json:"reference"`

	Status      string `json:"status"`
	RetryCount  int    `json:"retryCount"`
	MaxAttempts int    `json:"maxAttempts"`

	BookingID      *int64 `json:"bookingId,omitempty"`
	SubscriptionID *int64 `json:"subscriptionId,omitempty"`

	ProviderResponses []ProviderResponseEntry `json:"providerResponses,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProviderResponseEntry одна запись журнала ответов провайдера
type ProviderResponseEntry struct {
	ResultCode string    `json:"resultCode"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Методы конвертации

// FromDomainPayment конвертирует domain модель в DTO
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}

	resp := &PaymentResponse{
		ID:             p.ID,
		Provider:       p.Provider,
		Amount:         p.Amount,
		PhoneNumber:    p.PhoneNumber,
		Reference:      p.Reference,
		Status:         string(p.Status),
		RetryCount:     p.RetryCount,
		MaxAttempts:    p.MaxAttempts,
		BookingID:      p.BookingID,
		SubscriptionID: p.SubscriptionID,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}

	for _, pr := range p.ProviderResponses {
		resp.ProviderResponses = append(resp.ProviderResponses, ProviderResponseEntry{
			ResultCode: string(pr.ResultCode),
			CreatedAt:  pr.CreatedAt,
		})
	}

	return resp
}

// ToDomainProviderResult валидирует и конвертирует результат провайдера
func ToDomainProviderResult(code string) (domain.ProviderResult, error) {
	switch domain.ProviderResult(code) {
	case domain.ResultAccepted, domain.ResultSuccess, domain.ResultFailed:
		return domain.ProviderResult(code), nil
	default:
		return "", ErrInvalidResult
	}
}
