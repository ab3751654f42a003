package domain

import "time"

// PaymentStatus represents the status of a payment attempt
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
)

// ProviderResult нормализованный результат от платежного шлюза
// Маппинг сырых кодов провайдера на эти значения - зона ответственности
// внешнего gateway-коллаборатора, ядро знает только нормализованные результаты
type ProviderResult string

const (
	ResultAccepted ProviderResult = "accepted" // Платеж принят в обработку
	ResultSuccess  ProviderResult = "success"  // Платеж завершен успешно
	ResultFailed   ProviderResult = "failed"   // Платеж отклонен
)

// Payment represents a payment attempt linked to a booking or a subscription
type Payment struct {
	ID          int64
	TenantID    int64
	Provider    string
	Amount      float64
	PhoneNumber *string
	Reference   string // Уникальный reference для сопоставления webhook'ов

	Status      PaymentStatus
	RetryCount  int
	MaxAttempts int

	// Ровно одна из ссылок должна быть установлена
	BookingID      *int64
	SubscriptionID *int64

	ProviderResponses []ProviderResponse
	RetryHistory      []RetryAttempt

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProviderResponse represents a single recorded response from the payment provider
type ProviderResponse struct {
	ID         int64
	PaymentID  int64
	ResultCode ProviderResult
	RawPayload []byte
	CreatedAt  time.Time
}

// RetryAttempt represents a single entry in the payment's retry history
type RetryAttempt struct {
	ID            int64
	PaymentID     int64
	AttemptNumber int
	CreatedAt     time.Time
}

// IsTerminal returns true if the payment can no longer change state:
// completed, or failed with retries exhausted
func (p *Payment) IsTerminal() bool {
	return p.Status == PaymentCompleted ||
		(p.Status == PaymentFailed && p.RetryCount >= p.MaxAttempts)
}

// CanRetry returns true if the payment is failed and has attempts left
func (p *Payment) CanRetry() bool {
	return p.Status == PaymentFailed && p.RetryCount < p.MaxAttempts
}

// NextStatusFor возвращает следующий статус платежа для нормализованного
// результата провайдера, и false - если переход из текущего статуса недопустим
func (p *Payment) NextStatusFor(result ProviderResult) (PaymentStatus, bool) {
	switch result {
	case ResultAccepted:
		if p.Status == PaymentPending {
			return PaymentProcessing, true
		}
	case ResultSuccess:
		if p.Status == PaymentPending || p.Status == PaymentProcessing {
			return PaymentCompleted, true
		}
	case ResultFailed:
		if p.Status == PaymentPending || p.Status == PaymentProcessing {
			return PaymentFailed, true
		}
	}
	return p.Status, false
}
