package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentNextStatusFor(t *testing.T) {
	tests := []struct {
		name    string
		status  PaymentStatus
		result  ProviderResult
		next    PaymentStatus
		allowed bool
	}{
		{"pending + accepted -> processing", PaymentPending, ResultAccepted, PaymentProcessing, true},
		{"pending + success -> completed", PaymentPending, ResultSuccess, PaymentCompleted, true},
		{"pending + failed -> failed", PaymentPending, ResultFailed, PaymentFailed, true},
		{"processing + success -> completed", PaymentProcessing, ResultSuccess, PaymentCompleted, true},
		{"processing + failed -> failed", PaymentProcessing, ResultFailed, PaymentFailed, true},
		{"processing + accepted недопустим", PaymentProcessing, ResultAccepted, PaymentProcessing, false},
		{"completed + failed недопустим", PaymentCompleted, ResultFailed, PaymentCompleted, false},
		{"failed + success недопустим", PaymentFailed, ResultSuccess, PaymentFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Payment{Status: tt.status}
			next, ok := p.NextStatusFor(tt.result)
			assert.Equal(t, tt.allowed, ok)
			assert.Equal(t, tt.next, next)
		})
	}
}

func TestPaymentIsTerminal(t *testing.T) {
	assert.True(t, (&Payment{Status: PaymentCompleted}).IsTerminal())
	assert.True(t, (&Payment{Status: PaymentFailed, RetryCount: 3, MaxAttempts: 3}).IsTerminal())
	assert.False(t, (&Payment{Status: PaymentFailed, RetryCount: 2, MaxAttempts: 3}).IsTerminal())
	assert.False(t, (&Payment{Status: PaymentPending}).IsTerminal())
	assert.False(t, (&Payment{Status: PaymentProcessing}).IsTerminal())
}

func TestPaymentCanRetry(t *testing.T) {
	assert.True(t, (&Payment{Status: PaymentFailed, RetryCount: 0, MaxAttempts: 3}).CanRetry())
	assert.True(t, (&Payment{Status: PaymentFailed, RetryCount: 2, MaxAttempts: 3}).CanRetry())
	// Лимит строгий: третья неудача при max_attempts=3 закрывает платеж
	assert.False(t, (&Payment{Status: PaymentFailed, RetryCount: 3, MaxAttempts: 3}).CanRetry())
	assert.False(t, (&Payment{Status: PaymentPending, RetryCount: 0, MaxAttempts: 3}).CanRetry())
	assert.False(t, (&Payment{Status: PaymentCompleted, RetryCount: 0, MaxAttempts: 3}).CanRetry())
}
