package payments

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrSubscriptionNotFound возвращается, когда подписка не найдена
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrRetriesExhausted возвращается, когда лимит повторных попыток исчерпан
	ErrRetriesExhausted = errors.New("payment retries exhausted")

	// ErrNotBillable возвращается, когда подписка не принимает платежи
	ErrNotBillable = errors.New("subscription is not billable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
