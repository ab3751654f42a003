package contracts

import "errors"

var (
	// ErrContractNotFound возвращается, когда договор не найден
	ErrContractNotFound = errors.New("contract not found")

	// ErrInvalidStateTransition возвращается при недопустимом переходе статуса договора
	ErrInvalidStateTransition = errors.New("invalid contract state transition")

	// ErrInvalidStatus возвращается при некорректном целевом статусе
	ErrInvalidStatus = errors.New("invalid contract status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
