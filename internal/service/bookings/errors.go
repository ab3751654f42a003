package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrBillboardNotFound возвращается, когда щит не найден
	ErrBillboardNotFound = errors.New("billboard not found")

	// ErrInvalidStateTransition возвращается при недопустимом переходе статуса
	ErrInvalidStateTransition = errors.New("invalid booking state transition")

	// ErrInvalidStatus возвращается при попытке отфильтровать по недопустимому статусу
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
