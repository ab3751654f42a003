package confirm_booking

import "errors"

var (
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("confirm_booking: booking not found")
	// ErrInvalidStateTransition бронирование не в статусе requested
	ErrInvalidStateTransition = errors.New("confirm_booking: invalid state transition")
	// ErrBookingConflict диапазон дат пересекается с подтвержденным бронированием
	ErrBookingConflict = errors.New("confirm_booking: booking conflict")
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("confirm_booking: invalid input")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("confirm_booking: internal error")
)
