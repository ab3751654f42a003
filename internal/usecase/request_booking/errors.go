package request_booking

import "errors"

var (
	// ErrBillboardNotFound возвращается, когда щит не найден
	ErrBillboardNotFound = errors.New("request_booking: billboard not found")

	// ErrBookingConflict возвращается, когда запрошенный диапазон пересекается
	// с подтвержденным бронированием этого щита
	ErrBookingConflict = errors.New("request_booking: date range conflicts with a confirmed booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("request_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_booking: internal error")
)
