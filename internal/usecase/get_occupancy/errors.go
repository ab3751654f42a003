package get_occupancy

import "errors"

var (
	// ErrBillboardNotFound щит не найден
	ErrBillboardNotFound = errors.New("get_occupancy: billboard not found")
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("get_occupancy: invalid input")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("get_occupancy: internal error")
)
