package run_sweep

import "errors"

var (
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("run_sweep: invalid input")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("run_sweep: internal error")
)
