package billboard

import "errors"

var (
	// ErrBillboardNotFound возвращается, когда щит не найден
	ErrBillboardNotFound = errors.New("billboard.repository: billboard not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("billboard.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("billboard.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("billboard.repository: failed to scan row")
)
