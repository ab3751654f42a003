package run_sweep

// Request модель запроса запуска sweep'а реконсиляции для одного тенанта
type Request struct {
	TenantID int64 // ID тенанта
}

// Report итоги одного прохода sweep'а
type Report struct {
	TenantID           int64
	WarningsSent       int // Отправленные предупреждения об истечении
	ContractsCompleted int // Договоры, переведенные в completed
	BookingsCompleted  int // Бронирования, переведенные в completed
	Errors             int // Ошибки по отдельным записям (не прерывают проход)
}
