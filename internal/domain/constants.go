package domain

// Default configuration values
const (
	DefaultMaxPaymentAttempts = 3
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxReasonLength             = 500
	MaxFailedPaymentAttempts    = 10
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ExpirationWarningDays пороги предупреждений об истечении договора в днях
// Sweep отправляет уведомление только при ТОЧНОМ совпадении с порогом
// (не "меньше или равно"), чтобы каждый порог срабатывал один раз
var ExpirationWarningDays = []int{30, 14, 7, 3, 1}

// TerminalBookingStatuses список терминальных статусов бронирований
var TerminalBookingStatuses = []BookingStatus{
	StatusRejected,
	StatusCancelled,
	StatusCompleted,
}

// UrgencyFor возвращает уровень срочности предупреждения об истечении
func UrgencyFor(daysUntilExpiration int) string {
	switch {
	case daysUntilExpiration <= 3:
		return "critical"
	case daysUntilExpiration <= 7:
		return "high"
	default:
		return "normal"
	}
}
