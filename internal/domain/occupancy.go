package domain

import "time"

// HasConflict проверяет, пересекается ли запрошенный диапазон хотя бы с одним
// блокирующим бронированием щита
// Блокируют только подтвержденные бронирования - requested/rejected/cancelled/completed
// никогда не мешают новым заявкам
func HasConflict(bookings []*Booking, start, end time.Time) bool {
	return FindConflict(bookings, start, end, 0) != nil
}

// FindConflict возвращает первое блокирующее бронирование, пересекающееся
// с запрошенным диапазоном, или nil, если конфликта нет
// excludeID исключает бронирование из проверки (0 - не исключать ничего);
// используется при повторной проверке конфликта на confirm, чтобы
// бронирование не конфликтовало само с собой
func FindConflict(bookings []*Booking, start, end time.Time, excludeID int64) *Booking {
	for _, booking := range bookings {
		if booking.ID == excludeID {
			continue
		}
		if !booking.Blocks() {
			continue
		}
		if Overlaps(booking.StartDate, booking.EndDate, start, end) {
			return booking
		}
	}
	return nil
}

// BillboardCurrentStatus вычисляет текущий статус щита
// Физический статус maintenance/damaged перекрывает любые бронирования;
// иначе щит занят, если хотя бы одно подтвержденное бронирование
// активно в данный момент (start <= now <= end включительно)
func BillboardCurrentStatus(billboard *Billboard, bookings []*Booking, now time.Time) BillboardStatus {
	if !billboard.IsOperational() {
		return BillboardMaintenance
	}

	for _, booking := range bookings {
		if booking.IsActiveAt(now) {
			return BillboardOccupied
		}
	}

	return BillboardAvailable
}

// OccupancyRate вычисляет процент занятости щита в окне [windowStart, windowEnd]
// Для каждого подтвержденного бронирования, пересекающего окно, суммируется
// длина пересечения в днях; сумма делится на длину окна и умножается на 100
// Возвращает 0, если окно имеет нулевую длину
//
// Пересекающиеся друг с другом подтвержденные бронирования НЕ дедуплицируются -
// каждое суммируется независимо, поэтому значение может превышать 100
// при наложении исторических данных (поведение сохранено для паритета)
func OccupancyRate(bookings []*Booking, windowStart, windowEnd time.Time) float64 {
	totalDays := DaysBetween(windowStart, windowEnd)
	if totalDays == 0 {
		return 0
	}

	occupiedDays := 0
	for _, booking := range bookings {
		if !booking.Blocks() {
			continue
		}
		occupiedDays += OverlapDays(booking.StartDate, booking.EndDate, windowStart, windowEnd)
	}

	return float64(occupiedDays) / float64(totalDays) * 100
}
