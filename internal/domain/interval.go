package domain

import "time"

// Overlaps проверяет пересечение двух диапазонов дат
// Пересечение есть только если интервалы действительно накладываются друг на друга:
// - начало первого СТРОГО раньше конца второго И
// - конец первого СТРОГО позже начала второго
//
// Используем строгие неравенства, чтобы граничные случаи не считались пересечением:
// - Диапазон 01.01-31.01 и диапазон 15.01-15.02 → ЕСТЬ пересечение (15.01-31.01)
// - Диапазон 01.01-31.01 и диапазон 31.01-28.02 → НЕТ пересечения (граничат)
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// OverlapDays возвращает длину пересечения диапазона [start, end]
// с окном [windowStart, windowEnd] в днях (усечение до целого)
// Возвращает 0, если пересечения нет
func OverlapDays(start, end, windowStart, windowEnd time.Time) int {
	if !Overlaps(start, end, windowStart, windowEnd) {
		return 0
	}

	from := start
	if windowStart.After(from) {
		from = windowStart
	}

	to := end
	if windowEnd.Before(to) {
		to = windowEnd
	}

	return DaysBetween(from, to)
}

// DaysBetween возвращает количество дней между двумя датами (усечение до целого)
// Возвращает 0, если to не позже from
func DaysBetween(from, to time.Time) int {
	if !to.After(from) {
		return 0
	}
	return int(to.Sub(from).Hours() / 24)
}
