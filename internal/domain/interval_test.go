package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		aStart   time.Time
		aEnd     time.Time
		bStart   time.Time
		bEnd     time.Time
		expected bool
	}{
		{
			name:   "полное пересечение",
			aStart: date(2026, 1, 1), aEnd: date(2026, 1, 31),
			bStart: date(2026, 1, 15), bEnd: date(2026, 2, 15),
			expected: true,
		},
		{
			name:   "вложенный диапазон",
			aStart: date(2026, 1, 1), aEnd: date(2026, 1, 31),
			bStart: date(2026, 1, 10), bEnd: date(2026, 1, 20),
			expected: true,
		},
		{
			name:   "смежные диапазоны не пересекаются",
			aStart: date(2026, 1, 1), aEnd: date(2026, 1, 15),
			bStart: date(2026, 1, 15), bEnd: date(2026, 1, 31),
			expected: false,
		},
		{
			name:   "диапазоны не соприкасаются",
			aStart: date(2026, 1, 1), aEnd: date(2026, 1, 10),
			bStart: date(2026, 2, 1), bEnd: date(2026, 2, 10),
			expected: false,
		},
		{
			name:   "пересечение в один день",
			aStart: date(2026, 1, 1), aEnd: date(2026, 1, 16),
			bStart: date(2026, 1, 15), bEnd: date(2026, 1, 31),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Пересечение симметрично
			assert.Equal(t, tt.expected, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestOverlapDays(t *testing.T) {
	t.Run("полностью внутри окна", func(t *testing.T) {
		days := OverlapDays(date(2026, 1, 10), date(2026, 1, 20), date(2026, 1, 1), date(2026, 2, 1))
		assert.Equal(t, 10, days)
	})

	t.Run("обрезается границей окна", func(t *testing.T) {
		days := OverlapDays(date(2025, 12, 25), date(2026, 1, 10), date(2026, 1, 1), date(2026, 2, 1))
		assert.Equal(t, 9, days)
	})

	t.Run("вне окна", func(t *testing.T) {
		days := OverlapDays(date(2026, 3, 1), date(2026, 3, 10), date(2026, 1, 1), date(2026, 2, 1))
		assert.Equal(t, 0, days)
	})

	t.Run("смежный с окном", func(t *testing.T) {
		days := OverlapDays(date(2026, 2, 1), date(2026, 2, 10), date(2026, 1, 1), date(2026, 2, 1))
		assert.Equal(t, 0, days)
	})
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 7, DaysBetween(date(2026, 1, 1), date(2026, 1, 8)))
	assert.Equal(t, 0, DaysBetween(date(2026, 1, 8), date(2026, 1, 8)))
	// Прошедшая дата дает 0, а не отрицательное значение
	assert.Equal(t, 0, DaysBetween(date(2026, 1, 8), date(2026, 1, 1)))
	// Неполные сутки усекаются вниз
	from := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 6, DaysBetween(from, to))
}
