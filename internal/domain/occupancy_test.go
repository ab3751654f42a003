package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func confirmedBooking(id int64, start, end time.Time) *Booking {
	return &Booking{
		ID:        id,
		Status:    StatusConfirmed,
		StartDate: start,
		EndDate:   end,
	}
}

func TestFindConflict(t *testing.T) {
	bookings := []*Booking{
		confirmedBooking(1, date(2026, 1, 1), date(2026, 1, 31)),
		{ID: 2, Status: StatusRequested, StartDate: date(2026, 2, 1), EndDate: date(2026, 2, 28)},
	}

	t.Run("подтвержденное бронирование блокирует", func(t *testing.T) {
		conflict := FindConflict(bookings, date(2026, 1, 15), date(2026, 2, 15), 0)
		assert.NotNil(t, conflict)
		assert.Equal(t, int64(1), conflict.ID)
	})

	t.Run("заявка в статусе requested не блокирует", func(t *testing.T) {
		conflict := FindConflict(bookings, date(2026, 2, 5), date(2026, 2, 10), 0)
		assert.Nil(t, conflict)
	})

	t.Run("смежный диапазон не конфликтует", func(t *testing.T) {
		conflict := FindConflict(bookings, date(2026, 1, 31), date(2026, 2, 1), 0)
		assert.Nil(t, conflict)
	})

	t.Run("исключение собственного ID", func(t *testing.T) {
		conflict := FindConflict(bookings, date(2026, 1, 15), date(2026, 2, 15), 1)
		assert.Nil(t, conflict)
	})
}

func TestHasConflict(t *testing.T) {
	bookings := []*Booking{
		confirmedBooking(1, date(2026, 1, 1), date(2026, 1, 31)),
		{ID: 2, Status: StatusRequested, StartDate: date(2026, 2, 1), EndDate: date(2026, 2, 28)},
	}

	t.Run("пересечение с подтвержденным", func(t *testing.T) {
		assert.True(t, HasConflict(bookings, date(2026, 1, 15), date(2026, 2, 15)))
	})

	t.Run("пересечение только с requested", func(t *testing.T) {
		assert.False(t, HasConflict(bookings, date(2026, 2, 5), date(2026, 2, 10)))
	})

	t.Run("смежный диапазон", func(t *testing.T) {
		assert.False(t, HasConflict(bookings, date(2026, 1, 31), date(2026, 2, 1)))
	})
}

func TestBillboardCurrentStatus(t *testing.T) {
	now := date(2026, 1, 15)

	t.Run("физический статус перекрывает бронирования", func(t *testing.T) {
		billboard := &Billboard{PhysicalStatus: PhysicalDamaged}
		bookings := []*Booking{confirmedBooking(1, date(2026, 1, 1), date(2026, 1, 31))}
		assert.Equal(t, BillboardMaintenance, BillboardCurrentStatus(billboard, bookings, now))
	})

	t.Run("активное подтвержденное бронирование занимает щит", func(t *testing.T) {
		billboard := &Billboard{PhysicalStatus: PhysicalOperational}
		bookings := []*Booking{confirmedBooking(1, date(2026, 1, 1), date(2026, 1, 31))}
		assert.Equal(t, BillboardOccupied, BillboardCurrentStatus(billboard, bookings, now))
	})

	t.Run("границы диапазона включительны", func(t *testing.T) {
		billboard := &Billboard{PhysicalStatus: PhysicalOperational}
		bookings := []*Booking{confirmedBooking(1, date(2026, 1, 15), date(2026, 1, 31))}
		assert.Equal(t, BillboardOccupied, BillboardCurrentStatus(billboard, bookings, now))
	})

	t.Run("будущее бронирование не занимает щит", func(t *testing.T) {
		billboard := &Billboard{PhysicalStatus: PhysicalOperational}
		bookings := []*Booking{confirmedBooking(1, date(2026, 2, 1), date(2026, 2, 28))}
		assert.Equal(t, BillboardAvailable, BillboardCurrentStatus(billboard, bookings, now))
	})

	t.Run("без бронирований щит свободен", func(t *testing.T) {
		billboard := &Billboard{PhysicalStatus: PhysicalOperational}
		assert.Equal(t, BillboardAvailable, BillboardCurrentStatus(billboard, nil, now))
	})
}

func TestOccupancyRate(t *testing.T) {
	window := struct{ start, end time.Time }{date(2026, 1, 1), date(2026, 1, 31)}

	t.Run("одно бронирование на треть окна", func(t *testing.T) {
		bookings := []*Booking{confirmedBooking(1, date(2026, 1, 1), date(2026, 1, 11))}
		rate := OccupancyRate(bookings, window.start, window.end)
		assert.InDelta(t, 33.33, rate, 0.01)
	})

	t.Run("нулевое окно дает 0", func(t *testing.T) {
		bookings := []*Booking{confirmedBooking(1, date(2026, 1, 1), date(2026, 1, 11))}
		assert.Equal(t, float64(0), OccupancyRate(bookings, date(2026, 1, 1), date(2026, 1, 1)))
	})

	t.Run("неподтвержденные бронирования не учитываются", func(t *testing.T) {
		bookings := []*Booking{
			{ID: 1, Status: StatusRequested, StartDate: date(2026, 1, 1), EndDate: date(2026, 1, 31)},
			{ID: 2, Status: StatusCancelled, StartDate: date(2026, 1, 1), EndDate: date(2026, 1, 31)},
		}
		assert.Equal(t, float64(0), OccupancyRate(bookings, window.start, window.end))
	})

	t.Run("пересекающиеся бронирования суммируются без дедупликации", func(t *testing.T) {
		// Два исторических бронирования на одни и те же даты: сумма превышает 100
		bookings := []*Booking{
			confirmedBooking(1, date(2026, 1, 1), date(2026, 1, 31)),
			confirmedBooking(2, date(2026, 1, 1), date(2026, 1, 31)),
		}
		assert.InDelta(t, 200, OccupancyRate(bookings, window.start, window.end), 0.01)
	})
}
