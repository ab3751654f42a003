package get_occupancy

import "time"

// Request модель запроса занятости щита за окно дат
type Request struct {
	TenantID    int64     // ID тенанта
	BillboardID int64     // ID рекламного щита
	WindowStart time.Time // Начало окна
	WindowEnd   time.Time // Конец окна
}

// Response модель ответа с текущим статусом и занятостью щита
type Response struct {
	BillboardID   int64
	Status        string  // Текущий операционный статус щита
	OccupancyRate float64 // Процент занятости окна подтвержденными бронированиями
	WindowStart   time.Time
	WindowEnd     time.Time

	Bookings []BookingWindow // Подтвержденные бронирования, пересекающие окно
}

// BookingWindow занимающее щит бронирование в пределах окна
type BookingWindow struct {
	ID        int64
	ClientID  int64
	StartDate time.Time
	EndDate   time.Time
}
