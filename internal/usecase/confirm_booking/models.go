package confirm_booking

import "time"

// Request модель запроса на подтверждение бронирования
type Request struct {
	TenantID   int64   // ID тенанта
	BookingID  int64   // ID бронирования
	FinalPrice float64 // Итоговая согласованная цена
}

// Response модель ответа с подтвержденным бронированием
type Response struct {
	ID          int64
	BillboardID int64
	ClientID    int64
	StartDate   time.Time
	EndDate     time.Time
	FinalPrice  float64
	Status      string

	UpdatedAt time.Time
}
