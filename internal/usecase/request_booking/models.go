package request_booking

import "time"

// Request модель запроса на создание заявки на бронирование щита
type Request struct {
	TenantID       int64     // ID тенанта (передается явно, не из глобального состояния)
	BillboardID    int64     // ID рекламного щита
	ClientID       int64     // ID клиента
	StartDate      time.Time // Начало аренды
	EndDate        time.Time // Конец аренды (строго позже начала)
	RequestedPrice float64   // Запрошенная клиентом цена
}

// Response модель ответа с созданной заявкой
type Response struct {
	ID             int64
	BillboardID    int64
	ClientID       int64
	StartDate      time.Time
	EndDate        time.Time
	RequestedPrice float64
	Status         string

	CreatedAt time.Time
	UpdatedAt time.Time
}
