package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID int64     // ID клиента (из контекста аутентификации)
	ExpertID   int64     // ID эксперта
	StartsAt   time.Time // желаемое начало слота (дата + время)
	Price      *float64  // переопределение цены (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64
	CustomerID int64
	ExpertID   int64
	StartsAt   time.Time
	EndsAt     time.Time // производное: StartsAt + длительность слота
	Status     string    // всегда pending при создании
	Price      float64   // снимок: override ?? базовая цена эксперта ?? 0
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
