package update_booking

import "time"

// Request модель запроса на изменение бронирования
// Любое подмножество изменяемых полей; nil означает "не менять".
// UserID и IsAdmin приходят из контекста аутентификации
type Request struct {
	BookingID int64
	UserID    int64
	IsAdmin   bool
	ExpertID  *int64
	StartsAt  *time.Time
	Status    *string
	Price     *float64
}

// Response модель ответа с обновлённым бронированием
type Response struct {
	ID         int64
	CustomerID int64
	ExpertID   int64
	StartsAt   time.Time
	EndsAt     time.Time
	Status     string
	Price      float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
