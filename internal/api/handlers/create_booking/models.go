package create_booking

import (
	"time"

	"github.com/BatoulDev/babibeauty-booking/internal/domain"
	createBooking "github.com/BatoulDev/babibeauty-booking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ExpertID int64    `json:"expertId"`
	StartsAt string   `json:"startsAt"` // "2025-11-20 10:30:00"
	Price    *float64 `json:"price,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         int64   `json:"id"`
	CustomerID int64   `json:"customerId"`
	ExpertID   int64   `json:"expertId"`
	StartsAt   string  `json:"startsAt"`
	EndsAt     string  `json:"endsAt"`
	Status     string  `json:"status"`
	Price      float64 `json:"price"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// customerID приходит из контекста аутентификации, не из тела
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	startsAt, err := parseDateTime(r.StartsAt)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID: customerID,
		ExpertID:   r.ExpertID,
		StartsAt:   startsAt,
		Price:      r.Price,
	}, nil
}

// parseDateTime принимает время начала с секундами и без.
// Время трактуется в зоне сервера: сравнение "слот в прошлом" идёт
// с локальными часами, UTC-разбор сдвигал бы его на смещение зоны
func parseDateTime(value string) (time.Time, error) {
	if t, err := time.ParseInLocation(domain.DateTimeFormat, value, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02 15:04", value, time.Local)
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:         resp.ID,
		CustomerID: resp.CustomerID,
		ExpertID:   resp.ExpertID,
		StartsAt:   resp.StartsAt.Format(domain.DateTimeFormat),
		EndsAt:     resp.EndsAt.Format(domain.DateTimeFormat),
		Status:     resp.Status,
		Price:      resp.Price,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}
