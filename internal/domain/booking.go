package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents an appointment with a beauty expert
type Booking struct {
	ID         int64
	CustomerID int64
	ExpertID   int64
	StartsAt   time.Time // выровнено по сетке слотов, секунды всегда 0
	EndsAt     time.Time // всегда StartsAt + длительность слота, производное поле
	Status     BookingStatus
	Price      float64 // снимок цены на момент создания

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking counts toward slot capacity
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsTerminal returns true if no further transitions are allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanTransitionTo reports whether the status change is legal:
// pending -> confirmed -> completed, cancelled from pending or confirmed.
// A transition to the current status is a permitted no-op
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if b.Status == next {
		return true
	}
	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		// completed и cancelled - терминальные статусы
		return false
	}
}

// ParseBookingStatus validates and converts a raw status string
func ParseBookingStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(s)
	for _, valid := range AllStatuses {
		if status == valid {
			return status, true
		}
	}
	return "", false
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	ExpertID        *int64         // фильтр по эксперту (опционально)
	CustomerID      *int64         // фильтр по клиенту (опционально)
	Date            *time.Time     // бронирования на эту календарную дату (опционально)
	Status          *BookingStatus // фильтр по статусу (опционально)
	IncludeInactive bool           // включать ли отменённые бронирования
}
