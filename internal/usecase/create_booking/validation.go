package create_booking

import (
	"fmt"
	"time"

	"github.com/BatoulDev/babibeauty-booking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.ExpertID <= 0 {
		return fmt.Errorf("%w: expertID must be positive", ErrInvalidInput)
	}

	if req.StartsAt.IsZero() {
		return fmt.Errorf("%w: startsAt is required", ErrInvalidInput)
	}

	if req.Price != nil && *req.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	}

	return nil
}

// normalizeStartsAt отбрасывает секунды и наносекунды
func normalizeStartsAt(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

// validateSlot проверяет, что startsAt попадает на сетку слотов,
// слот целиком лежит в рабочих часах и не находится в прошлом
func validateSlot(schedule domain.ScheduleConfig, startsAt, now time.Time) error {
	if !schedule.AlignsToGrid(startsAt) {
		return fmt.Errorf("%w: %s does not align to the %d-minute grid within working hours %s-%s",
			ErrInvalidSlot, startsAt.Format(domain.DateTimeFormat),
			schedule.SlotDurationMinutes, schedule.OpenTime, schedule.CloseTime)
	}

	// Прошедшие слоты не бронируются
	if startsAt.Before(now) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidSlot, startsAt.Format(domain.DateTimeFormat))
	}

	return nil
}
