package update_booking

import (
	"fmt"
	"time"

	"github.com/BatoulDev/babibeauty-booking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ExpertID != nil && *req.ExpertID <= 0 {
		return fmt.Errorf("%w: expertID must be positive", ErrInvalidInput)
	}

	if req.StartsAt != nil && req.StartsAt.IsZero() {
		return fmt.Errorf("%w: startsAt must not be zero", ErrInvalidInput)
	}

	if req.Price != nil && *req.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	}

	if req.ExpertID == nil && req.StartsAt == nil && req.Status == nil && req.Price == nil {
		return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	return nil
}

// normalizeStartsAt отбрасывает секунды и наносекунды
func normalizeStartsAt(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

// validateSlot проверяет целевой слот переноса по сетке и рабочим часам
func validateSlot(schedule domain.ScheduleConfig, startsAt, now time.Time) error {
	if !schedule.AlignsToGrid(startsAt) {
		return fmt.Errorf("%w: %s does not align to the %d-minute grid within working hours %s-%s",
			ErrInvalidSlot, startsAt.Format(domain.DateTimeFormat),
			schedule.SlotDurationMinutes, schedule.OpenTime, schedule.CloseTime)
	}

	if startsAt.Before(now) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidSlot, startsAt.Format(domain.DateTimeFormat))
	}

	return nil
}
