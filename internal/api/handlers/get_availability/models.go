package get_availability

import (
	"github.com/BatoulDev/babibeauty-booking/internal/domain"
	getAvailability "github.com/BatoulDev/babibeauty-booking/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ExpertID int64          `json:"expertId"`
	Date     string         `json:"date"` // "2025-11-20"
	Slots    []SlotResponse `json:"slots"`
}

// SlotResponse занятость одного слота сетки
type SlotResponse struct {
	StartsAt  string `json:"startsAt"` // "2025-11-20 10:30:00"
	EndsAt    string `json:"endsAt"`   // "2025-11-20 11:00:00"
	Count     int    `json:"count"`
	Capacity  int    `json:"capacity"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartsAt:  slot.StartsAt.Format(domain.DateTimeFormat),
			EndsAt:    slot.EndsAt.Format(domain.DateTimeFormat),
			Count:     slot.BookedCount,
			Capacity:  slot.Capacity,
			Available: slot.Available,
		}
	}

	return &AvailabilityResponse{
		ExpertID: resp.ExpertID,
		Date:     resp.Date.Format(domain.DateFormat),
		Slots:    slots,
	}
}
