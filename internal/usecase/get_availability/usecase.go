package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/BatoulDev/babibeauty-booking/internal/domain"
	expertClient "github.com/BatoulDev/babibeauty-booking/internal/integrations/expertservice"
)

// UseCase use case расчёта занятости слотов эксперта на дату
type UseCase struct {
	bookingRepo  BookingRepository
	expertClient ExpertServiceClient
	schedule     domain.ScheduleConfig
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	expertClient ExpertServiceClient,
	schedule domain.ScheduleConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		expertClient: expertClient,
		schedule:     schedule,
		logger:       logger,
	}
}

// Execute выполняет use case получения занятости слотов.
// Чтение без транзакции: устаревший "available" лишь приведёт к попытке
// записи, которую писатель корректно отклонит - источник истины у него
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: expert=%d, date=%s", req.ExpertID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование эксперта
	expert, err := uc.expertClient.GetExpertWithGracefulDegradation(ctx, req.ExpertID)
	if err != nil {
		if errors.Is(err, expertClient.ErrExpertNotFound) {
			uc.logger.Warn("GetAvailability: expert id=%d not found", req.ExpertID)
			return nil, ErrExpertNotFound
		}
		uc.logger.Error("GetAvailability: failed to get expert id=%d: %v", req.ExpertID, err)
		return nil, fmt.Errorf("%w: failed to get expert: %v", ErrInternal, err)
	}

	// Календарь деактивированного эксперта не публикуется
	if !expert.IsActive {
		uc.logger.Warn("GetAvailability: expert id=%d is not active", req.ExpertID)
		return nil, ErrExpertNotFound
	}

	// 3. Занятость всех слотов дня одним запросом
	counts, err := uc.bookingRepo.CountBookedBySlot(ctx, req.ExpertID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	// 4. Раскладываем счётчики по сетке слотов
	grid := uc.schedule.Slots(req.Date)
	slots := make([]Slot, len(grid))
	for i, gridSlot := range grid {
		booked := counts[gridSlot.StartsAt.Format(domain.DateTimeFormat)]
		slots[i] = Slot{
			StartsAt:    gridSlot.StartsAt,
			EndsAt:      gridSlot.EndsAt,
			BookedCount: booked,
			Capacity:    uc.schedule.SlotCapacity,
			Available:   booked < uc.schedule.SlotCapacity,
		}
	}

	uc.logger.Info("GetAvailability: %d slots for expert=%d, date=%s",
		len(slots), req.ExpertID, req.Date.Format(domain.DateFormat))

	return &Response{
		ExpertID: req.ExpertID,
		Date:     req.Date,
		Slots:    slots,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ExpertID <= 0 {
		return fmt.Errorf("%w: expertID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
