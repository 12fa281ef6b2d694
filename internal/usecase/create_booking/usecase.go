package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/BatoulDev/babibeauty-booking/internal/domain"
	expertClient "github.com/BatoulDev/babibeauty-booking/internal/integrations/expertservice"
	userClient "github.com/BatoulDev/babibeauty-booking/internal/integrations/userservice"
	"github.com/BatoulDev/babibeauty-booking/pkg/ptr"
	"github.com/BatoulDev/babibeauty-booking/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	expertClient ExpertServiceClient
	userClient   UserServiceClient
	txManager    TransactionManager
	schedule     domain.ScheduleConfig
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	expertClient ExpertServiceClient,
	userClient UserServiceClient,
	txManager TransactionManager,
	schedule domain.ScheduleConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		expertClient: expertClient,
		userClient:   userClient,
		txManager:    txManager,
		schedule:     schedule,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка вместимости и вставка идут одной сериализуемой транзакцией:
// два конкурирующих запроса не могут оба увидеть count=2 и вместе
// превысить вместимость слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, expert=%d, startsAt=%s",
		req.CustomerID, req.ExpertID, req.StartsAt.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Нормализация: секунды отбрасываются, конец слота производный
	startsAt := normalizeStartsAt(req.StartsAt)

	// 3. Валидация по сетке слотов и рабочим часам
	now := uc.timeProvider.Now()
	if err := validateSlot(uc.schedule, startsAt, now); err != nil {
		uc.logger.Warn("CreateBooking: slot validation failed for %s: %v",
			startsAt.Format(domain.DateTimeFormat), err)
		return nil, err
	}

	// 4. Получаем эксперта (и его базовую цену для снимка)
	expert, err := uc.expertClient.GetExpert(ctx, req.ExpertID)
	if err != nil {
		if errors.Is(err, expertClient.ErrExpertNotFound) {
			uc.logger.Warn("CreateBooking: expert id=%d not found", req.ExpertID)
			return nil, ErrExpertNotFound
		}
		uc.logger.Error("CreateBooking: failed to get expert id=%d: %v", req.ExpertID, err)
		return nil, fmt.Errorf("%w: failed to get expert: %v", ErrInternal, err)
	}

	// Деактивированный эксперт не принимает новые записи
	if !expert.IsActive {
		uc.logger.Warn("CreateBooking: expert id=%d is not active", req.ExpertID)
		return nil, ErrExpertInactive
	}

	// 5. Проверяем существование клиента
	if err := uc.userClient.Exists(ctx, req.CustomerID); err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%d not found", req.CustomerID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: failed to check user id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to check user: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 6. Проверка вместимости + вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Защита от повторной самозаписи
		duplicates, err := uc.bookingRepo.CountActiveByCustomerAtSlot(txCtx, req.CustomerID, req.ExpertID, startsAt, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count customer bookings: %v", err)
			return fmt.Errorf("%w: failed to count customer bookings: %v", ErrInternal, err)
		}
		if duplicates > 0 {
			uc.logger.Warn("CreateBooking: customer=%d already booked expert=%d at %s",
				req.CustomerID, req.ExpertID, startsAt.Format(domain.DateTimeFormat))
			return ErrDuplicateBooking
		}

		// 6.2. Проверка вместимости слота (строки ключа блокируются)
		occupied, err := uc.bookingRepo.CountActiveAtSlot(txCtx, req.ExpertID, startsAt, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count slot occupancy: %v", err)
			return fmt.Errorf("%w: failed to count slot occupancy: %v", ErrInternal, err)
		}
		if occupied >= uc.schedule.SlotCapacity {
			uc.logger.Warn("CreateBooking: slot full, %d/%d spots taken", occupied, uc.schedule.SlotCapacity)
			return ErrSlotFull
		}

		uc.logger.Info("CreateBooking: slot available, %d/%d spots taken", occupied, uc.schedule.SlotCapacity)

		// 6.3. Создаем бронирование со снимком цены
		booking := &domain.Booking{
			CustomerID: req.CustomerID,
			ExpertID:   req.ExpertID,
			StartsAt:   startsAt,
			EndsAt:     uc.schedule.SlotEnd(startsAt),
			Status:     domain.StatusPending,
			Price:      resolvePrice(req.Price, expert.BasePrice),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Транзиентные конфликты БД отличаем от занятого слота:
		// их клиент может безопасно повторить
		if errors.Is(err, txmanager.ErrConflict) {
			uc.logger.Warn("CreateBooking: transaction conflict for expert=%d at %s: %v",
				req.ExpertID, startsAt.Format(domain.DateTimeFormat), err)
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:         result.ID,
		CustomerID: result.CustomerID,
		ExpertID:   result.ExpertID,
		StartsAt:   result.StartsAt,
		EndsAt:     result.EndsAt,
		Status:     string(result.Status),
		Price:      result.Price,
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}

// resolvePrice вычисляет снимок цены: переопределение из запроса,
// иначе базовая цена эксперта, иначе 0
func resolvePrice(override *float64, basePrice *float64) float64 {
	if override != nil {
		return *override
	}
	return ptr.Deref(basePrice)
}
