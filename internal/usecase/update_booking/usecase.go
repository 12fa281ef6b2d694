package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/BatoulDev/babibeauty-booking/internal/domain"
	expertClient "github.com/BatoulDev/babibeauty-booking/internal/integrations/expertservice"
	bookingRepo "github.com/BatoulDev/babibeauty-booking/internal/infra/storage/booking"
	"github.com/BatoulDev/babibeauty-booking/pkg/txmanager"
)

// UseCase use case для изменения бронирования:
// перенос времени/эксперта, смена статуса, корректировка цены
type UseCase struct {
	bookingRepo  BookingRepository
	expertClient ExpertServiceClient
	txManager    TransactionManager
	schedule     domain.ScheduleConfig
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	expertClient ExpertServiceClient,
	txManager TransactionManager,
	schedule domain.ScheduleConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		expertClient: expertClient,
		txManager:    txManager,
		schedule:     schedule,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case изменения бронирования
// При переносе времени/эксперта сеточная и capacity-проверки выполняются
// заново, исключая собственную строку бронирования из подсчёта
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: id=%d", req.BookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем текущее состояние
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Пользователь меняет только свои бронирования, администратор - любые
	if !req.IsAdmin && booking.CustomerID != req.UserID {
		uc.logger.Warn("UpdateBooking: access denied for user=%d to booking id=%d", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	// 4. Кандидатные значения для переноса
	targetExpert := booking.ExpertID
	if req.ExpertID != nil {
		targetExpert = *req.ExpertID
	}
	targetStart := booking.StartsAt
	if req.StartsAt != nil {
		targetStart = normalizeStartsAt(*req.StartsAt)
	}

	moved := targetExpert != booking.ExpertID || !targetStart.Equal(booking.StartsAt)

	// 5. Смена статуса проверяется по state machine
	targetStatus := booking.Status
	if req.Status != nil {
		parsed, ok := domain.ParseBookingStatus(*req.Status)
		if !ok {
			uc.logger.Warn("UpdateBooking: invalid status %q for id=%d", *req.Status, req.BookingID)
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		if !booking.CanTransitionTo(parsed) {
			uc.logger.Warn("UpdateBooking: illegal transition %s -> %s for id=%d",
				booking.Status, parsed, req.BookingID)
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, parsed)
		}
		targetStatus = parsed
	}

	// 6. Переносить можно только активное бронирование
	if moved {
		if booking.IsTerminal() {
			uc.logger.Warn("UpdateBooking: cannot move booking id=%d in status %s", req.BookingID, booking.Status)
			return nil, fmt.Errorf("%w: cannot move a %s booking", ErrInvalidTransition, booking.Status)
		}

		now := uc.timeProvider.Now()
		if err := validateSlot(uc.schedule, targetStart, now); err != nil {
			uc.logger.Warn("UpdateBooking: slot validation failed for %s: %v",
				targetStart.Format(domain.DateTimeFormat), err)
			return nil, err
		}

		if targetExpert != booking.ExpertID {
			expert, err := uc.expertClient.GetExpert(ctx, targetExpert)
			if err != nil {
				if errors.Is(err, expertClient.ErrExpertNotFound) {
					uc.logger.Warn("UpdateBooking: expert id=%d not found", targetExpert)
					return nil, ErrExpertNotFound
				}
				uc.logger.Error("UpdateBooking: failed to get expert id=%d: %v", targetExpert, err)
				return nil, fmt.Errorf("%w: failed to get expert: %v", ErrInternal, err)
			}
			// Деактивированный эксперт не принимает новые записи
			if !expert.IsActive {
				uc.logger.Warn("UpdateBooking: expert id=%d is not active", targetExpert)
				return nil, ErrExpertInactive
			}
		}
	}

	// 7. Применяем изменения
	booking.ExpertID = targetExpert
	booking.StartsAt = targetStart
	booking.EndsAt = uc.schedule.SlotEnd(targetStart)
	booking.Status = targetStatus
	if req.Price != nil {
		booking.Price = *req.Price
	}

	if moved {
		// Перенос конкурирует с созданием бронирований на целевой слот,
		// поэтому идёт через ту же сериализуемую транзакцию
		err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			duplicates, err := uc.bookingRepo.CountActiveByCustomerAtSlot(
				txCtx, booking.CustomerID, targetExpert, targetStart, &booking.ID)
			if err != nil {
				uc.logger.Error("UpdateBooking: failed to count customer bookings: %v", err)
				return fmt.Errorf("%w: failed to count customer bookings: %v", ErrInternal, err)
			}
			if duplicates > 0 {
				uc.logger.Warn("UpdateBooking: customer=%d already booked expert=%d at %s",
					booking.CustomerID, targetExpert, targetStart.Format(domain.DateTimeFormat))
				return ErrDuplicateBooking
			}

			occupied, err := uc.bookingRepo.CountActiveAtSlot(txCtx, targetExpert, targetStart, &booking.ID)
			if err != nil {
				uc.logger.Error("UpdateBooking: failed to count slot occupancy: %v", err)
				return fmt.Errorf("%w: failed to count slot occupancy: %v", ErrInternal, err)
			}
			if occupied >= uc.schedule.SlotCapacity {
				uc.logger.Warn("UpdateBooking: target slot full, %d/%d spots taken",
					occupied, uc.schedule.SlotCapacity)
				return ErrSlotFull
			}

			return uc.applyUpdate(txCtx, booking)
		})
	} else {
		err = uc.applyUpdate(ctx, booking)
	}

	if err != nil {
		if errors.Is(err, txmanager.ErrConflict) {
			uc.logger.Warn("UpdateBooking: transaction conflict for id=%d: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d", booking.ID)

	return &Response{
		ID:         booking.ID,
		CustomerID: booking.CustomerID,
		ExpertID:   booking.ExpertID,
		StartsAt:   booking.StartsAt,
		EndsAt:     booking.EndsAt,
		Status:     string(booking.Status),
		Price:      booking.Price,
		CreatedAt:  booking.CreatedAt,
		UpdatedAt:  booking.UpdatedAt,
	}, nil
}

func (uc *UseCase) applyUpdate(ctx context.Context, booking *domain.Booking) error {
	if err := uc.bookingRepo.Update(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
	}
	return nil
}
