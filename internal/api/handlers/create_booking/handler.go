package create_booking

import (
	"errors"
	"net/http"

	"github.com/BatoulDev/babibeauty-booking/internal/api/handlers"
	"github.com/BatoulDev/babibeauty-booking/internal/api/middleware"
	createBooking "github.com/BatoulDev/babibeauty-booking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartsAt    = "некорректный формат startsAt, ожидается YYYY-MM-DD HH:MM:SS"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgExpertNotFound     = "эксперт не найден"
	msgExpertInactive     = "эксперт не принимает новые записи"
	msgUserNotFound       = "пользователь не найден"
	msgInvalidSlot        = "выбранное время не попадает на сетку слотов или уже прошло"
	msgSlotFull           = "выбранный слот полностью занят"
	msgDuplicateBooking   = "у вас уже есть бронирование на этот слот"
	msgConflict           = "конфликт одновременных бронирований, повторите запрос"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse startsAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartsAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrExpertNotFound):
			h.logger.Warn("POST /bookings - Expert not found: expert_id=%d", req.ExpertID)
			handlers.RespondNotFound(w, msgExpertNotFound)

		case errors.Is(err, createBooking.ErrExpertInactive):
			h.logger.Warn("POST /bookings - Expert inactive: expert_id=%d", req.ExpertID)
			handlers.RespondUnprocessable(w, handlers.KindExpertInactive, msgExpertInactive)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: user_id=%d", customerID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrInvalidSlot):
			h.logger.Warn("POST /bookings - Invalid slot: user_id=%d, expert_id=%d, starts_at=%s",
				customerID, req.ExpertID, req.StartsAt)
			handlers.RespondUnprocessable(w, handlers.KindInvalidSlot, msgInvalidSlot)

		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot full: user_id=%d, expert_id=%d, starts_at=%s",
				customerID, req.ExpertID, req.StartsAt)
			handlers.RespondError(w, http.StatusConflict, handlers.KindSlotFull, msgSlotFull)

		case errors.Is(err, createBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings - Duplicate booking: user_id=%d, expert_id=%d, starts_at=%s",
				customerID, req.ExpertID, req.StartsAt)
			handlers.RespondError(w, http.StatusConflict, handlers.KindDuplicateBooking, msgDuplicateBooking)

		case errors.Is(err, createBooking.ErrConflict):
			h.logger.Warn("POST /bookings - Transient conflict: user_id=%d, expert_id=%d", customerID, req.ExpertID)
			handlers.RespondRetryableError(w, http.StatusConflict, handlers.KindConflict, msgConflict)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", customerID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, expert_id=%d, error=%v",
				customerID, req.ExpertID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, expert_id=%d",
		result.ID, customerID, req.ExpertID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
