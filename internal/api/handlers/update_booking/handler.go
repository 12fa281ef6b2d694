package update_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/BatoulDev/babibeauty-booking/internal/api/handlers"
	"github.com/BatoulDev/babibeauty-booking/internal/api/middleware"
	updateBooking "github.com/BatoulDev/babibeauty-booking/internal/usecase/update_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartsAt    = "некорректный формат startsAt, ожидается YYYY-MM-DD HH:MM:SS"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgNotFound           = "бронирование не найдено"
	msgExpertNotFound     = "эксперт не найден"
	msgExpertInactive     = "эксперт не принимает новые записи"
	msgInvalidSlot        = "новое время не попадает на сетку слотов или уже прошло"
	msgSlotFull           = "целевой слот полностью занят"
	msgDuplicateBooking   = "у клиента уже есть бронирование на этот слот"
	msgInvalidTransition  = "недопустимая смена статуса"
	msgConflict           = "конфликт одновременных изменений, повторите запрос"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id} - Missing user ID: booking_id=%d", bookingID)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid request body: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, userID, middleware.IsAdmin(r.Context()))
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Failed to parse startsAt: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidStartsAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateBooking.ErrExpertNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Expert not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgExpertNotFound)

		case errors.Is(err, updateBooking.ErrExpertInactive):
			h.logger.Warn("PATCH /bookings/{id} - Expert inactive: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, handlers.KindExpertInactive, msgExpertInactive)

		case errors.Is(err, updateBooking.ErrInvalidSlot):
			h.logger.Warn("PATCH /bookings/{id} - Invalid slot: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, handlers.KindInvalidSlot, msgInvalidSlot)

		case errors.Is(err, updateBooking.ErrSlotFull):
			h.logger.Warn("PATCH /bookings/{id} - Slot full: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, handlers.KindSlotFull, msgSlotFull)

		case errors.Is(err, updateBooking.ErrDuplicateBooking):
			h.logger.Warn("PATCH /bookings/{id} - Duplicate booking: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, handlers.KindDuplicateBooking, msgDuplicateBooking)

		case errors.Is(err, updateBooking.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id} - Invalid transition: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondUnprocessable(w, handlers.KindInvalidTransition, msgInvalidTransition)

		case errors.Is(err, updateBooking.ErrConflict):
			h.logger.Warn("PATCH /bookings/{id} - Transient conflict: booking_id=%d", bookingID)
			handlers.RespondRetryableError(w, http.StatusConflict, handlers.KindConflict, msgConflict)

		case errors.Is(err, updateBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id} - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /bookings/{id} - Failed to update booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id} - Booking updated successfully: booking_id=%d, status=%s",
		result.ID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
