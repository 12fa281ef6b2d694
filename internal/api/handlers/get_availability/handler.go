package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/BatoulDev/babibeauty-booking/internal/api/handlers"
	"github.com/BatoulDev/babibeauty-booking/internal/domain"
	getAvailability "github.com/BatoulDev/babibeauty-booking/internal/usecase/get_availability"
)

const (
	msgInvalidExpertID = "некорректный параметр expertId"
	msgInvalidDate     = "некорректный параметр date, ожидается YYYY-MM-DD"
	msgExpertNotFound  = "эксперт не найден"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/availability?expertId=&date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	expertID, err := strconv.ParseInt(query.Get("expertId"), 10, 64)
	if err != nil || expertID <= 0 {
		h.logger.Warn("GET /bookings/availability - Invalid expertId: %q", query.Get("expertId"))
		handlers.RespondBadRequest(w, msgInvalidExpertID)
		return
	}

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /bookings/availability - Invalid date: %q", query.Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		ExpertID: expertID,
		Date:     date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrExpertNotFound):
			h.logger.Warn("GET /bookings/availability - Expert not found: expert_id=%d", expertID)
			handlers.RespondNotFound(w, msgExpertNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /bookings/availability - Invalid input: expert_id=%d, error=%v", expertID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /bookings/availability - Failed to get availability: expert_id=%d, error=%v",
				expertID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/availability - Availability retrieved: expert_id=%d, date=%s, slots=%d",
		expertID, query.Get("date"), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
