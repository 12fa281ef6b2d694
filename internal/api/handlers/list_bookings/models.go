package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/BatoulDev/babibeauty-booking/internal/domain"
	"github.com/BatoulDev/babibeauty-booking/internal/service/bookings/models"
)

// ParseServiceRequest собирает запрос сервиса из query параметров
// expertId, date, status и includeInactive опциональны
func ParseServiceRequest(query url.Values, userID int64, isAdmin bool) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		UserID:  userID,
		IsAdmin: isAdmin,
	}

	if raw := query.Get("expertId"); raw != "" {
		expertID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || expertID <= 0 {
			return nil, fmt.Errorf("invalid expertId %q", raw)
		}
		req.ExpertID = &expertID
	}

	if raw := query.Get("date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q", raw)
		}
		req.Date = &date
	}

	if raw := query.Get("status"); raw != "" {
		status := raw
		req.Status = &status
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive %q", raw)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
