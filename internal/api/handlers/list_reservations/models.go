package list_reservations

import (
	"net/url"

	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// ToServiceRequest собирает фильтр из query параметров: date, status, sort, order
func ToServiceRequest(query url.Values) *models.ListAllRequest {
	req := &models.ListAllRequest{
		SortBy:    query.Get("sort"),
		SortOrder: query.Get("order"),
	}

	if date := query.Get("date"); date != "" {
		req.Date = &date
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	return req
}
