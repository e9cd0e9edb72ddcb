package menu

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	menuService "github.com/m04kA/SMC-ReservationService/internal/service/menu"
)

var errInvalidMaxPrice = errors.New("invalid max_price")

// ToServiceRequest собирает фильтр меню из query параметров category и max_price.
// Значение "all" означает отсутствие фильтра
func ToServiceRequest(query url.Values) (*menuService.ListRequest, error) {
	req := &menuService.ListRequest{}

	if category := strings.TrimSpace(query.Get("category")); category != "" && !strings.EqualFold(category, "all") {
		req.Category = &category
	}

	if raw := strings.TrimSpace(query.Get("max_price")); raw != "" && !strings.EqualFold(raw, "all") {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			return nil, errInvalidMaxPrice
		}
		req.MaxPrice = &price
	}

	return req, nil
}
