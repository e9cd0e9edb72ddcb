package check_availability

import (
	"errors"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var (
	errInvalidDate      = errors.New("invalid date")
	errInvalidTime      = errors.New("invalid time")
	errInvalidPartySize = errors.New("invalid party size")
)

// TableResponse HTTP response model
type TableResponse struct {
	ID    int64 `json:"id"`
	Seats int   `json:"seats"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date           string          `json:"date"` // "2024-05-01"
	Time           string          `json:"time"` // "19:00"
	FreeTables     []TableResponse `json:"freeTables"`
	TotalFreeSeats int             `json:"totalFreeSeats"`
	PartySize      *int            `json:"partySize,omitempty"`
	Feasible       *bool           `json:"feasible,omitempty"`
	PlannedTables  []TableResponse `json:"plannedTables,omitempty"`
}

// ToUseCaseRequest собирает запрос use case из query параметров
func ToUseCaseRequest(dateStr, timeStr, partySizeStr string) (*checkAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, errInvalidDate
	}

	t, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return nil, errInvalidTime
	}

	req := &checkAvailability.Request{Date: date, Time: t}

	if partySizeStr != "" {
		partySize, err := strconv.Atoi(partySizeStr)
		if err != nil || partySize <= 0 {
			return nil, errInvalidPartySize
		}
		req.PartySize = &partySize
	}

	return req, nil
}

func fromDomainTables(tables []domain.Table) []TableResponse {
	resp := make([]TableResponse, 0, len(tables))
	for _, t := range tables {
		resp = append(resp, TableResponse{ID: t.ID, Seats: t.Seats})
	}
	return resp
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	result := &AvailabilityResponse{
		Date:           resp.Date.Format(domain.DateFormat),
		Time:           resp.Time.String(),
		FreeTables:     fromDomainTables(resp.FreeTables),
		TotalFreeSeats: resp.TotalFreeSeats,
		PartySize:      resp.PartySize,
		Feasible:       resp.Feasible,
	}
	if resp.Feasible != nil && *resp.Feasible {
		result.PlannedTables = fromDomainTables(resp.PlannedTables)
	}
	return result
}
