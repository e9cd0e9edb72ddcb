package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidDate возвращается, когда дата не в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrInvalidSort возвращается при сортировке по неподдерживаемому полю
	ErrInvalidSort = errors.New("invalid sort field or order")

	// ErrInvalidField возвращается при некорректном значении поля
	ErrInvalidField = errors.New("invalid field value")
)

// Request модели

// ListMineRequest запрос на получение своих бронирований
type ListMineRequest struct {
	Status *string `json:"status,omitempty"`
}

// ListAllRequest запрос администратора на получение всех бронирований
type ListAllRequest struct {
	Date      *string `json:"date,omitempty"`      // "2024-05-01" (опционально)
	Status    *string `json:"status,omitempty"`    // Фильтр по статусу (опционально)
	SortBy    string  `json:"sortBy,omitempty"`    // date | time | created_at | number_of_people | status
	SortOrder string  `json:"sortOrder,omitempty"` // asc | desc
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAllRequest) ToDomainFilter() (domain.ReservationsFilter, error) {
	filter := domain.ReservationsFilter{
		SortBy:    strings.ToLower(strings.TrimSpace(r.SortBy)),
		SortOrder: strings.ToLower(strings.TrimSpace(r.SortOrder)),
	}

	if filter.SortBy != "" && !domain.ReservationSortFields[filter.SortBy] {
		return filter, fmt.Errorf("%w: %q", ErrInvalidSort, r.SortBy)
	}
	if filter.SortOrder != "" && filter.SortOrder != domain.SortOrderAsc && filter.SortOrder != domain.SortOrderDesc {
		return filter, fmt.Errorf("%w: %q", ErrInvalidSort, r.SortOrder)
	}

	if r.Date != nil {
		date, err := ParseDate(*r.Date)
		if err != nil {
			return filter, err
		}
		filter.Date = &date
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateReservationRequest запрос на изменение бронирования. Незаполненные поля не меняются
type UpdateReservationRequest struct {
	NumberOfPeople *int    `json:"numberOfPeople,omitempty"`
	Date           *string `json:"date,omitempty"` // "2024-05-01"
	Time           *string `json:"time,omitempty"` // "19:00"
	Note           *string `json:"note,omitempty"`
}

// IsEmpty возвращает true, если не передано ни одного поля
func (r *UpdateReservationRequest) IsEmpty() bool {
	return r.NumberOfPeople == nil && r.Date == nil && r.Time == nil && r.Note == nil
}

// ApplyTo валидирует поля запроса и переносит их в бронирование
func (r *UpdateReservationRequest) ApplyTo(reservation *domain.Reservation) error {
	if r.NumberOfPeople != nil {
		if *r.NumberOfPeople <= 0 {
			return fmt.Errorf("%w: numberOfPeople must be positive", ErrInvalidField)
		}
		reservation.NumberOfPeople = *r.NumberOfPeople
	}

	if r.Date != nil {
		date, err := ParseDate(*r.Date)
		if err != nil {
			return err
		}
		reservation.Date = date
	}

	if r.Time != nil {
		t, err := types.NewTimeStringFromString(*r.Time)
		if err != nil {
			return fmt.Errorf("%w: time: %v", ErrInvalidField, err)
		}
		reservation.Time = t
	}

	if r.Note != nil {
		if utf8.RuneCountInString(*r.Note) > domain.MaxNoteLength {
			return fmt.Errorf("%w: note must not exceed %d characters", ErrInvalidField, domain.MaxNoteLength)
		}
		note := *r.Note
		reservation.Note = &note
	}

	return nil
}

// Response модели

// TableResponse стол, закреплённый за бронированием
type TableResponse struct {
	ID    int64 `json:"id"`
	Seats int   `json:"seats"`
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID             int64           `json:"id"`
	OwnerID        int64           `json:"ownerId"`
	NumberOfPeople int             `json:"numberOfPeople"`
	Date           string          `json:"date"` // "2024-05-01"
	Time           string          `json:"time"` // "19:00"
	Status         string          `json:"status"`
	Note           *string         `json:"note,omitempty"`
	Tables         []TableResponse `json:"tables"`
	TotalSeats     int             `json:"totalSeats"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainTables конвертирует столы в DTO
func FromDomainTables(tables []domain.Table) []TableResponse {
	resp := make([]TableResponse, 0, len(tables))
	for _, t := range tables {
		resp = append(resp, TableResponse{ID: t.ID, Seats: t.Seats})
	}
	return resp
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:             r.ID,
		OwnerID:        r.OwnerID,
		NumberOfPeople: r.NumberOfPeople,
		Date:           r.Date.Format(domain.DateFormat),
		Time:           r.Time.String(),
		Status:         string(r.Status),
		Note:           r.Note,
		Tables:         FromDomainTables(r.Tables),
		TotalSeats:     r.TotalSeats(),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(strings.ToLower(strings.TrimSpace(status)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s, nil
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(raw string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return date, nil
}
