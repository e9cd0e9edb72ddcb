package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// IsValid reports whether the status is one of the known values
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Reservation represents a table booking made by a guest
type Reservation struct {
	ID             int64
	OwnerID        int64
	NumberOfPeople int
	Date           time.Time
	Time           types.TimeString
	Status         ReservationStatus
	Note           *string

	// Столы, закреплённые за бронированием при создании
	Tables []Table

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Slot returns the (date, time) window of the reservation
func (r *Reservation) Slot() Slot {
	return NewSlot(r.Date, r.Time)
}

// IsActive returns true if the reservation still holds its tables
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeEdited returns true if party size, slot and note may still be changed
func (r *Reservation) CanBeEdited() bool {
	return r.Status == StatusPending
}

// CanBeConfirmed returns true if the reservation is waiting for confirmation
func (r *Reservation) CanBeConfirmed() bool {
	return r.Status == StatusPending
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// TotalSeats returns the capacity of the assigned tables
func (r *Reservation) TotalSeats() int {
	return TotalSeats(r.Tables)
}

// Поля, по которым разрешена сортировка списка бронирований
const (
	SortByDate           = "date"
	SortByTime           = "time"
	SortByCreatedAt      = "created_at"
	SortByNumberOfPeople = "number_of_people"
	SortByStatus         = "status"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// ReservationSortFields whitelist of sortable fields
var ReservationSortFields = map[string]bool{
	SortByDate:           true,
	SortByTime:           true,
	SortByCreatedAt:      true,
	SortByNumberOfPeople: true,
	SortByStatus:         true,
}

// ReservationsFilter фильтр для получения списка бронирований
type ReservationsFilter struct {
	OwnerID   *int64             // Только бронирования владельца (опционально)
	Date      *time.Time         // Точная дата (опционально)
	Status    *ReservationStatus // Фильтр по статусу (опционально)
	SortBy    string             // Поле из ReservationSortFields, по умолчанию date
	SortOrder string             // asc | desc, по умолчанию asc
}
