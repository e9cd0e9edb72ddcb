package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Slot represents an exact (date, time) seating window.
// Two slots are equal only when both parts match exactly: 19:00 and 19:01 are unrelated slots.
type Slot struct {
	Date time.Time
	Time types.TimeString
}

// NewSlot normalizes the date to midnight UTC so that slots compare by calendar day
func NewSlot(date time.Time, t types.TimeString) Slot {
	return Slot{
		Date: time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		Time: t,
	}
}

// DateString returns the date part as YYYY-MM-DD
func (s Slot) DateString() string {
	return s.Date.Format(DateFormat)
}

// Key returns a stable identifier of the slot, e.g. "2024-05-01 19:00"
func (s Slot) Key() string {
	return s.DateString() + " " + s.Time.String()
}

// Equal reports whether both slots denote the same date and time
func (s Slot) Equal(other Slot) bool {
	return s.Key() == other.Key()
}
