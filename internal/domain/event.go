package domain

import "time"

// ReservationEventType тип события жизненного цикла бронирования
type ReservationEventType string

const (
	EventReservationCreated   ReservationEventType = "reservation.created"
	EventReservationUpdated   ReservationEventType = "reservation.updated"
	EventReservationConfirmed ReservationEventType = "reservation.confirmed"
	EventReservationCancelled ReservationEventType = "reservation.cancelled"
)

// ReservationEvent событие, публикуемое после фиксации изменения бронирования
type ReservationEvent struct {
	Type           ReservationEventType
	ReservationID  int64
	OwnerID        int64
	ActorID        int64
	NumberOfPeople int
	Slot           Slot
	Status         ReservationStatus
	TableIDs       []int64
	OccurredAt     time.Time
}

// NewReservationEvent builds an event snapshot of the reservation
func NewReservationEvent(eventType ReservationEventType, r *Reservation, actorID int64, at time.Time) ReservationEvent {
	return ReservationEvent{
		Type:           eventType,
		ReservationID:  r.ID,
		OwnerID:        r.OwnerID,
		ActorID:        actorID,
		NumberOfPeople: r.NumberOfPeople,
		Slot:           r.Slot(),
		Status:         r.Status,
		TableIDs:       TableIDs(r.Tables),
		OccurredAt:     at,
	}
}
