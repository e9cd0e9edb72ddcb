package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Message формат события на проводе
type Message struct {
	Type           string    `json:"type"`
	ReservationID  int64     `json:"reservation_id"`
	OwnerID        int64     `json:"owner_id"`
	ActorID        int64     `json:"actor_id"`
	NumberOfPeople int       `json:"number_of_people"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	Status         string    `json:"status"`
	TableIDs       []int64   `json:"table_ids"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// NewMessage преобразует доменное событие в сообщение
func NewMessage(event domain.ReservationEvent) Message {
	tableIDs := event.TableIDs
	if tableIDs == nil {
		tableIDs = []int64{}
	}
	return Message{
		Type:           string(event.Type),
		ReservationID:  event.ReservationID,
		OwnerID:        event.OwnerID,
		ActorID:        event.ActorID,
		NumberOfPeople: event.NumberOfPeople,
		Date:           event.Slot.DateString(),
		Time:           event.Slot.Time.String(),
		Status:         string(event.Status),
		TableIDs:       tableIDs,
		OccurredAt:     event.OccurredAt.UTC(),
	}
}

func encode(event domain.ReservationEvent) ([]byte, error) {
	body, err := json.Marshal(NewMessage(event))
	if err != nil {
		return nil, fmt.Errorf("%w: marshal %s: %v", ErrPublish, event.Type, err)
	}
	return body, nil
}
