package events

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// NoopPublisher отбрасывает события
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, domain.ReservationEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
