package events

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// timeoutPublisher ограничивает время публикации и не зависит от отмены запроса,
// чтобы событие уже зафиксированной операции не терялось при обрыве клиента
type timeoutPublisher struct {
	next    Publisher
	timeout time.Duration
}

// WithTimeout оборачивает издателя таймаутом на каждую публикацию. timeout <= 0 оставляет издателя как есть
func WithTimeout(next Publisher, timeout time.Duration) Publisher {
	if timeout <= 0 {
		return next
	}
	return &timeoutPublisher{next: next, timeout: timeout}
}

func (p *timeoutPublisher) Publish(ctx context.Context, event domain.ReservationEvent) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()
	return p.next.Publish(ctx, event)
}

func (p *timeoutPublisher) Close() error {
	return p.next.Close()
}
