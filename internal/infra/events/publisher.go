package events

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const (
	DriverNone     = "none"
	DriverRabbitMQ = "rabbitmq"
	DriverKafka    = "kafka"
)

// Publisher отправляет события жизненного цикла бронирования
type Publisher interface {
	Publish(ctx context.Context, event domain.ReservationEvent) error
	Close() error
}

// Options параметры подключения к брокеру
type Options struct {
	Driver         string
	RabbitURL      string
	RabbitExchange string
	KafkaBrokers   []string
	KafkaTopic     string
}

// New создает издателя по имени драйвера
func New(opts Options) (Publisher, error) {
	switch opts.Driver {
	case "", DriverNone:
		return NoopPublisher{}, nil
	case DriverRabbitMQ:
		return NewRabbitPublisher(opts.RabbitURL, opts.RabbitExchange)
	case DriverKafka:
		return NewKafkaPublisher(opts.KafkaBrokers, opts.KafkaTopic), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}
