package events

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// messageWriter часть kafka.Writer, которой пользуется издатель
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher публикует события в один топик, ключ сообщения равен ID бронирования
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher создает издателя. Соединение устанавливается лениво при первой записи
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

func newKafkaPublisherWithWriter(w messageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

// Publish отправляет событие. Ключ по ID бронирования сохраняет порядок событий одного бронирования
func (p *KafkaPublisher) Publish(ctx context.Context, event domain.ReservationEvent) error {
	body, err := encode(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.ReservationID, 10)),
		Value: body,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: kafka %s: %v", ErrPublish, event.Type, err)
	}
	return nil
}

// Close сбрасывает буфер и закрывает writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
