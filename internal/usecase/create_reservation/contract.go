package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	LockSlot(ctx context.Context, slot domain.Slot) error
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	CreateAssignments(ctx context.Context, reservationID int64, tableIDs []int64) error
}

// AvailabilityResolver вычисляет свободные столы слота
type AvailabilityResolver interface {
	AvailableTables(ctx context.Context, slot domain.Slot) ([]domain.Table, error)
}

// SlotLocker внешняя блокировка слота на время проверки доступности и фиксации
type SlotLocker interface {
	Acquire(ctx context.Context, slot domain.Slot) (release func(), err error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс издателя событий бронирования
type EventPublisher interface {
	Publish(ctx context.Context, event domain.ReservationEvent) error
}

// MetricsRecorder интерфейс метрик исходов бронирования
type MetricsRecorder interface {
	IncReservationOutcome(outcome string)
	ObserveTablesAssigned(count int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
