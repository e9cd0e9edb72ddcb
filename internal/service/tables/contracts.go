package tables

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	List(ctx context.Context) ([]domain.Table, error)
	Create(ctx context.Context, t *domain.Table) (*domain.Table, error)
	UpdateSeats(ctx context.Context, id int64, seats int) (*domain.Table, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
