package check_availability

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// TableRepository интерфейс каталога столов
type TableRepository interface {
	List(ctx context.Context) ([]domain.Table, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// GetBookedTableIDs возвращает столы, занятые активными бронированиями слота
	GetBookedTableIDs(ctx context.Context, slot domain.Slot) ([]int64, error)
}

// AvailabilityResolver вычисляет свободные столы слота
type AvailabilityResolver interface {
	AvailableTables(ctx context.Context, slot domain.Slot) ([]domain.Table, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
