package check_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Resolver вычисляет свободные столы слота: весь каталог минус столы активных бронирований
// с точно таким же (date, time). Соседние по времени слоты не учитываются.
type Resolver struct {
	tableRepo       TableRepository
	reservationRepo ReservationRepository
}

// NewResolver создает новый экземпляр резолвера
func NewResolver(tableRepo TableRepository, reservationRepo ReservationRepository) *Resolver {
	return &Resolver{
		tableRepo:       tableRepo,
		reservationRepo: reservationRepo,
	}
}

// AvailableTables возвращает свободные столы слота в порядке каталога.
// При вызове внутри транзакции чтение выполняется в её рамках.
func (r *Resolver) AvailableTables(ctx context.Context, slot domain.Slot) ([]domain.Table, error) {
	booked, err := r.reservationRepo.GetBookedTableIDs(ctx, slot)
	if err != nil {
		return nil, fmt.Errorf("resolver: booked tables for %s: %w", slot.Key(), err)
	}

	catalog, err := r.tableRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolver: table catalog: %w", err)
	}

	return domain.FreeTables(catalog, booked), nil
}
