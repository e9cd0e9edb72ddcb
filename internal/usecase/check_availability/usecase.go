package check_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// UseCase use case проверки доступности слота. Только чтение, без блокировок.
type UseCase struct {
	resolver AvailabilityResolver
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(resolver AvailabilityResolver, logger Logger) *UseCase {
	return &UseCase{
		resolver: resolver,
		logger:   logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	slot := domain.NewSlot(req.Date, req.Time)

	free, err := uc.resolver.AvailableTables(ctx, slot)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to resolve slot %s: %v", slot.Key(), err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:           slot.Date,
		Time:           slot.Time,
		FreeTables:     free,
		TotalFreeSeats: domain.TotalSeats(free),
	}

	if req.PartySize != nil {
		planned, ok := domain.PlanTables(free, *req.PartySize)
		resp.PartySize = ptr.Ptr(*req.PartySize)
		resp.Feasible = ptr.Ptr(ok)
		if ok {
			resp.PlannedTables = planned
		}
	}

	uc.logger.Info("CheckAvailability: slot %s, %d free tables, %d seats", slot.Key(), len(free), resp.TotalFreeSeats)

	return resp, nil
}
