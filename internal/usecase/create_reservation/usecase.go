package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/slotlock"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

// UseCase use case создания бронирования: проверка доступности, подбор столов
// и запись бронирования со связями выполняются атомарно и последовательно для одного слота
type UseCase struct {
	reservationRepo ReservationRepository
	resolver        AvailabilityResolver
	slotLocker      SlotLocker
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	resolver AvailabilityResolver,
	slotLocker SlotLocker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		resolver:        resolver,
		slotLocker:      slotLocker,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: owner=%d, people=%d, date=%s, time=%s",
		req.OwnerID, req.NumberOfPeople, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	slot := domain.NewSlot(req.Date, req.Time)

	// 2. Внешняя блокировка слота (Redis), если включена
	release, err := uc.slotLocker.Acquire(ctx, slot)
	if err != nil {
		if errors.Is(err, slotlock.ErrLockNotAcquired) {
			uc.logger.Warn("CreateReservation: slot %s is busy: %v", slot.Key(), err)
			uc.metrics.IncReservationOutcome(metrics.OutcomeConflict)
			return nil, fmt.Errorf("%w: %v", ErrSlotConflict, err)
		}
		// без внешней блокировки слот всё равно сериализует advisory-блокировка в транзакции
		uc.logger.Warn("CreateReservation: slot lock unavailable, relying on database lock: %v", err)
		release = func() {}
	}
	defer release()

	var result *domain.Reservation

	// 3. Чтение доступности, подбор столов и запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Эксклюзивная блокировка слота до конца транзакции
		if err := uc.reservationRepo.LockSlot(txCtx, slot); err != nil {
			uc.logger.Error("CreateReservation: failed to lock slot %s: %v", slot.Key(), err)
			return fmt.Errorf("%w: failed to lock slot: %w", ErrInternal, err)
		}

		// 3.2. Свободные столы слота
		free, err := uc.resolver.AvailableTables(txCtx, slot)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to resolve availability: %v", err)
			return fmt.Errorf("%w: failed to resolve availability: %w", ErrInternal, err)
		}

		// 3.3. Подбор столов
		planned, ok := domain.PlanTables(free, req.NumberOfPeople)
		if !ok {
			uc.logger.Warn("CreateReservation: no feasible tables for %d people at %s (%d free tables, %d seats)",
				req.NumberOfPeople, slot.Key(), len(free), domain.TotalSeats(free))
			return ErrNoCapacity
		}

		// 3.4. Бронирование
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			OwnerID:        req.OwnerID,
			NumberOfPeople: req.NumberOfPeople,
			Date:           slot.Date,
			Time:           slot.Time,
			Status:         domain.StatusPending,
			Note:           req.Note,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		// 3.5. Связи со столами
		if err := uc.reservationRepo.CreateAssignments(txCtx, created.ID, domain.TableIDs(planned)); err != nil {
			uc.logger.Error("CreateReservation: failed to assign tables to reservation id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: failed to assign tables: %w", ErrInternal, err)
		}

		created.Tables = planned
		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrNoCapacity):
			uc.metrics.IncReservationOutcome(metrics.OutcomeNoCapacity)
			return nil, err
		case errors.Is(err, txmanager.ErrSerializationFailure):
			uc.logger.Warn("CreateReservation: serialization conflict on slot %s: %v", slot.Key(), err)
			uc.metrics.IncReservationOutcome(metrics.OutcomeConflict)
			return nil, fmt.Errorf("%w: %v", ErrSlotConflict, err)
		case errors.Is(err, ErrInternal):
			uc.metrics.IncReservationOutcome(metrics.OutcomeFailed)
			return nil, err
		default:
			uc.logger.Error("CreateReservation: transaction failed: %v", err)
			uc.metrics.IncReservationOutcome(metrics.OutcomeFailed)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	uc.metrics.IncReservationOutcome(metrics.OutcomeCreated)
	uc.metrics.ObserveTablesAssigned(len(result.Tables))

	uc.logger.Info("CreateReservation: created reservation id=%d with tables %v", result.ID, domain.TableIDs(result.Tables))

	// 4. Событие публикуется после фиксации, ошибка не влияет на результат
	event := domain.NewReservationEvent(domain.EventReservationCreated, result, req.OwnerID, uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateReservation: failed to publish event for reservation id=%d: %v", result.ID, err)
	}

	return &Response{Reservation: result}, nil
}
