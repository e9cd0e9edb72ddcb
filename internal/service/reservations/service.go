package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// Service управляет жизненным циклом бронирований: просмотр, изменение, отмена и подтверждение
type Service struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		publisher:       publisher,
		timeProvider:    realTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Владелец видит только свои бронирования, администратор любые
func (s *Service) GetByID(ctx context.Context, id int64, caller domain.Caller) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, caller.UserID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.repositoryError("GetByID", id, err)
	}

	if !caller.CanManage(reservation.OwnerID) {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", caller.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(reservation), nil
}

// ListMine возвращает бронирования вызывающего пользователя
func (s *Service) ListMine(ctx context.Context, caller domain.Caller, req *models.ListMineRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListMine: fetching reservations for user=%d, status=%v", caller.UserID, req.Status)

	filter := domain.ReservationsFilter{OwnerID: &caller.UserID}
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListMine: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Status = &status
	}

	reservations, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListMine: repository error for user=%d: %v", caller.UserID, err)
		return nil, fmt.Errorf("%w: ListMine - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListMine: fetched %d reservations for user=%d", len(reservations), caller.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// ListAll возвращает бронирования всех пользователей. Только для администратора
//
// Примеры использования:
// - Все бронирования на дату: ListAll(ctx, admin, &ListAllRequest{Date: ptr.Ptr("2024-05-01")})
// - Ожидающие подтверждения, сначала новые: Status = "pending", SortBy = "created_at", SortOrder = "desc"
func (s *Service) ListAll(ctx context.Context, caller domain.Caller, req *models.ListAllRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListAll: user=%d, date=%v, status=%v, sort=%s %s",
		caller.UserID, req.Date, req.Status, req.SortBy, req.SortOrder)

	if !caller.IsPrivileged() {
		s.logger.Warn("ListAll: access denied for user=%d", caller.UserID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListAll: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	reservations, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrInvalidSort) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAll: fetched %d reservations", len(reservations))
	return models.FromDomainReservationList(reservations), nil
}

// Update изменяет количество гостей, слот и заметку ожидающего бронирования.
// Назначенные столы не пересчитываются: новые значения не проверяются на вместимость и занятость.
func (s *Service) Update(ctx context.Context, id int64, caller domain.Caller, req *models.UpdateReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Update: updating reservation id=%d by user=%d", id, caller.UserID)

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	var result *domain.Reservation

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			return s.repositoryError("Update", id, err)
		}

		if !caller.CanManage(reservation.OwnerID) {
			s.logger.Warn("Update: access denied for user=%d to reservation id=%d", caller.UserID, id)
			return ErrAccessDenied
		}

		if !reservation.CanBeEdited() {
			s.logger.Warn("Update: reservation id=%d is not editable, status=%s", id, reservation.Status)
			return ErrNotEditable
		}

		if err := req.ApplyTo(reservation); err != nil {
			s.logger.Warn("Update: invalid fields for reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if err := s.reservationRepo.UpdateDetails(txCtx, reservation); err != nil {
			if errors.Is(err, reservationRepo.ErrStatusConflict) {
				return ErrNotEditable
			}
			s.logger.Error("Update: repository error for reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}

		result, err = s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			return s.repositoryError("Update", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, s.wrapTxError(err)
	}

	s.logger.Info("Update: reservation id=%d updated", id)
	s.publish(ctx, domain.EventReservationUpdated, result, caller)
	return models.FromDomainReservation(result), nil
}

// Cancel отменяет бронирование. Отменить может владелец или администратор,
// из статусов pending и confirmed. Связи со столами сохраняются.
func (s *Service) Cancel(ctx context.Context, id int64, caller domain.Caller) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", id, caller.UserID)

	result, err := s.transition(ctx, "Cancel", id, domain.CancellableStatuses, domain.StatusCancelled, func(r *domain.Reservation) error {
		if !caller.CanManage(r.OwnerID) {
			s.logger.Warn("Cancel: access denied for user=%d to reservation id=%d", caller.UserID, id)
			return ErrAccessDenied
		}
		if !r.CanBeCancelled() {
			s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", id, r.Status)
			return ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: reservation id=%d cancelled", id)
	s.publish(ctx, domain.EventReservationCancelled, result, caller)
	return models.FromDomainReservation(result), nil
}

// Confirm подтверждает ожидающее бронирование. Только для администратора.
// Вместимость и занятость столов повторно не проверяются.
func (s *Service) Confirm(ctx context.Context, id int64, caller domain.Caller) (*models.ReservationResponse, error) {
	s.logger.Info("Confirm: confirming reservation id=%d by user=%d", id, caller.UserID)

	if !caller.IsPrivileged() {
		s.logger.Warn("Confirm: access denied for user=%d", caller.UserID)
		return nil, ErrAccessDenied
	}

	pending := []domain.ReservationStatus{domain.StatusPending}
	result, err := s.transition(ctx, "Confirm", id, pending, domain.StatusConfirmed, func(r *domain.Reservation) error {
		if !r.CanBeConfirmed() {
			s.logger.Warn("Confirm: reservation id=%d cannot be confirmed, status=%s", id, r.Status)
			return ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Confirm: reservation id=%d confirmed", id)
	s.publish(ctx, domain.EventReservationConfirmed, result, caller)
	return models.FromDomainReservation(result), nil
}

// transition блокирует бронирование, проверяет check и переводит статус условным UPDATE
func (s *Service) transition(
	ctx context.Context,
	op string,
	id int64,
	from []domain.ReservationStatus,
	to domain.ReservationStatus,
	check func(r *domain.Reservation) error,
) (*domain.Reservation, error) {
	var result *domain.Reservation

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			return s.repositoryError(op, id, err)
		}

		if err := check(reservation); err != nil {
			return err
		}

		if err := s.reservationRepo.UpdateStatus(txCtx, id, from, to); err != nil {
			if errors.Is(err, reservationRepo.ErrStatusConflict) {
				return ErrInvalidTransition
			}
			s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
			return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
		}

		result, err = s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			return s.repositoryError(op, id, err)
		}
		return nil
	})
	if err != nil {
		return nil, s.wrapTxError(err)
	}

	return result, nil
}

func (s *Service) repositoryError(op string, id int64, err error) error {
	if errors.Is(err, reservationRepo.ErrReservationNotFound) {
		s.logger.Warn("%s: reservation id=%d not found", op, id)
		return ErrReservationNotFound
	}
	s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
}

// wrapTxError пропускает ошибки сервиса как есть, остальные (begin/commit) считает внутренними
func (s *Service) wrapTxError(err error) error {
	for _, known := range []error{ErrReservationNotFound, ErrAccessDenied, ErrNotEditable, ErrInvalidTransition, ErrInvalidInput, ErrInternal} {
		if errors.Is(err, known) {
			return err
		}
	}
	s.logger.Error("transaction failed: %v", err)
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

func (s *Service) publish(ctx context.Context, eventType domain.ReservationEventType, r *domain.Reservation, caller domain.Caller) {
	event := domain.NewReservationEvent(eventType, r, caller.UserID, s.timeProvider.Now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish %s for reservation id=%d: %v", eventType, r.ID, err)
	}
}
