package tables

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	tableRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/table"
)

// Service администрирование каталога столов
type Service struct {
	tableRepo TableRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса столов
func NewService(tableRepo TableRepository, logger Logger) *Service {
	return &Service{
		tableRepo: tableRepo,
		logger:    logger,
	}
}

// List возвращает весь каталог
func (s *Service) List(ctx context.Context) (*TableListResponse, error) {
	tables, err := s.tableRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListTables: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &TableListResponse{
		Tables:     make([]TableResponse, 0, len(tables)),
		TotalSeats: domain.TotalSeats(tables),
	}
	for i := range tables {
		resp.Tables = append(resp.Tables, *fromDomain(&tables[i]))
	}
	return resp, nil
}

// Create добавляет стол в каталог
func (s *Service) Create(ctx context.Context, req *TableRequest) (*TableResponse, error) {
	if err := validateSeats(req.Seats); err != nil {
		s.logger.Warn("CreateTable: %v", err)
		return nil, err
	}

	created, err := s.tableRepo.Create(ctx, &domain.Table{Seats: req.Seats})
	if err != nil {
		s.logger.Error("CreateTable: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateTable: created table id=%d with %d seats", created.ID, created.Seats)
	return fromDomain(created), nil
}

// Update меняет вместимость стола. Уже сделанные бронирования не пересчитываются
func (s *Service) Update(ctx context.Context, id int64, req *TableRequest) (*TableResponse, error) {
	if err := validateSeats(req.Seats); err != nil {
		s.logger.Warn("UpdateTable: %v", err)
		return nil, err
	}

	updated, err := s.tableRepo.UpdateSeats(ctx, id, req.Seats)
	if err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			s.logger.Warn("UpdateTable: table id=%d not found", id)
			return nil, ErrTableNotFound
		}
		s.logger.Error("UpdateTable: repository error for table id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateTable: table id=%d now has %d seats", id, updated.Seats)
	return fromDomain(updated), nil
}

// Delete удаляет стол без истории бронирований
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.tableRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, tableRepo.ErrTableNotFound):
			s.logger.Warn("DeleteTable: table id=%d not found", id)
			return ErrTableNotFound
		case errors.Is(err, tableRepo.ErrTableInUse):
			s.logger.Warn("DeleteTable: table id=%d has reservations", id)
			return ErrTableInUse
		default:
			s.logger.Error("DeleteTable: repository error for table id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("DeleteTable: table id=%d deleted", id)
	return nil
}

func validateSeats(seats int) error {
	if seats <= 0 || seats > domain.MaxTableSeats {
		return fmt.Errorf("%w: seats must be between 1 and %d", ErrInvalidInput, domain.MaxTableSeats)
	}
	return nil
}
