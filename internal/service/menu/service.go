package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	menuRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/menu"
)

// Service каталог меню ресторана
type Service struct {
	menuRepo MenuRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса меню
func NewService(menuRepo MenuRepository, logger Logger) *Service {
	return &Service{
		menuRepo: menuRepo,
		logger:   logger,
	}
}

// List возвращает меню, сгруппированное по категориям.
// Категории идут в алфавитном порядке, внутри категории позиции отсортированы по названию.
func (s *Service) List(ctx context.Context, req *ListRequest) (*MenuResponse, error) {
	if req.MaxPrice != nil && *req.MaxPrice < 0 {
		return nil, fmt.Errorf("%w: max_price must not be negative", ErrInvalidInput)
	}

	items, err := s.menuRepo.List(ctx, domain.MenuFilter{Category: req.Category, MaxPrice: req.MaxPrice})
	if err != nil {
		s.logger.Error("GetMenu: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &MenuResponse{
		Filters:    FiltersResponse{Category: filterAll, MaxPrice: filterAll},
		Categories: make([]string, 0),
		Menu:       make(map[string][]MenuItemResponse),
	}
	if req.Category != nil {
		resp.Filters.Category = *req.Category
	}
	if req.MaxPrice != nil {
		resp.Filters.MaxPrice = *req.MaxPrice
	}

	for i := range items {
		category := items[i].Category
		if _, ok := resp.Menu[category]; !ok {
			resp.Categories = append(resp.Categories, category)
		}
		resp.Menu[category] = append(resp.Menu[category], *fromDomain(&items[i]))
	}

	return resp, nil
}

// Create добавляет позицию меню
func (s *Service) Create(ctx context.Context, req *CreateMenuItemRequest) (*MenuItemResponse, error) {
	item := &domain.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
	}
	if err := validateItem(item); err != nil {
		s.logger.Warn("CreateMenuItem: %v", err)
		return nil, err
	}

	created, err := s.menuRepo.Create(ctx, item)
	if err != nil {
		s.logger.Error("CreateMenuItem: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateMenuItem: created item id=%d in %s", created.ID, created.Category)
	return fromDomain(created), nil
}

// Update изменяет переданные поля позиции меню
func (s *Service) Update(ctx context.Context, id int64, req *UpdateMenuItemRequest) (*MenuItemResponse, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.repositoryError("UpdateMenuItem", id, err)
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Image != nil {
		item.Image = req.Image
	}

	if err := validateItem(item); err != nil {
		s.logger.Warn("UpdateMenuItem: %v", err)
		return nil, err
	}

	updated, err := s.menuRepo.Update(ctx, item)
	if err != nil {
		return nil, s.repositoryError("UpdateMenuItem", id, err)
	}

	s.logger.Info("UpdateMenuItem: item id=%d updated", id)
	return fromDomain(updated), nil
}

// Delete удаляет позицию меню
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.menuRepo.Delete(ctx, id); err != nil {
		return s.repositoryError("DeleteMenuItem", id, err)
	}

	s.logger.Info("DeleteMenuItem: item id=%d deleted", id)
	return nil
}

func (s *Service) repositoryError(op string, id int64, err error) error {
	if errors.Is(err, menuRepo.ErrMenuItemNotFound) {
		s.logger.Warn("%s: item id=%d not found", op, id)
		return ErrMenuItemNotFound
	}
	s.logger.Error("%s: repository error for item id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
