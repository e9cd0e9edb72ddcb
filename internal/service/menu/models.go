package menu

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// filterAll значение фильтра в ответе, когда фильтр не задан
const filterAll = "all"

// ListRequest фильтры меню
type ListRequest struct {
	Category *string
	MaxPrice *float64
}

// CreateMenuItemRequest запрос на создание позиции меню
type CreateMenuItemRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       *string `json:"image,omitempty"`
}

// UpdateMenuItemRequest запрос на изменение позиции меню. Незаполненные поля не меняются
type UpdateMenuItemRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Image       *string  `json:"image,omitempty"`
}

// MenuItemResponse позиция меню
type MenuItemResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Image       *string   `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FiltersResponse применённые фильтры: значение или "all"
type FiltersResponse struct {
	Category interface{} `json:"category"`
	MaxPrice interface{} `json:"max_price"`
}

// MenuResponse меню, сгруппированное по категориям
type MenuResponse struct {
	Filters    FiltersResponse               `json:"filters"`
	Categories []string                      `json:"categories"`
	Menu       map[string][]MenuItemResponse `json:"menu"`
}

func fromDomain(item *domain.MenuItem) *MenuItemResponse {
	return &MenuItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.Category,
		Image:       item.Image,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
