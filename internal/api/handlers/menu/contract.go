package menu

import (
	"context"

	menuService "github.com/m04kA/SMC-ReservationService/internal/service/menu"
)

type MenuService interface {
	List(ctx context.Context, req *menuService.ListRequest) (*menuService.MenuResponse, error)
	Create(ctx context.Context, req *menuService.CreateMenuItemRequest) (*menuService.MenuItemResponse, error)
	Update(ctx context.Context, id int64, req *menuService.UpdateMenuItemRequest) (*menuService.MenuItemResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
