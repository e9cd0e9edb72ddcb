package tables

import (
	"context"

	tablesService "github.com/m04kA/SMC-ReservationService/internal/service/tables"
)

type TableService interface {
	List(ctx context.Context) (*tablesService.TableListResponse, error)
	Create(ctx context.Context, req *tablesService.TableRequest) (*tablesService.TableResponse, error)
	Update(ctx context.Context, id int64, req *tablesService.TableRequest) (*tablesService.TableResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
