package tables

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// TableRequest запрос на создание или изменение стола
type TableRequest struct {
	Seats int `json:"seats"`
}

// TableResponse стол каталога
type TableResponse struct {
	ID        int64     `json:"id"`
	Seats     int       `json:"seats"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableListResponse каталог столов
type TableListResponse struct {
	Tables     []TableResponse `json:"tables"`
	TotalSeats int             `json:"totalSeats"`
}

func fromDomain(t *domain.Table) *TableResponse {
	return &TableResponse{
		ID:        t.ID,
		Seats:     t.Seats,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
