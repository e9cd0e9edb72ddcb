package menu

import (
	"database/sql"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// menuItemRow строка таблицы menu_items
type menuItemRow struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Price       float64        `db:"price"`
	Category    string         `db:"category"`
	Image       sql.NullString `db:"image"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r menuItemRow) toDomain() domain.MenuItem {
	return domain.MenuItem{
		ID:          r.ID,
		Name:        r.Name,
		Description: nullStringPtr(r.Description),
		Price:       r.Price,
		Category:    r.Category,
		Image:       nullStringPtr(r.Image),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
