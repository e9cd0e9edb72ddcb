package domain

import "time"

// MenuItem represents a dish or a drink from the restaurant menu
type MenuItem struct {
	ID          int64
	Name        string
	Description *string
	Price       float64
	Category    string
	Image       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MenuFilter фильтр меню
type MenuFilter struct {
	Category *string  // Точное совпадение категории (опционально)
	MaxPrice *float64 // Цена не выше (опционально)
}
