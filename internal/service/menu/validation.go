package menu

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

func validateItem(item *domain.MenuItem) error {
	name := strings.TrimSpace(item.Name)
	if name == "" || utf8.RuneCountInString(name) > domain.MaxMenuItemName {
		return fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxMenuItemName)
	}

	category := strings.TrimSpace(item.Category)
	if category == "" || utf8.RuneCountInString(category) > domain.MaxMenuCategoryLen {
		return fmt.Errorf("%w: category must be 1..%d characters", ErrInvalidInput, domain.MaxMenuCategoryLen)
	}

	if item.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	item.Name = name
	item.Category = category
	return nil
}
