package menu

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

const tableName = "menu_items"

var menuColumns = []string{
	"id",
	"name",
	"description",
	"price",
	"category",
	"image",
	"created_at",
	"updated_at",
}

// Repository репозиторий меню. Каталог не участвует в транзакциях бронирования,
// поэтому работает напрямую через sqlx.
type Repository struct {
	db *sqlx.DB
}

// NewRepository создает новый экземпляр репозитория меню
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// List возвращает позиции меню, отсортированные по категории и названию
func (r *Repository) List(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error) {
	selectBuilder := psqlbuilder.Select(menuColumns...).
		From(tableName).
		OrderBy("category ASC", "name ASC")

	if filter.Category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *filter.Category})
	}
	if filter.MaxPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"price": *filter.MaxPrice})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	var rows []menuItemRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: List - select: %w", ErrExecQuery, err)
	}

	items := make([]domain.MenuItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDomain())
	}
	return items, nil
}

// GetByID получает позицию меню по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.MenuItem, error) {
	query, args, err := psqlbuilder.Select(menuColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var row menuItemRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - get: %w", ErrExecQuery, err)
	}

	item := row.toDomain()
	return &item, nil
}

// Count возвращает количество позиций меню
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+tableName); err != nil {
		return 0, fmt.Errorf("%w: Count - get: %w", ErrExecQuery, err)
	}
	return count, nil
}

// Create добавляет позицию меню
func (r *Repository) Create(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	query, args, err := psqlbuilder.Insert(tableName).
		Columns("name", "description", "price", "category", "image").
		Values(item.Name, item.Description, item.Price, item.Category, item.Image).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var row menuItemRow
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return nil, fmt.Errorf("%w: Create - insert: %w", ErrExecQuery, err)
	}

	created := row.toDomain()
	return &created, nil
}

// Update перезаписывает позицию меню целиком
func (r *Repository) Update(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	query, args, err := psqlbuilder.Update(tableName).
		Set("name", item.Name).
		Set("description", item.Description).
		Set("price", item.Price).
		Set("category", item.Category).
		Set("image", item.Image).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": item.ID}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var row menuItemRow
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("%w: Update - update: %w", ErrExecQuery, err)
	}

	updated := row.toDomain()
	return &updated, nil
}

// Delete удаляет позицию меню
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - exec: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

func joinColumns() string {
	return strings.Join(menuColumns, ", ")
}
