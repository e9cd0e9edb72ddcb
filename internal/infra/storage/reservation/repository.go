package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

const (
	tableReservations      = "reservations"
	tableReservationTables = "reservation_tables"
)

var reservationColumns = []string{
	"id",
	"owner_id",
	"number_of_people",
	"reservation_date",
	"reservation_time",
	"status",
	"note",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// sortColumns соответствие полей сортировки колонкам таблицы
var sortColumns = map[string]string{
	domain.SortByDate:           "reservation_date",
	domain.SortByTime:           "reservation_time",
	domain.SortByCreatedAt:      "created_at",
	domain.SortByNumberOfPeople: "number_of_people",
	domain.SortByStatus:         "status",
}

// Repository репозиторий бронирований и их связей со столами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockSlot берёт эксклюзивную advisory-блокировку слота до конца текущей транзакции.
// Конкурирующие создания бронирований на тот же слот ждут её освобождения.
func (r *Repository) LockSlot(ctx context.Context, slot domain.Slot) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNotInTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", "slot:"+slot.Key()); err != nil {
		return fmt.Errorf("%w: LockSlot - slot %s: %w", ErrExecQuery, slot.Key(), err)
	}
	return nil
}

// GetBookedTableIDs возвращает столы, занятые активными бронированиями слота.
// Внутри транзакции строки бронирований блокируются (FOR UPDATE).
func (r *Repository) GetBookedTableIDs(ctx context.Context, slot domain.Slot) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("rt.table_id").
		From(tableReservationTables + " rt").
		Join(tableReservations + " r ON r.id = rt.reservation_id").
		Where(squirrel.Eq{
			"r.reservation_date": slot.DateString(),
			"r.reservation_time": slot.Time.String(),
			"r.status":           activeStatusStrings(),
		}).
		OrderBy("rt.table_id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF r")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedTableIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedTableIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	seen := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetBookedTableIDs - scan table_id: %w", ErrScanRow, err)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookedTableIDs - rows error: %w", ErrScanRow, err)
	}

	return ids, nil
}

// Create создает бронирование. Связи со столами создаются отдельно через CreateAssignments
// в той же транзакции.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableReservations).
		Columns(
			"owner_id",
			"number_of_people",
			"reservation_date",
			"reservation_time",
			"status",
			"note",
		).
		Values(
			reservation.OwnerID,
			reservation.NumberOfPeople,
			reservation.Date.Format(domain.DateFormat),
			reservation.Time,
			reservation.Status,
			reservation.Note,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// CreateAssignments связывает бронирование со столами одним запросом
func (r *Repository) CreateAssignments(ctx context.Context, reservationID int64, tableIDs []int64) error {
	if len(tableIDs) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert(tableReservationTables).
		Columns("reservation_id", "table_id")
	for _, tableID := range tableIDs {
		insertBuilder = insertBuilder.Values(reservationID, tableID)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateAssignments - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateAssignments - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID вместе со столами.
// Внутри транзакции строка бронирования блокируется до конца транзакции.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From(tableReservations).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	if err := r.attachTables(ctx, []*domain.Reservation{reservation}); err != nil {
		return nil, err
	}

	return reservation, nil
}

// List получает бронирования с фильтрацией и сортировкой
//
// Примеры использования:
//
// 1. Бронирования пользователя:
//    filter := domain.ReservationsFilter{OwnerID: &userID}
//
// 2. Все подтверждённые бронирования на дату, сначала самые большие компании:
//    filter := domain.ReservationsFilter{Date: &date, Status: &confirmed, SortBy: domain.SortByNumberOfPeople, SortOrder: domain.SortOrderDesc}
func (r *Repository) List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From(tableReservations)

	if filter.OwnerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"owner_id": *filter.OwnerID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"reservation_date": filter.Date.Format(domain.DateFormat)})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}

	orderBy, err := orderClause(filter.SortBy, filter.SortOrder)
	if err != nil {
		return nil, err
	}
	selectBuilder = selectBuilder.OrderBy(orderBy...)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	if err := r.attachTables(ctx, reservations); err != nil {
		return nil, err
	}

	return reservations, nil
}

// UpdateStatus переводит бронирование в статус to, только если текущий статус входит в from
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from []domain.ReservationStatus, to domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(tableReservations).
		Set("status", string(to)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": statusStrings(from)})

	if to == domain.StatusCancelled {
		updateBuilder = updateBuilder.Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args)
}

// UpdateDetails обновляет количество гостей, слот и заметку ожидающего бронирования.
// Связи со столами не пересчитываются.
func (r *Repository) UpdateDetails(ctx context.Context, reservation *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableReservations).
		Set("number_of_people", reservation.NumberOfPeople).
		Set("reservation_date", reservation.Date.Format(domain.DateFormat)).
		Set("reservation_time", reservation.Time).
		Set("note", reservation.Note).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": reservation.ID, "status": string(domain.StatusPending)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDetails - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateDetails", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// attachTables загружает столы для набора бронирований одним запросом
func (r *Repository) attachTables(ctx context.Context, reservations []*domain.Reservation) error {
	if len(reservations) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	byID := make(map[int64]*domain.Reservation, len(reservations))
	ids := make([]int64, 0, len(reservations))
	for _, reservation := range reservations {
		reservation.Tables = make([]domain.Table, 0)
		byID[reservation.ID] = reservation
		ids = append(ids, reservation.ID)
	}

	query, args, err := psqlbuilder.Select(
		"rt.reservation_id",
		"t.id",
		"t.seats",
		"t.created_at",
		"t.updated_at",
	).
		From(tableReservationTables + " rt").
		Join("restaurant_tables t ON t.id = rt.table_id").
		Where(squirrel.Eq{"rt.reservation_id": ids}).
		OrderBy("rt.reservation_id ASC", "t.seats DESC", "t.id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: attachTables - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachTables - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			reservationID int64
			table         domain.Table
		)
		if err := rows.Scan(&reservationID, &table.ID, &table.Seats, &table.CreatedAt, &table.UpdatedAt); err != nil {
			return fmt.Errorf("%w: attachTables - scan row: %w", ErrScanRow, err)
		}
		if reservation, ok := byID[reservationID]; ok {
			reservation.Tables = append(reservation.Tables, table)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachTables - rows error: %w", ErrScanRow, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		reservation          domain.Reservation
		status               string
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&reservation.ID,
		&reservation.OwnerID,
		&reservation.NumberOfPeople,
		&reservation.Date,
		&reservation.Time,
		&status,
		&reservation.Note,
		&reservation.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.Status = domain.ReservationStatus(status)
	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

func orderClause(sortBy, sortOrder string) ([]string, error) {
	if sortBy == "" {
		sortBy = domain.SortByDate
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSort, sortBy)
	}

	direction := "ASC"
	switch sortOrder {
	case "", domain.SortOrderAsc:
	case domain.SortOrderDesc:
		direction = "DESC"
	default:
		return nil, fmt.Errorf("%w: order %q", ErrInvalidSort, sortOrder)
	}

	order := []string{column + " " + direction}
	if sortBy == domain.SortByDate {
		order = append(order, "reservation_time "+direction)
	}
	return append(order, "id ASC"), nil
}

func activeStatusStrings() []string {
	return statusStrings(domain.ActiveStatuses)
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
