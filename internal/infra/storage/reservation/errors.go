package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrStatusConflict возвращается, когда текущий статус бронирования не допускает изменение
	ErrStatusConflict = errors.New("reservation.repository: status does not allow this change")

	// ErrNotInTransaction возвращается, когда операция требует открытой транзакции
	ErrNotInTransaction = errors.New("reservation.repository: operation requires a transaction")

	// ErrInvalidSort возвращается при сортировке по неподдерживаемому полю
	ErrInvalidSort = errors.New("reservation.repository: unsupported sort field")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
