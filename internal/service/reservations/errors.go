package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservations: reservation not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец бронирования и не администратор
	ErrAccessDenied = errors.New("reservations: access denied")

	// ErrNotEditable возвращается при попытке изменить бронирование не в статусе pending
	ErrNotEditable = errors.New("reservations: reservation is not editable")

	// ErrInvalidTransition возвращается, когда текущий статус не допускает подтверждение или отмену
	ErrInvalidTransition = errors.New("reservations: status transition is not allowed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reservations: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations: internal error")
)
