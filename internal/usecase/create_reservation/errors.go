package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrNoCapacity возвращается, когда свободные столы слота не позволяют рассадить гостей
	ErrNoCapacity = errors.New("create_reservation: not enough free tables for this slot")

	// ErrSlotConflict возвращается, когда слот одновременно бронирует другой запрос. Запрос можно повторить
	ErrSlotConflict = errors.New("create_reservation: concurrent reservation for the same slot")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
