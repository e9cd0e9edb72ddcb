package domain

// Business validation constants
const (
	MaxNoteLength      = 500
	MaxTableSeats      = 50
	MaxMenuItemName    = 255
	MinPasswordLength  = 6
	MaxMenuCategoryLen = 50
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы бронирований, которые удерживают столы за собой в своём слоте
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// CancellableStatuses статусы, из которых разрешена отмена
var CancellableStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}
