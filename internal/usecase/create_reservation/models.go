package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	OwnerID        int64            // ID пользователя из токена
	NumberOfPeople int              // Количество гостей
	Date           time.Time        // Дата (без времени)
	Time           types.TimeString // Время слота (например, "19:00")
	Note           *string          // Пожелания гостя (опционально)
}

// Response созданное бронирование вместе с назначенными столами
type Response struct {
	Reservation *domain.Reservation
}
