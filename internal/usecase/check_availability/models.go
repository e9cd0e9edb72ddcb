package check_availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса проверки доступности
type Request struct {
	Date      time.Time        // Дата слота (без времени)
	Time      types.TimeString // Время слота (например, "19:00")
	PartySize *int             // Количество гостей (опционально)
}

// Response модель ответа со свободными столами слота
type Response struct {
	Date           time.Time
	Time           types.TimeString
	FreeTables     []domain.Table // Свободные столы в порядке каталога
	TotalFreeSeats int

	// Заполняются, только если в запросе указан PartySize
	PartySize     *int
	Feasible      *bool
	PlannedTables []domain.Table
}
