package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/check_availability"
)

const (
	msgMissingDateTime  = "дата и время обязательны"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime      = "некорректный формат времени, ожидается HH:MM"
	msgInvalidPartySize = "количество гостей должно быть положительным числом"
	msgInvalidInput     = "некорректные параметры запроса"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations/availability
// Query params: date (YYYY-MM-DD), time (HH:MM), partySize (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	dateStr := query.Get("date")
	timeStr := query.Get("time")

	if dateStr == "" || timeStr == "" {
		h.logger.Warn("GET /reservations/availability - Missing date or time")
		handlers.RespondBadRequest(w, msgMissingDateTime)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr, timeStr, query.Get("partySize"))
	if err != nil {
		h.logger.Warn("GET /reservations/availability - Invalid parameters: %v", err)
		switch {
		case errors.Is(err, errInvalidTime):
			handlers.RespondBadRequest(w, msgInvalidTime)
		case errors.Is(err, errInvalidPartySize):
			handlers.RespondBadRequest(w, msgInvalidPartySize)
		default:
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /reservations/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /reservations/availability - Failed to check availability: date=%s, time=%s, error=%v",
				dateStr, timeStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations/availability - date=%s, time=%s, free_tables=%d",
		dateStr, timeStr, len(result.FreeTables))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
