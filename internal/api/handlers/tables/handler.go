package tables

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	tablesService "github.com/m04kA/SMC-ReservationService/internal/service/tables"
)

const (
	msgInvalidTableID     = "некорректный ID стола"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSeats       = "количество мест должно быть от 1 до 50"
	msgNotFound           = "стол не найден"
	msgTableInUse         = "за столом закреплены бронирования"
)

// Handler управление каталогом столов (только для администратора)
type Handler struct {
	service TableService
	logger  Logger
}

func NewHandler(service TableService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/tables
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /tables - Failed to list tables: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/tables
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req tablesService.TableRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tables - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /tables", 0, err)
		return
	}

	h.logger.Info("POST /tables - Table created: table_id=%d, seats=%d", result.ID, result.Seats)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/tables/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	tableID, ok := h.parseID(w, r, "PUT /tables/{id}")
	if !ok {
		return
	}

	var req tablesService.TableRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tables/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), tableID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /tables/{id}", tableID, err)
		return
	}

	h.logger.Info("PUT /tables/{id} - Table updated: table_id=%d, seats=%d", tableID, result.Seats)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/tables/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	tableID, ok := h.parseID(w, r, "DELETE /tables/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), tableID); err != nil {
		h.respondServiceError(w, "DELETE /tables/{id}", tableID, err)
		return
	}

	h.logger.Info("DELETE /tables/{id} - Table deleted: table_id=%d", tableID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	tableID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || tableID <= 0 {
		h.logger.Warn("%s - Invalid table ID: %v", route, mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidTableID)
		return 0, false
	}
	return tableID, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, tableID int64, err error) {
	switch {
	case errors.Is(err, tablesService.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidSeats)

	case errors.Is(err, tablesService.ErrTableNotFound):
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, tablesService.ErrTableInUse):
		h.logger.Warn("%s - Table in use: table_id=%d", route, tableID)
		handlers.RespondConflict(w, msgTableInUse)

	default:
		h.logger.Error("%s - Failed: table_id=%d, error=%v", route, tableID, err)
		handlers.RespondInternalError(w)
	}
}
