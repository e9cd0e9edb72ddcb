package menu

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	menuService "github.com/m04kA/SMC-ReservationService/internal/service/menu"
)

const (
	msgInvalidItemID      = "некорректный ID позиции меню"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidMaxPrice    = "некорректное значение max_price"
	msgInvalidInput       = "некорректные данные позиции меню"
	msgNotFound           = "позиция меню не найдена"
)

type Handler struct {
	service MenuService
	logger  Logger
}

func NewHandler(service MenuService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/menu
// Query params: category, max_price (опционально)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req, err := ToServiceRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /menu - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMaxPrice)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /menu - Failed to list menu: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/menu
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req menuService.CreateMenuItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /menu - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /menu", 0, err)
		return
	}

	h.logger.Info("POST /menu - Menu item created: item_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/menu/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.parseID(w, r, "PUT /menu/{id}")
	if !ok {
		return
	}

	var req menuService.UpdateMenuItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /menu/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), itemID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /menu/{id}", itemID, err)
		return
	}

	h.logger.Info("PUT /menu/{id} - Menu item updated: item_id=%d", itemID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/menu/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.parseID(w, r, "DELETE /menu/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), itemID); err != nil {
		h.respondServiceError(w, "DELETE /menu/{id}", itemID, err)
		return
	}

	h.logger.Info("DELETE /menu/{id} - Menu item deleted: item_id=%d", itemID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	itemID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || itemID <= 0 {
		h.logger.Warn("%s - Invalid menu item ID: %v", route, mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return 0, false
	}
	return itemID, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, itemID int64, err error) {
	switch {
	case errors.Is(err, menuService.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, menuService.ErrMenuItemNotFound):
		handlers.RespondNotFound(w, msgNotFound)

	default:
		h.logger.Error("%s - Failed: item_id=%d, error=%v", route, itemID, err)
		handlers.RespondInternalError(w)
	}
}
