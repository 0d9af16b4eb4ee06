package update_child

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ovchr/BSM-SessionService/internal/api/handlers"
	"github.com/ovchr/BSM-SessionService/internal/api/middleware"
	"github.com/ovchr/BSM-SessionService/internal/service/children"
)

const (
	msgInvalidChildID     = "некорректный ID детской записи"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты рождения, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "детская запись не найдена"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные детской записи"
)

type Handler struct {
	service ChildService
	logger  Logger
}

func NewHandler(service ChildService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/children/{childId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	childID, err := strconv.ParseInt(vars["childId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /children/{childId} - Invalid child ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidChildID)
		return
	}

	parentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /children/{childId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateChildRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /children/{childId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(parentID)
	if err != nil {
		h.logger.Warn("PUT /children/{childId} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	child, err := h.service.Update(r.Context(), childID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, children.ErrChildNotFound):
			h.logger.Warn("PUT /children/{childId} - Child not found: child_id=%d", childID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, children.ErrAccessDenied):
			h.logger.Warn("PUT /children/{childId} - Access denied: child_id=%d, parent_id=%d", childID, parentID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, children.ErrInvalidInput):
			h.logger.Warn("PUT /children/{childId} - Invalid input: child_id=%d", childID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /children/{childId} - Failed to update child: child_id=%d, error=%v", childID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /children/{childId} - Child updated successfully: child_id=%d, parent_id=%d",
		childID, parentID)
	handlers.RespondJSON(w, http.StatusOK, child)
}
