package delete_child

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
	msgInvalidChildID = "некорректный ID детской записи"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgNotFound       = "детская запись не найдена"
	msgForbidden      = "доступ запрещен"
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

// Handle DELETE /api/v1/children/{childId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	childID, err := strconv.ParseInt(vars["childId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /children/{childId} - Invalid child ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidChildID)
		return
	}

	parentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /children/{childId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), childID, parentID); err != nil {
		switch {
		case errors.Is(err, children.ErrChildNotFound):
			h.logger.Warn("DELETE /children/{childId} - Child not found: child_id=%d", childID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, children.ErrAccessDenied):
			h.logger.Warn("DELETE /children/{childId} - Access denied: child_id=%d, parent_id=%d", childID, parentID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /children/{childId} - Failed to delete child: child_id=%d, error=%v", childID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /children/{childId} - Child deleted successfully: child_id=%d, parent_id=%d",
		childID, parentID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
