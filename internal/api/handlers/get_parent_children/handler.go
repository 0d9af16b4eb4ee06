package get_parent_children

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ovchr/BSM-SessionService/internal/api/handlers"
	"github.com/ovchr/BSM-SessionService/internal/api/middleware"
)

const (
	msgInvalidParentID = "некорректный ID родителя"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
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

// Handle GET /api/v1/parents/{parentId}/children
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	parentID, err := strconv.ParseInt(vars["parentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /parents/{parentId}/children - Invalid parent ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /parents/{parentId}/children - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Детские записи видит только их родитель
	if userID != parentID {
		h.logger.Warn("GET /parents/{parentId}/children - Access denied: parent_id=%d, user_id=%d",
			parentID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.GetParentChildren(r.Context(), parentID)
	if err != nil {
		h.logger.Error("GET /parents/{parentId}/children - Failed to get children: parent_id=%d, error=%v",
			parentID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /parents/{parentId}/children - Children retrieved successfully: parent_id=%d, count=%d",
		parentID, len(result.Children))
	handlers.RespondJSON(w, http.StatusOK, result)
}
