package get_parent_requests

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ovchr/BSM-SessionService/internal/api/handlers"
	"github.com/ovchr/BSM-SessionService/internal/api/middleware"
	"github.com/ovchr/BSM-SessionService/internal/service/requests"
	"github.com/ovchr/BSM-SessionService/internal/service/requests/models"
)

const (
	msgInvalidParentID = "некорректный ID родителя"
	msgInvalidStatus   = "некорректный статус запроса"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service RequestService
	logger  Logger
}

func NewHandler(service RequestService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/parents/{parentId}/session-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	parentID, err := strconv.ParseInt(vars["parentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /parents/{parentId}/session-requests - Invalid parent ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /parents/{parentId}/session-requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Историю запросов родителя видит только он сам
	if userID != parentID {
		h.logger.Warn("GET /parents/{parentId}/session-requests - Access denied: parent_id=%d, user_id=%d",
			parentID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Фильтры из query параметров (опционально)
	var statusPtr *string
	if status := r.URL.Query().Get("status"); status != "" {
		statusPtr = &status
	}
	includeInactive := r.URL.Query().Get("includeInactive") == "true"

	result, err := h.service.GetParentRequests(r.Context(), &models.GetParentRequestsRequest{
		ParentID:        parentID,
		Status:          statusPtr,
		IncludeInactive: includeInactive,
	})
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrInvalidInput):
			h.logger.Warn("GET /parents/{parentId}/session-requests - Invalid status: parent_id=%d", parentID)
			handlers.RespondBadRequest(w, msgInvalidStatus)
		default:
			h.logger.Error("GET /parents/{parentId}/session-requests - Failed to get requests: parent_id=%d, error=%v",
				parentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /parents/{parentId}/session-requests - Requests retrieved successfully: parent_id=%d, count=%d",
		parentID, len(result.Requests))
	handlers.RespondJSON(w, http.StatusOK, result)
}
