package get_sitter_inbox

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
	msgInvalidSitterID = "некорректный ID ситтера"
	msgSitterNotFound  = "ситтер не найден"
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

// Handle GET /api/v1/sitters/{sitterId}/inbox
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	sitterID, err := strconv.ParseInt(vars["sitterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /sitters/{sitterId}/inbox - Invalid sitter ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSitterID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /sitters/{sitterId}/inbox - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Входящие видит только сам ситтер
	if userID != sitterID {
		h.logger.Warn("GET /sitters/{sitterId}/inbox - Access denied: sitter_id=%d, user_id=%d", sitterID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.GetSitterInbox(r.Context(), &models.GetSitterInboxRequest{SitterID: sitterID})
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrSitterNotFound):
			h.logger.Warn("GET /sitters/{sitterId}/inbox - Sitter not found: sitter_id=%d", sitterID)
			handlers.RespondNotFound(w, msgSitterNotFound)
		default:
			h.logger.Error("GET /sitters/{sitterId}/inbox - Failed to get inbox: sitter_id=%d, error=%v",
				sitterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /sitters/{sitterId}/inbox - Inbox retrieved successfully: sitter_id=%d, count=%d",
		sitterID, len(result.Requests))
	handlers.RespondJSON(w, http.StatusOK, result)
}
