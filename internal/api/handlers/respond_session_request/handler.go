package respond_session_request

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
	msgInvalidRequestID   = "некорректный ID запроса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "запрос на сессию не найден"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgCannotRespond      = "на этот запрос уже нельзя ответить"
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

// Handle PATCH /api/v1/session-requests/{requestId}/respond
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	requestID, err := strconv.ParseInt(vars["requestId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /session-requests/{id}/respond - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	sitterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /session-requests/{id}/respond - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RespondSessionRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /session-requests/{id}/respond - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.Respond(r.Context(), requestID, &models.RespondRequest{
		SitterID: sitterID,
		Accept:   req.Accept,
	})
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrRequestNotFound):
			h.logger.Warn("PATCH /session-requests/{id}/respond - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, requests.ErrAccessDenied):
			h.logger.Warn("PATCH /session-requests/{id}/respond - Access denied: request_id=%d, sitter_id=%d",
				requestID, sitterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, requests.ErrCannotRespond):
			h.logger.Warn("PATCH /session-requests/{id}/respond - Cannot respond: request_id=%d", requestID)
			handlers.RespondConflict(w, msgCannotRespond)

		default:
			h.logger.Error("PATCH /session-requests/{id}/respond - Failed to respond: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /session-requests/{id}/respond - Response recorded: request_id=%d, sitter_id=%d, accept=%t",
		requestID, sitterID, req.Accept)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
