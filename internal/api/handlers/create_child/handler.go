package create_child

import (
	"errors"
	"net/http"

	"github.com/ovchr/BSM-SessionService/internal/api/handlers"
	"github.com/ovchr/BSM-SessionService/internal/api/middleware"
	"github.com/ovchr/BSM-SessionService/internal/service/children"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты рождения, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
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

// Handle POST /api/v1/children
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	parentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /children - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateChildRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /children - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(parentID)
	if err != nil {
		h.logger.Warn("POST /children - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	child, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, children.ErrInvalidInput):
			h.logger.Warn("POST /children - Invalid input: parent_id=%d", parentID)
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /children - Failed to create child: parent_id=%d, error=%v", parentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /children - Child created successfully: child_id=%d, parent_id=%d", child.ID, parentID)
	handlers.RespondJSON(w, http.StatusCreated, child)
}
