package preview_schedule

import (
	"errors"
	"net/http"

	"github.com/ovchr/BSM-SessionService/internal/api/handlers"
	"github.com/ovchr/BSM-SessionService/internal/api/middleware"
	previewSchedule "github.com/ovchr/BSM-SessionService/internal/usecase/preview_schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidMode        = "некорректный режим расписания"
)

type Handler struct {
	useCase PreviewScheduleUseCase
	logger  Logger
}

func NewHandler(useCase PreviewScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/session-requests/preview
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	parentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /session-requests/preview - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req PreviewScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /session-requests/preview - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(parentID)
	if err != nil {
		h.logger.Warn("POST /session-requests/preview - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, previewSchedule.ErrInvalidMode):
			h.logger.Warn("POST /session-requests/preview - Invalid mode: parent_id=%d", parentID)
			handlers.RespondBadRequest(w, msgInvalidMode)
		default:
			h.logger.Error("POST /session-requests/preview - Failed to preview: parent_id=%d, error=%v",
				parentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /session-requests/preview - Preview computed: parent_id=%d, days=%d, total=%.2f",
		parentID, len(result.Days), result.TotalHours)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
