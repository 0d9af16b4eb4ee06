package create_session_request

import (
	"errors"
	"net/http"

	"github.com/ovchr/BSM-SessionService/internal/api/handlers"
	"github.com/ovchr/BSM-SessionService/internal/api/middleware"
	createRequest "github.com/ovchr/BSM-SessionService/internal/usecase/create_session_request"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateTime     = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgValidationFailed    = "форма заполнена с ошибками"
	msgSubmissionInFlight  = "отправка уже выполняется, подождите"
	msgDuplicateSubmission = "этот запрос уже был отправлен"
	msgParentNotFound      = "родитель не найден"
	msgSitterNotFound      = "ситтер не найден"
	msgChildNotFound       = "ребёнок не найден"
)

// HeaderIdempotencyKey клиентский ключ идемпотентности отправки
const HeaderIdempotencyKey = "X-Idempotency-Key"

type Handler struct {
	useCase CreateSessionRequestUseCase
	logger  Logger
}

func NewHandler(useCase CreateSessionRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/session-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	parentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /session-requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateSessionRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /session-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат и времени)
	useCaseReq, err := req.ToUseCaseRequest(parentID, r.Header.Get(HeaderIdempotencyKey))
	if err != nil {
		h.logger.Warn("POST /session-requests - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var problems createRequest.ValidationErrors

		switch {
		case errors.As(err, &problems):
			h.logger.Warn("POST /session-requests - Validation failed: parent_id=%d, problems=%d",
				parentID, len(problems))
			handlers.RespondValidationErrors(w, msgValidationFailed, problems.Messages())

		case errors.Is(err, createRequest.ErrSubmissionInFlight):
			h.logger.Warn("POST /session-requests - Submission in flight: parent_id=%d", parentID)
			handlers.RespondConflict(w, msgSubmissionInFlight)

		case errors.Is(err, createRequest.ErrDuplicateSubmission):
			h.logger.Warn("POST /session-requests - Duplicate submission: parent_id=%d", parentID)
			handlers.RespondConflict(w, msgDuplicateSubmission)

		case errors.Is(err, createRequest.ErrParentNotFound):
			h.logger.Warn("POST /session-requests - Parent not found: parent_id=%d", parentID)
			handlers.RespondNotFound(w, msgParentNotFound)

		case errors.Is(err, createRequest.ErrSitterNotFound):
			h.logger.Warn("POST /session-requests - Sitter not found: parent_id=%d", parentID)
			handlers.RespondNotFound(w, msgSitterNotFound)

		case errors.Is(err, createRequest.ErrChildNotFound):
			h.logger.Warn("POST /session-requests - Child not found: parent_id=%d", parentID)
			handlers.RespondNotFound(w, msgChildNotFound)

		default:
			h.logger.Error("POST /session-requests - Failed to create request: parent_id=%d, error=%v",
				parentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /session-requests - Request created successfully: request_id=%d, parent_id=%d",
		result.ID, parentID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
