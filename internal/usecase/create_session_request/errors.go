package create_session_request

import (
	"errors"
	"strings"
)

var (
	// ErrParentNotFound возвращается, когда родитель не найден в UserService
	ErrParentNotFound = errors.New("create_session_request: parent not found")

	// ErrSitterNotFound возвращается, когда приглашаемый ситтер не найден
	ErrSitterNotFound = errors.New("create_session_request: sitter not found")

	// ErrChildNotFound возвращается, когда выбранный ребёнок не принадлежит родителю
	ErrChildNotFound = errors.New("create_session_request: child not found")

	// ErrSubmissionInFlight возвращается, когда отправка с тем же ключом уже выполняется
	ErrSubmissionInFlight = errors.New("create_session_request: submission already in flight")

	// ErrDuplicateSubmission возвращается при повторной отправке уже принятого запроса
	ErrDuplicateSubmission = errors.New("create_session_request: duplicate submission")

	// ErrComposeConflict возвращается, когда композиция формы дала не ровно
	// один исходящий запрос - это дефект, отправка прерывается целиком
	ErrComposeConflict = errors.New("create_session_request: form composed into an unexpected number of requests")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_session_request: internal error")
)

// ValidationErrors собирает все проблемы формы за один проход,
// чтобы пользователь увидел полный список, а не первую ошибку
type ValidationErrors []string

// Error реализует интерфейс error
func (v ValidationErrors) Error() string {
	return "create_session_request: validation failed: " + strings.Join(v, "; ")
}

// Messages возвращает пользовательские сообщения об ошибках
func (v ValidationErrors) Messages() []string {
	return v
}
