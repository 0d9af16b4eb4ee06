package requests

import "errors"

var (
	// ErrRequestNotFound возвращается, когда запрос на сессию не найден
	ErrRequestNotFound = errors.New("session request not found")

	// ErrSitterNotFound возвращается, когда ситтер не найден в UserService
	ErrSitterNotFound = errors.New("sitter not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда запрос уже нельзя отменить
	ErrCannotCancel = errors.New("session request cannot be cancelled")

	// ErrCannotRespond возвращается, когда на запрос уже нельзя ответить
	ErrCannotRespond = errors.New("session request cannot be answered")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
