package userservice

import "errors"

var (
	// ErrParentNotFound возвращается, когда родитель не найден
	ErrParentNotFound = errors.New("userservice client: parent not found")

	// ErrSitterNotFound возвращается, когда ситтер не найден
	ErrSitterNotFound = errors.New("userservice client: sitter not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")
)
