package children

import "errors"

var (
	// ErrChildNotFound возвращается, когда детская запись не найдена
	ErrChildNotFound = errors.New("child not found")

	// ErrAccessDenied возвращается, когда запись принадлежит другому родителю
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
