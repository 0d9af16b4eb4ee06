package sessionrequest

import "errors"

var (
	// ErrRequestNotFound возвращается, когда запрос на сессию не найден
	ErrRequestNotFound = errors.New("sessionrequest.repository: request not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("sessionrequest.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("sessionrequest.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("sessionrequest.repository: failed to scan row")

	// ErrMarshalSlots возвращается при ошибке сериализации временных слотов
	ErrMarshalSlots = errors.New("sessionrequest.repository: failed to marshal time slots")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("sessionrequest.repository: invalid request status")
)
