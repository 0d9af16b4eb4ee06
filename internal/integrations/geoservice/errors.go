package geoservice

import "errors"

var (
	// ErrResolveFailed возвращается, когда адрес не удалось геокодировать
	ErrResolveFailed = errors.New("geoservice client: failed to resolve address")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("geoservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("geoservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Указывает, что GeoService недоступен и запрос продолжится без координат
	ErrServiceDegraded = errors.New("geoservice unavailable: graceful degradation applied")
)
