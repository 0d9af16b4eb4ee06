package geoservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ResolvedLocation результат геокодирования адреса
type ResolvedLocation struct {
	Address   string   `json:"address"`
	City      *string  `json:"city,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Client клиент для работы с GeoService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента GeoService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ResolveAddress геокодирует свободный текст адреса
func (c *Client) ResolveAddress(ctx context.Context, address string) (*ResolvedLocation, error) {
	endpoint := fmt.Sprintf("%s/internal/geocode?address=%s", c.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound, http.StatusUnprocessableEntity:
		return nil, ErrResolveFailed
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var location ResolvedLocation
	if err := json.NewDecoder(resp.Body).Decode(&location); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if location.Address == "" {
		location.Address = address
	}

	return &location, nil
}

// ResolveAddressWithGracefulDegradation геокодирует адрес с graceful degradation.
// При недоступности GeoService возвращает исходный адрес без координат
// вместе с ErrServiceDegraded - запрос продолжается в деградированном виде
func (c *Client) ResolveAddressWithGracefulDegradation(ctx context.Context, address string) (*ResolvedLocation, error) {
	location, err := c.ResolveAddress(ctx, address)
	if err != nil {
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("GeoService unavailable, applying graceful degradation for address=%q: %v", address, err)
		return &ResolvedLocation{Address: address}, fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}

	c.log.Info("Successfully resolved address=%q, city=%v", address, location.City)
	return location, nil
}
