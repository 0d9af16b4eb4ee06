package create_session_request

import (
	"context"
	"time"

	"github.com/ovchr/BSM-SessionService/internal/domain"
	"github.com/ovchr/BSM-SessionService/internal/events"
	"github.com/ovchr/BSM-SessionService/internal/integrations/geoservice"
	"github.com/ovchr/BSM-SessionService/internal/integrations/userservice"
)

// RequestRepository интерфейс репозитория запросов на сессии
type RequestRepository interface {
	Create(ctx context.Context, request *domain.SessionRequest) (*domain.SessionRequest, error)
	GetActiveByParentInWindow(ctx context.Context, parentID int64, start, end time.Time) ([]*domain.SessionRequest, error)
}

// ChildRepository интерфейс репозитория детских записей
type ChildRepository interface {
	GetByParent(ctx context.Context, parentID int64) ([]*domain.Child, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetParent(ctx context.Context, parentID int64) (*userservice.Parent, error)
	GetSitter(ctx context.Context, sitterID int64) (*userservice.Sitter, error)
}

// GeoServiceClient интерфейс клиента для GeoService
type GeoServiceClient interface {
	ResolveAddressWithGracefulDegradation(ctx context.Context, address string) (*geoservice.ResolvedLocation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SubmissionGuard внутрипроцессная защёлка от повторной отправки.
// Acquire возвращает токен владельца; Release с чужим токеном игнорируется
type SubmissionGuard interface {
	Acquire(key string) (uint64, bool)
	Release(key string, token uint64) bool
}

// IdempotencyStore межпроцессное хранилище ключей идемпотентности
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) error
	Release(ctx context.Context, key string)
}

// EventPublisher интерфейс для публикации доменных событий
type EventPublisher interface {
	Publish(e events.Event)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
