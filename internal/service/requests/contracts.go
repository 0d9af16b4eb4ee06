package requests

import (
	"context"

	"github.com/ovchr/BSM-SessionService/internal/domain"
	"github.com/ovchr/BSM-SessionService/internal/events"
	"github.com/ovchr/BSM-SessionService/internal/integrations/userservice"
)

// RequestRepository интерфейс репозитория запросов на сессии
type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SessionRequest, error)
	GetByParentWithFilter(ctx context.Context, filter domain.ParentRequestsFilter) ([]*domain.SessionRequest, error)
	GetInbox(ctx context.Context, filter domain.SitterInboxFilter) ([]*domain.SessionRequest, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus, sitterID *int64) error
	Cancel(ctx context.Context, id int64, status domain.RequestStatus, reason string) error
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetSitter(ctx context.Context, sitterID int64) (*userservice.Sitter, error)
}

// EventPublisher интерфейс для публикации доменных событий
type EventPublisher interface {
	Publish(e events.Event)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
