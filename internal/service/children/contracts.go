package children

import (
	"context"

	"github.com/ovchr/BSM-SessionService/internal/domain"
	"github.com/ovchr/BSM-SessionService/internal/events"
)

// ChildRepository интерфейс репозитория детских записей
type ChildRepository interface {
	Create(ctx context.Context, child *domain.Child) (*domain.Child, error)
	GetByID(ctx context.Context, id int64) (*domain.Child, error)
	GetByParent(ctx context.Context, parentID int64) ([]*domain.Child, error)
	Update(ctx context.Context, child *domain.Child) error
	Delete(ctx context.Context, id int64) error
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
