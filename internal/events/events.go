package events

import (
	"sync"
	"time"
)

// EventType типизированное имя события
type EventType string

const (
	// EventRequestCreated публикуется после успешного создания запроса на сессию
	EventRequestCreated EventType = "session_request.created"

	// EventRequestStatusChanged публикуется при смене статуса запроса
	// (принят, отклонён, отменён)
	EventRequestStatusChanged EventType = "session_request.status_changed"

	// EventChildrenUpdated публикуется при любой мутации детских записей родителя
	EventChildrenUpdated EventType = "children.updated"
)

// Event доменное событие сервиса
type Event struct {
	Type       EventType
	RequestID  int64
	ParentID   int64
	SitterID   *int64
	ChildID    int64
	Status     string
	OccurredAt time.Time
}

// Handler обработчик события
type Handler func(Event)

// Bus внутрипроцессная шина событий.
// Подписка возвращает явную функцию отписки - подписчики обязаны
// отписываться при завершении, шина не хранит неявного глобального состояния
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[EventType]map[int]Handler
}

// NewBus создает пустую шину событий
func NewBus() *Bus {
	return &Bus{subs: make(map[EventType]map[int]Handler)}
}

// Subscribe регистрирует обработчик для типа события.
// Возвращённая функция снимает подписку; повторный вызов безопасен
func (b *Bus) Subscribe(t EventType, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[t] == nil {
		b.subs[t] = make(map[int]Handler)
	}

	b.nextID++
	id := b.nextID
	b.subs[t][id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[t], id)
	}
}

// Publish доставляет событие всем текущим подписчикам его типа.
// Обработчики вызываются синхронно по снимку списка подписчиков:
// отписка во время доставки не влияет на уже начатую публикацию
func (b *Bus) Publish(e Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[e.Type]))
	for _, h := range b.subs[e.Type] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(e)
	}
}
