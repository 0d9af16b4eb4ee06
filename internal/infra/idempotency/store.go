package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrDuplicateKey возвращается, когда ключ идемпотентности уже был использован
	ErrDuplicateKey = errors.New("idempotency: duplicate key")

	// ErrUnavailable возвращается, когда хранилище недоступно.
	// Вызывающая сторона продолжает работу только с внутрипроцессной защёлкой
	ErrUnavailable = errors.New("idempotency: store unavailable")
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Store redis-хранилище ключей идемпотентности.
// Защищает от повторной отправки между экземплярами сервиса:
// внутрипроцессная защёлка покрывает только один процесс
type Store struct {
	client *redis.Client
	ttl    time.Duration
	log    Logger
}

// NewStore создает новое хранилище ключей идемпотентности
func NewStore(client *redis.Client, ttl time.Duration, log Logger) *Store {
	return &Store{client: client, ttl: ttl, log: log}
}

// Reserve резервирует ключ через SET NX EX.
// Возвращает ErrDuplicateKey, если ключ уже зарезервирован,
// и ErrUnavailable при ошибке redis
func (s *Store) Reserve(ctx context.Context, key string) error {
	ok, err := s.client.SetNX(ctx, s.redisKey(key), "1", s.ttl).Result()
	if err != nil {
		s.log.Error("idempotency: failed to reserve key=%s: %v", key, err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if !ok {
		return ErrDuplicateKey
	}

	return nil
}

// Release освобождает ключ после неуспешной отправки,
// чтобы пользователь мог повторить попытку с тем же ключом
func (s *Store) Release(ctx context.Context, key string) {
	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		// Неосвобождённый ключ истечёт по TTL, поэтому только логируем
		s.log.Warn("idempotency: failed to release key=%s: %v", key, err)
	}
}

func (s *Store) redisKey(key string) string {
	return "session-requests:idempotency:" + key
}
