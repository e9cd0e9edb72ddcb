package slotlock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const (
	DefaultKeyPrefix  = "reservation:slot-lock:"
	DefaultTTL        = 10 * time.Second
	DefaultWait       = 3 * time.Second
	DefaultRetryDelay = 50 * time.Millisecond

	releaseTimeout = 2 * time.Second
)

// releaseScript удаляет ключ, только если он всё ещё принадлежит владельцу токена
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Config параметры блокировки
type Config struct {
	KeyPrefix  string
	TTL        time.Duration // время жизни блокировки, если владелец не освободил её
	Wait       time.Duration // сколько ждать освобождения занятого слота
	RetryDelay time.Duration
}

// RedisLocker распределённая блокировка слота на основе SET NX PX
type RedisLocker struct {
	client *redis.Client
	cfg    Config
	logger Logger
}

// NewRedisLocker создает блокировщик. Нулевые значения конфигурации заменяются значениями по умолчанию
func NewRedisLocker(client *redis.Client, cfg Config, logger Logger) *RedisLocker {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultKeyPrefix
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Wait < 0 {
		cfg.Wait = DefaultWait
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	return &RedisLocker{client: client, cfg: cfg, logger: logger}
}

// Acquire захватывает слот и возвращает функцию освобождения
func (l *RedisLocker) Acquire(ctx context.Context, slot domain.Slot) (func(), error) {
	key := l.key(slot)
	token := uuid.NewString()
	deadline := time.Now().Add(l.cfg.Wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.cfg.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: acquire %s: %v", ErrRedis, key, err)
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}

		if !time.Now().Before(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrLockNotAcquired, slot.Key())
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.cfg.RetryDelay):
		}
	}
}

func (l *RedisLocker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()

	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
		l.logger.Warn("slotlock: failed to release %s, it will expire in %s: %v", key, l.cfg.TTL, err)
	}
}

func (l *RedisLocker) key(slot domain.Slot) string {
	return l.cfg.KeyPrefix + slot.Key()
}

// NoopLocker используется, когда Redis выключен: сериализацию обеспечивает транзакция БД
type NoopLocker struct{}

func (NoopLocker) Acquire(context.Context, domain.Slot) (func(), error) {
	return func() {}, nil
}
