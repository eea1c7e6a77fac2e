package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// releaseScript удаляет ключ только если он принадлежит владельцу токена
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// Client подмножество команд go-redis, нужное блокировке
type Client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisLocker блокировка на SETNX с TTL.
// Ключ не продлевается: TTL должен покрывать самую долгую работу под блокировкой.
type RedisLocker struct {
	client Client
	prefix string
	ttl    time.Duration
}

// NewRedisLocker создает блокировку. Ключи получают префикс prefix + ":".
func NewRedisLocker(client Client, prefix string, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Handle захваченная блокировка
type Handle struct {
	key   string
	token string
}

// Key полный ключ в Redis
func (h *Handle) Key() string { return h.key }

// TryAcquire пытается занять ключ. ok == false, если ключ уже занят.
func (l *RedisLocker) TryAcquire(ctx context.Context, name string) (*Handle, bool, error) {
	key := l.key(name)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("%w: TryAcquire - key %s: %v", ErrAcquire, key, err)
	}
	if !ok {
		return nil, false, nil
	}

	return &Handle{key: key, token: token}, true, nil
}

// Release освобождает ключ, если он все еще принадлежит этому владельцу
func (l *RedisLocker) Release(ctx context.Context, h *Handle) error {
	deleted, err := l.client.Eval(ctx, releaseScript, []string{h.key}, h.token).Int64()
	if err != nil {
		return fmt.Errorf("%w: Release - key %s: %v", ErrRelease, h.key, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: key %s", ErrNotHeld, h.key)
	}
	return nil
}

func (l *RedisLocker) key(name string) string {
	if l.prefix == "" {
		return name
	}
	return l.prefix + ":" + name
}
