// Package lock provides short-lived named locks used to serialize callback
// processing per transaction.
package lock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

var ErrNotAcquired = errors.New("lock: already held")

// Locker hands out a release func when the lock is acquired. Locks expire
// after ttl even if never released.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error)
}

// RedisLocker uses SET NX PX with a random token so a holder can only release
// its own lock.
type RedisLocker struct {
	client *redis.Client
	prefix string
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client, prefix: "lock:"}
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.prefix+key, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotAcquired
	}
	return func() {
		// Detached from ctx so a cancelled request still releases.
		releaseScript.Run(context.Background(), l.client, []string{l.prefix + key}, token)
	}, nil
}

// MemoryLocker is the single-instance fallback when Redis is not configured.
type MemoryLocker struct {
	cache *cache.Cache
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{cache: cache.New(time.Minute, 5*time.Minute)}
}

func (l *MemoryLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	token := uuid.NewString()
	if err := l.cache.Add(key, token, ttl); err != nil {
		return nil, ErrNotAcquired
	}
	return func() {
		if current, found := l.cache.Get(key); found && current == token {
			l.cache.Delete(key)
		}
	}, nil
}
