package service

import (
	"context"
	"sync"
	"time"

	"skillpath_backend/internal/util"
	"skillpath_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerationLock serializes assessment and learning-path generation per employee.
type GenerationLock interface {
	// Acquire returns util.ErrGenerationInProgress when key is already held.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

func NewGenerationLock(rdb *redis.Client, ttl time.Duration) GenerationLock {
	if rdb == nil {
		return NewLocalLock()
	}
	return &RedisLock{Client: rdb, TTL: ttl}
}

type LocalLock struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalLock() *LocalLock {
	return &LocalLock{held: make(map[string]struct{})}
}

func (l *LocalLock) Acquire(ctx context.Context, key string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.held[key]; busy {
		return nil, util.ErrGenerationInProgress
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, nil
}

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// renewScript extends the TTL only while the key still holds our token.
var renewScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RedisLock holds the key for TTL and renews it every TTL/3 until released,
// so a generation running longer than TTL keeps its lock.
type RedisLock struct {
	Client *redis.Client
	TTL    time.Duration
}

// keepAlive calls renew every interval until ctx is done or renew reports the
// lock as lost.
func keepAlive(ctx context.Context, interval time.Duration, renew func(context.Context) (bool, error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			held, err := renew(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Log.Warn("Failed to renew generation lock", zap.Error(err))
				continue
			}
			if !held {
				return
			}
		}
	}
}

func (l *RedisLock) Acquire(ctx context.Context, key string) (func(), error) {
	ttl := l.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	redisKey := "skillpath:lock:" + key
	token := uuid.NewString()

	ok, err := l.Client.SetNX(ctx, redisKey, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrGenerationInProgress
	}

	renewCtx, stopRenew := context.WithCancel(context.Background())
	go keepAlive(renewCtx, ttl/3, func(ctx context.Context) (bool, error) {
		n, err := renewScript.Run(ctx, l.Client, []string{redisKey}, token, ttl.Milliseconds()).Int64()
		return n == 1, err
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			stopRenew()
			releaseCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := releaseScript.Run(releaseCtx, l.Client, []string{redisKey}, token).Err(); err != nil && err != redis.Nil {
				logger.Log.Warn("Failed to release generation lock", zap.String("key", key), zap.Error(err))
			}
		})
	}, nil
}

func employeeLockKey(employeeID uint) string {
	return "employee:" + util.FormatID(employeeID)
}
