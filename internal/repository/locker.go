package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/apperror"
)

// releaseScript deletes the lock only if it is still held by the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker shares submission locks between processes. ttl must outlast the poll deadline,
// so an abandoned lock expires only after its transaction stopped polling.
type RedisLocker struct {
	logger *slog.Logger
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocker(logger *slog.Logger, client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		logger: logger.With("component", "redis_locker"),
		client: client,
		ttl:    ttl,
	}
}

func (that *RedisLocker) TryLock(ctx context.Context, key string) (func(), error) {
	key = "lock:" + key
	token := uuid.NewString()

	acquired, err := that.client.SetNX(ctx, key, token, that.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !acquired {
		return nil, apperror.ErrSubmissionInFlight
	}

	return func() {
		if err := releaseScript.Run(context.Background(), that.client, []string{key}, token).Err(); err != nil {
			that.logger.Error("failed to release lock", "key", key, "error", err)
		}
	}, nil
}
