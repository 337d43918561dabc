package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/metalledger/internal/domain"
)

// releaseScript deletes the lock only if it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RunLock implements usecase.RunLocker using Redis SET NX.
type RunLock struct {
	client *redis.Client
	prefix string
	logger zerolog.Logger
}

// NewRunLock creates a new RunLock.
func NewRunLock(client *redis.Client, logger zerolog.Logger) *RunLock {
	return &RunLock{
		client: client,
		prefix: "lock:",
		logger: logger,
	}
}

// Acquire takes the named lock for ttl. The lock expires on its own if the
// holder dies before calling release.
func (l *RunLock) Acquire(ctx context.Context, name string, ttl time.Duration) (func(), error) {
	key := l.prefix + name
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrLockHeld
	}

	release := func() {
		// The caller's context may already be canceled.
		if err := releaseScript.Run(context.Background(), l.client, []string{key}, token).Err(); err != nil {
			l.logger.Warn().Err(err).Str("lock", name).Msg("failed to release lock")
		}
	}

	return release, nil
}
