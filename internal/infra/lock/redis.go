package lock

import (
	"context"
	"log/slog"
	"time"

	"commons-dinner/internal/domain/job"
	"commons-dinner/internal/pkg/config"
	"commons-dinner/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker guards job types across instances with SET NX PX
type RedisLocker struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client, cfg config.RedisConfig) *RedisLocker {
	return &RedisLocker{client: client, prefix: cfg.LockPrefix, ttl: cfg.LockTTL}
}

func (l *RedisLocker) key(t job.Type) string {
	return l.prefix + ":" + t.String()
}

func (l *RedisLocker) Acquire(ctx context.Context, t job.Type) (func(), error) {
	key := l.key(t)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, errs.Wrap(err, "acquire job lock")
	}
	if !ok {
		return nil, job.ErrJobAlreadyRunning
	}

	return func() {
		// the caller's context may already be done when the job ends
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			slog.Warn("job lock release failed", "key", key, "error", err.Error())
		}
	}, nil
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
