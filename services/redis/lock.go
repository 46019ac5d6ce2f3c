package redis

import (
	"Connect4/logger"
	redis_utils "Connect4/services/redis/utils"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only if this holder still owns it
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`)

// TryLock takes the named lock for at most ttl. ok is false when another
// holder has it.
func (rc *RedisClient) TryLock(ctx context.Context, name string, ttl time.Duration) (func(), bool, error) {
	key := redis_utils.FormatLockKey(name)
	token := uuid.NewString()

	ok, err := rc.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil || !ok {
		return nil, false, err
	}

	release := func() {
		// The caller's context may already be done
		if err := releaseScript.Run(rc.ctx, rc.client, []string{key}, token).Err(); err != nil {
			logger.Warnf("[REDIS] Could not release lock %s: %v", key, err)
		}
	}
	return release, true, nil
}
