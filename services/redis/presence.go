package redis

import (
	"Connect4/models"
	redis_utils "Connect4/services/redis/utils"
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// PresenceTTL bounds how long a presence entry outlives a crashed process
const PresenceTTL = time.Hour

func (rc *RedisClient) SetPresence(ctx context.Context, username string, status models.PresenceStatus) error {
	return rc.client.Set(ctx, redis_utils.FormatPresenceKey(username), string(status), PresenceTTL).Err()
}

func (rc *RedisClient) ClearPresence(ctx context.Context, username string) error {
	return rc.client.Del(ctx, redis_utils.FormatPresenceKey(username)).Err()
}

// GetPresence returns "" when username has no presence entry
func (rc *RedisClient) GetPresence(ctx context.Context, username string) (models.PresenceStatus, error) {
	status, err := rc.client.Get(ctx, redis_utils.FormatPresenceKey(username)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return models.PresenceStatus(status), nil
}
