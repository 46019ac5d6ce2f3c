package config

import (
	"Connect4/services/redis"
	"fmt"
)

// ConnectRedis returns nil without error when no Redis URL is configured
func ConnectRedis(s *Settings) (*redis.RedisClient, error) {
	if s.RedisURL == "" {
		return nil, nil
	}
	redisClient, err := redis.InitRedis(s.RedisURL, 0)
	if err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}
	return redisClient, nil
}
