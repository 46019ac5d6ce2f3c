package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "USE_HTTPS", "ARRANGE_INTERVAL", "RATING_TOLERANCE", "MAX_WAITING", "REDIS_URL"} {
		t.Setenv(key, "")
	}

	s := Load()

	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, time.Second, s.ArrangeInterval)
	assert.Equal(t, 100.0, s.RatingTolerance)
	assert.Equal(t, 1500*time.Millisecond, s.MaxWaiting)
	assert.Empty(t, s.RedisURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("USE_HTTPS", "true")
	t.Setenv("ARRANGE_INTERVAL", "250ms")
	t.Setenv("RATING_TOLERANCE", "42.5")
	t.Setenv("MAX_WAITING", "not-a-duration")

	s := Load()

	assert.Equal(t, "443", s.Port)
	assert.Equal(t, 250*time.Millisecond, s.ArrangeInterval)
	assert.Equal(t, 42.5, s.RatingTolerance)
	assert.Equal(t, 1500*time.Millisecond, s.MaxWaiting)
}
