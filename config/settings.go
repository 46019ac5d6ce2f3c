package config

import (
	game_constants "Connect4/constants/game"
	"Connect4/logger"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Settings gathers every value read from the environment at start-up
type Settings struct {
	Port     string
	Prod     bool
	LogLevel string

	PostgresUser     string
	PostgresPassword string
	PostgresHost     string
	PostgresPort     string
	PostgresDatabase string
	VerbosePostgres  bool
	MigratePostgres  bool

	// RedisURL empty disables presence mirroring and the arrange lock
	RedisURL string

	SessionKey    string
	JWTSecret     string
	JWTExpiration time.Duration

	ArrangeInterval time.Duration
	RatingTolerance float64
	MaxWaiting      time.Duration

	UseHTTPS bool
	CertFile string
	KeyFile  string
}

// Load reads a .env file if there is one, then the environment
func Load() *Settings {
	if err := godotenv.Load(); err != nil {
		logger.Debugf("[CONFIG] No .env file loaded: %v", err)
	}

	s := &Settings{
		Port:     os.Getenv("PORT"),
		Prod:     os.Getenv("PROD") == "true",
		LogLevel: getEnv("LOG_LEVEL", "info"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresDatabase: os.Getenv("POSTGRES_DATABASE"),
		VerbosePostgres:  os.Getenv("VERBOSE_POSTGRES") == "true",
		MigratePostgres:  os.Getenv("MIGRATE_POSTGRES") == "true",

		RedisURL: os.Getenv("REDIS_URL"),

		SessionKey:    getEnv("KEY", "secret"),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		JWTExpiration: getDuration("JWT_EXPIRATION", 24*time.Hour),

		ArrangeInterval: getDuration("ARRANGE_INTERVAL", game_constants.ARRANGE_INTERVAL_MS*time.Millisecond),
		RatingTolerance: getFloat("RATING_TOLERANCE", game_constants.RATING_TOLERANCE),
		MaxWaiting:      getDuration("MAX_WAITING", game_constants.MAX_WAITING_MS*time.Millisecond),

		UseHTTPS: os.Getenv("USE_HTTPS") == "true",
		CertFile: os.Getenv("CERT_FILE"),
		KeyFile:  os.Getenv("KEY_FILE"),
	}

	if s.Port == "" {
		s.Port = "8080"
		if s.UseHTTPS {
			s.Port = "443"
		}
	}
	return s
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logger.Warnf("[CONFIG] Invalid duration %s=%q, using %s", key, value, fallback)
		return fallback
	}
	return d
}

func getFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		logger.Warnf("[CONFIG] Invalid number %s=%q, using %v", key, value, fallback)
		return fallback
	}
	return f
}
