// Package config reads the server configuration from MCQGENIE_* environment
// variables, optionally seeded from a .env file. LLM settings live in
// llm.ConfigFromEnv.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read from the working directory when no other path is given.
const DefaultEnvFile = ".env"

// LoadDotEnv copies the variables in path into the process environment.
// Variables already set win over the file. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Session backends.
const (
	SessionBackendSQL   = "sql"
	SessionBackendRedis = "redis"
)

type Config struct {
	HTTPAddr string

	DBDriver string // sqlite|postgres
	DBDSN    string // empty means the default SQLite path

	SessionBackend string // sql|redis
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	// AMQPURL enables test.completed events when set.
	AMQPURL string

	CORSOrigins []string

	DefaultMCQCount      int
	MaxMCQCount          int
	TestTimeLimitMinutes int
}

func FromEnv() Config {
	return Config{
		HTTPAddr:             envOr("MCQGENIE_HTTP_ADDR", ":8000"),
		DBDriver:             envOr("MCQGENIE_DB_DRIVER", "sqlite"),
		DBDSN:                os.Getenv("MCQGENIE_DB_DSN"),
		SessionBackend:       strings.ToLower(envOr("MCQGENIE_SESSION_BACKEND", SessionBackendSQL)),
		RedisAddr:            envOr("MCQGENIE_REDIS_ADDR", "localhost:6379"),
		RedisPassword:        os.Getenv("MCQGENIE_REDIS_PASSWORD"),
		RedisDB:              envInt("MCQGENIE_REDIS_DB", 0),
		AMQPURL:              os.Getenv("MCQGENIE_AMQP_URL"),
		CORSOrigins:          csvOr("MCQGENIE_CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"),
		DefaultMCQCount:      envInt("MCQGENIE_DEFAULT_MCQ_COUNT", 10),
		MaxMCQCount:          envInt("MCQGENIE_MAX_MCQ_COUNT", 50),
		TestTimeLimitMinutes: envInt("MCQGENIE_TEST_TIME_LIMIT_MINUTES", 30),
	}
}

// Validate checks value ranges and combinations.
func (c Config) Validate() error {
	switch c.SessionBackend {
	case SessionBackendSQL, SessionBackendRedis:
	default:
		return fmt.Errorf("MCQGENIE_SESSION_BACKEND must be %q or %q, got %q", SessionBackendSQL, SessionBackendRedis, c.SessionBackend)
	}
	if c.MaxMCQCount < 1 || c.MaxMCQCount > 50 {
		return fmt.Errorf("MCQGENIE_MAX_MCQ_COUNT must be between 1 and 50, got %d", c.MaxMCQCount)
	}
	if c.DefaultMCQCount < 1 || c.DefaultMCQCount > c.MaxMCQCount {
		return fmt.Errorf("MCQGENIE_DEFAULT_MCQ_COUNT must be between 1 and %d, got %d", c.MaxMCQCount, c.DefaultMCQCount)
	}
	if c.TestTimeLimitMinutes < 1 {
		return fmt.Errorf("MCQGENIE_TEST_TIME_LIMIT_MINUTES must be positive, got %d", c.TestTimeLimitMinutes)
	}
	return nil
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
