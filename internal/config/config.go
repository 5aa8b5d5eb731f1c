package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "dev-secret"

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Notification NotificationConfig
}

// AppConfig controls the HTTP server.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	CORSAllowOrigins      string
}

type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LoggerConfig struct {
	Level  string
	Format string
}

// AuthConfig defines session and verification parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	// VerificationToken is the fixed value accepted by POST /api/auth/verify.
	VerificationToken string
}

// NotificationConfig controls the verification mailer and websocket fan-out.
type NotificationConfig struct {
	EmailFrom    string
	RedisRelay   bool
	RedisChannel string
}

// Load reads an optional .env file and then the process environment.
// Tuning knobs fall back to their default on malformed input; values that
// change which backend is addressed (REDIS_DB) fail the load instead.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var env envReader
	cfg := &Config{
		App: AppConfig{
			Name:                  env.str("APP_NAME", "event-service"),
			Env:                   env.str("APP_ENV", "development"),
			Host:                  env.str("APP_HOST", "0.0.0.0"),
			Port:                  env.str("APP_PORT", "3000"),
			Version:               env.str("APP_VERSION", "dev"),
			RequestTimeoutSeconds: env.integer("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			CORSAllowOrigins:      env.str("CORS_ALLOW_ORIGINS", "*"),
		},
		Postgres: PostgresConfig{
			DSN:            env.str("POSTGRES_DSN", ""),
			MaxConns:       int32(env.integer("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(env.integer("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  env.boolean("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(env.integer("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(env.integer("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     env.str("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       env.strictInt("REDIS_DB", 0),
		},
		Logger: LoggerConfig{
			Level:  env.str("LOG_LEVEL", "info"),
			Format: env.str("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			JWTSecret:             env.str("AUTH_JWT_SECRET", devJWTSecret),
			AccessTokenTTLMinutes: env.integer("AUTH_ACCESS_TOKEN_TTL_MINUTES", 7*24*60),
			BcryptCost:            env.integer("AUTH_BCRYPT_COST", 10),
			VerificationToken:     env.str("AUTH_VERIFICATION_TOKEN", "mock-token"),
		},
		Notification: NotificationConfig{
			EmailFrom:    env.str("NOTIFY_EMAIL_FROM", `"Event App" <noreply@eventapp.com>`),
			RedisRelay:   env.boolean("NOTIFY_REDIS_RELAY", false),
			RedisChannel: env.str("NOTIFY_REDIS_CHANNEL", "event-service:broadcast"),
		},
	}

	if cfg.App.Env == "production" && cfg.Auth.JWTSecret == devJWTSecret {
		env.fail(errors.New("AUTH_JWT_SECRET must be set in production"))
	}
	if err := errors.Join(env.errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a AppConfig) Addr() string {
	return a.Host + ":" + a.Port
}

// RequestTimeout returns zero when the timeout is disabled.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// AccessTokenTTL returns the session token lifetime.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// envReader looks up variables and collects the errors of strict lookups.
type envReader struct {
	errs []error
}

func (e *envReader) fail(err error) {
	e.errs = append(e.errs, err)
}

func (e *envReader) str(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func (e *envReader) integer(key string, fallback int) int {
	parsed, err := strconv.Atoi(e.str(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return parsed
}

func (e *envReader) strictInt(key string, fallback int) int {
	parsed, err := strconv.Atoi(e.str(key, strconv.Itoa(fallback)))
	if err != nil {
		e.fail(fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return parsed
}

func (e *envReader) boolean(key string, fallback bool) bool {
	parsed, err := strconv.ParseBool(e.str(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return parsed
}
