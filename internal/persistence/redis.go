package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/event-service/internal/config"
)

// Redis holds the client used by the broadcast relay and the readiness probe.
type Redis struct {
	Client *redis.Client
}

// NewRedis builds the client. Redis is optional at startup: an unreachable
// server is logged and surfaces later through Ping.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(redisOptions(cfg))

	log := logger.With(zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable", zap.Error(err))
	} else {
		log.Info("connected to redis")
	}
	return &Redis{Client: client}
}

func redisOptions(cfg config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping satisfies the readiness probe.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}
