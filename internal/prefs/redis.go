package prefs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const languageKey = "txr:prefs:language"

// RedisStore keeps preferences in Redis so several terminals can share them.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

// Ensure RedisStore implements Store interface
var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to redisURL (redis://host:port/db) and pings it.
func NewRedisStore(ctx context.Context, redisURL string, logger *slog.Logger) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Connected to Redis for preferences", "addr", opt.Addr)
	return &RedisStore{client: rdb, logger: logger}, nil
}

func (r *RedisStore) Language(ctx context.Context) (string, error) {
	val, err := r.client.Get(ctx, languageKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Redis key not found", "key", languageKey)
			return "", nil
		}
		r.logger.Error("Redis GET failed", "key", languageKey, "error", err)
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (r *RedisStore) SaveLanguage(ctx context.Context, code string) error {
	if err := r.client.Set(ctx, languageKey, code, 0).Err(); err != nil {
		r.logger.Error("Redis SET failed", "key", languageKey, "error", err)
		return fmt.Errorf("redis set failed: %w", err)
	}
	r.logger.Debug("Redis SET successful", "key", languageKey)
	return nil
}

func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	return nil
}

// Open returns a RedisStore when redisURL is set and a FileStore otherwise.
func Open(ctx context.Context, redisURL, path string, logger *slog.Logger) (Store, error) {
	if redisURL == "" {
		return NewFileStore(path, logger), nil
	}
	return NewRedisStore(ctx, redisURL, logger)
}
