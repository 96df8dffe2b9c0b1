package blob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"furnistore/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// redisStore persists blobs in redis, one string value per key. Used when
// several storefront instances need to share session state.
type redisStore struct {
	client *redis.Client
	prefix string
	logger zerolog.Logger
}

// NewRedisStore creates a redis-backed blob store and verifies the
// connection.
func NewRedisStore(cfg config.BlobConfig, logger zerolog.Logger) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.RedisAddr, err)
	}

	logger.Info().
		Str("addr", cfg.RedisAddr).
		Int("db", cfg.RedisDB).
		Msg("redis blob store connected")

	return &redisStore{
		client: client,
		prefix: cfg.RedisPrefix,
		logger: logger.With().Str("component", "blob-redis").Logger(),
	}, nil
}

func (s *redisStore) Get(ctx context.Context, key string, into any) (bool, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed for %s: %w", key, err)
	}

	if err := json.Unmarshal(data, into); err != nil {
		s.logger.Warn().
			Str("key", key).
			Err(err).
			Msg("stored blob is corrupt, treating as absent")
		return false, nil
	}

	return true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal blob %s: %w", key, err)
	}

	// Session blobs have no TTL: carts survive until the shopper clears
	// them, like local storage did.
	if err := s.client.Set(ctx, s.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed for %s: %w", key, err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis delete failed for %s: %w", key, err)
	}
	return nil
}
