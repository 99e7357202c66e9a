package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/einkhub/renderer/internal/config"
	"github.com/einkhub/renderer/pkg/models"
)

const keyPrefix = "einkhub:snapshot:"

// RedisStore persists snapshots in Redis so they survive restarts and
// can be shared between instances. Keys are written without expiration;
// the TTL on a snapshot is advisory only.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(cfg config.RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Connected to Redis", zap.String("addr", cfg.Addr))
	return &RedisStore{client: rdb, logger: logger}, nil
}

func (s *RedisStore) Put(ctx context.Context, snap models.ProviderSnapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot for %s: %w", snap.Provider, err)
	}
	if err := s.client.Set(ctx, keyPrefix+snap.Provider, body, 0).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot for %s: %w", snap.Provider, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, provider string) (models.ProviderSnapshot, bool, error) {
	result, err := s.client.Get(ctx, keyPrefix+provider).Result()
	if err != nil {
		if err == redis.Nil {
			return models.ProviderSnapshot{}, false, nil
		}
		return models.ProviderSnapshot{}, false, fmt.Errorf("failed to get snapshot for %s: %w", provider, err)
	}

	var snap models.ProviderSnapshot
	if err := json.Unmarshal([]byte(result), &snap); err != nil {
		return models.ProviderSnapshot{}, false, fmt.Errorf("failed to decode snapshot for %s: %w", provider, err)
	}
	return snap, true, nil
}

func (s *RedisStore) All(ctx context.Context) (map[string]models.ProviderSnapshot, error) {
	out := make(map[string]models.ProviderSnapshot)

	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		provider := iter.Val()[len(keyPrefix):]
		snap, ok, err := s.Get(ctx, provider)
		if err != nil {
			return nil, err
		}
		if ok {
			out[provider] = snap
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan snapshots: %w", err)
	}
	return out, nil
}

func (s *RedisStore) Delete(ctx context.Context, provider string) error {
	if err := s.client.Del(ctx, keyPrefix+provider).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot for %s: %w", provider, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
