package feedcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/openclique/feedline/internal/domain"
	"github.com/openclique/feedline/pkg/config"
	"github.com/openclique/feedline/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const feedKey = "feedline:feed"

type Redis struct {
	r      *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRedis(lc fx.Lifecycle, cfg *config.Config, logger logger.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("failed to ping redis: %w", err)
			}
			logger.Info("Connected to redis", "addr", cfg.Redis.Addr)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return &Redis{
		r:      client,
		ttl:    cfg.Redis.FeedTTL,
		logger: logger.WithComponent("FeedCache"),
	}
}

var _ Cache = (*Redis)(nil)

// Get returns the cached feed, or ErrMiss when absent or expired.
func (c *Redis) Get(ctx context.Context) ([]domain.Post, error) {
	raw, err := c.r.Get(ctx, feedKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	var posts []domain.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		// A corrupt entry is dropped and treated as a miss.
		c.logger.Warn("Dropping unreadable feed cache entry", "error", err)
		c.r.Del(ctx, feedKey)
		return nil, ErrMiss
	}
	return posts, nil
}

// Set stores the feed for the configured TTL.
func (c *Redis) Set(ctx context.Context, posts []domain.Post) error {
	raw, err := json.Marshal(posts)
	if err != nil {
		return err
	}
	return c.r.Set(ctx, feedKey, raw, c.ttl).Err()
}

// Invalidate drops the cached feed.
func (c *Redis) Invalidate(ctx context.Context) error {
	return c.r.Del(ctx, feedKey).Err()
}
