package feedcache

import (
	"context"
	"errors"

	"github.com/openclique/feedline/internal/domain"
)

var ErrMiss = errors.New("feed cache miss")

// Cache is a best-effort read cache for the full feed. Callers treat any
// error as a miss; a failed Set or Invalidate is logged, never surfaced.
type Cache interface {
	// Get returns the cached feed, or ErrMiss when absent or expired.
	Get(ctx context.Context) ([]domain.Post, error)

	// Set stores the feed for the configured TTL.
	Set(ctx context.Context, posts []domain.Post) error

	// Invalidate drops the cached feed.
	Invalidate(ctx context.Context) error
}
