package feedcache

import (
	"context"

	"github.com/openclique/feedline/internal/domain"
)

// Noop is used when redis is disabled; every read misses.
type Noop struct{}

var _ Cache = Noop{}

func (Noop) Get(ctx context.Context) ([]domain.Post, error) {
	return nil, ErrMiss
}

func (Noop) Set(ctx context.Context, posts []domain.Post) error {
	return nil
}

func (Noop) Invalidate(ctx context.Context) error {
	return nil
}
