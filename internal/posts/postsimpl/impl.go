package postsimpl

import (
	"context"
	"errors"
	"slices"

	"github.com/openclique/feedline/internal/domain"
	"github.com/openclique/feedline/internal/feedcache"
	"github.com/openclique/feedline/internal/posts"
	postrepo "github.com/openclique/feedline/internal/repositories/posts"
	"github.com/openclique/feedline/pkg/config"
	apperrors "github.com/openclique/feedline/pkg/errors"
	"github.com/openclique/feedline/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Repo   postrepo.Repository
	Cache  feedcache.Cache
	Logger logger.Logger
	Config *config.Config
}

type PostsImpl struct {
	Repo   postrepo.Repository
	Cache  feedcache.Cache
	Logger logger.Logger
	Config *config.Config
}

func New(opts Opts) *PostsImpl {
	return &PostsImpl{
		Repo:   opts.Repo,
		Cache:  opts.Cache,
		Logger: opts.Logger.WithComponent("PostService"),
		Config: opts.Config,
	}
}

var _ posts.Service = (*PostsImpl)(nil)

// Create persists a new post for the authenticated author.
func (p *PostsImpl) Create(ctx context.Context, authorID, authorUsername, text, imageRef string) (domain.Post, error) {
	if !p.Config.Posts.AllowEmpty && text == "" && imageRef == "" {
		return domain.Post{}, apperrors.Wrap(apperrors.ErrInvalidInput, "post must carry text or an image")
	}

	post, err := p.Repo.Create(ctx, domain.Post{
		UserID:   authorID,
		Username: authorUsername,
		Text:     text,
		ImageURL: imageRef,
		Likes:    []string{},
		Comments: []domain.Comment{},
	})
	if err != nil {
		return domain.Post{}, err
	}

	p.invalidateFeed(ctx)
	return post, nil
}

// List returns the full feed, newest first, served from the cache when fresh.
func (p *PostsImpl) List(ctx context.Context) ([]domain.Post, error) {
	cached, err := p.Cache.Get(ctx)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, feedcache.ErrMiss) {
		p.Logger.Warn("Feed cache read failed", "error", err)
	}

	feed, err := p.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := p.Cache.Set(ctx, feed); err != nil {
		p.Logger.Warn("Feed cache write failed", "error", err)
	}
	return feed, nil
}

// ToggleLike flips username's membership in the post's like set. Membership
// is decided on a read, but the write itself is an atomic set add/remove,
// so concurrent toggles cannot corrupt the like set.
func (p *PostsImpl) ToggleLike(ctx context.Context, postID, username string) (int, error) {
	post, err := p.Repo.GetByID(ctx, postID)
	if err != nil {
		return 0, p.mapErr(err)
	}

	var count int
	if slices.Contains(post.Likes, username) {
		count, err = p.Repo.RemoveLike(ctx, postID, username)
	} else {
		count, err = p.Repo.AddLike(ctx, postID, username)
	}
	if err != nil {
		return 0, p.mapErr(err)
	}

	p.invalidateFeed(ctx)
	return count, nil
}

// AddComment appends a comment unconditionally; empty text produces an
// empty-text comment, matching the admission behavior of the feed client.
func (p *PostsImpl) AddComment(ctx context.Context, postID, username, text string) error {
	err := p.Repo.AddComment(ctx, postID, domain.Comment{Username: username, Text: text})
	if err != nil {
		return p.mapErr(err)
	}

	p.invalidateFeed(ctx)
	return nil
}

// Delete removes a post after checking the requester owns it. The stored
// image file is left on disk; the opt-in janitor reclaims orphans.
func (p *PostsImpl) Delete(ctx context.Context, postID, requesterUsername string) error {
	post, err := p.Repo.GetByID(ctx, postID)
	if err != nil {
		return p.mapErr(err)
	}

	if post.Username != requesterUsername {
		return apperrors.ErrForbidden
	}

	if err := p.Repo.Delete(ctx, postID); err != nil {
		return p.mapErr(err)
	}

	p.invalidateFeed(ctx)
	return nil
}

func (p *PostsImpl) invalidateFeed(ctx context.Context) {
	if err := p.Cache.Invalidate(ctx); err != nil {
		p.Logger.Warn("Feed cache invalidation failed", "error", err)
	}
}

func (p *PostsImpl) mapErr(err error) error {
	if errors.Is(err, postrepo.ErrNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
