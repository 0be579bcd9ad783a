package posts

import (
	"context"
	"errors"

	"github.com/openclique/feedline/internal/domain"
)

var ErrNotFound = errors.New("post not found")

type Repository interface {
	// Create persists a new post and returns it with its assigned id
	// and creation timestamp.
	Create(ctx context.Context, post domain.Post) (domain.Post, error)

	// GetAll returns every post, newest first.
	GetAll(ctx context.Context) ([]domain.Post, error)

	// GetByID returns a single post by its hex id.
	GetByID(ctx context.Context, id string) (domain.Post, error)

	// AddLike adds username to the post's like set and returns the new
	// like count. Adding an already-present username is a no-op.
	AddLike(ctx context.Context, id string, username string) (int, error)

	// RemoveLike removes username from the post's like set and returns
	// the new like count.
	RemoveLike(ctx context.Context, id string, username string) (int, error)

	// AddComment appends a comment to the post's comment list.
	AddComment(ctx context.Context, id string, comment domain.Comment) error

	// Delete permanently removes a post.
	Delete(ctx context.Context, id string) error
}
