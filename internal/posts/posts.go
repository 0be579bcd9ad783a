package posts

import (
	"context"

	"github.com/openclique/feedline/internal/domain"
)

// Service mediates every read and write on posts, enforcing the ownership
// and content rules the repository alone cannot guarantee.
type Service interface {
	// Create persists a new post for the authenticated author. Depending
	// on configuration, a post with neither text nor image is rejected.
	Create(ctx context.Context, authorID, authorUsername, text, imageRef string) (domain.Post, error)

	// List returns the full feed, newest first.
	List(ctx context.Context) ([]domain.Post, error)

	// ToggleLike flips username's membership in the post's like set and
	// returns the resulting like count.
	ToggleLike(ctx context.Context, postID, username string) (int, error)

	// AddComment appends a comment to the post.
	AddComment(ctx context.Context, postID, username, text string) error

	// Delete removes a post; only the author may delete it.
	Delete(ctx context.Context, postID, requesterUsername string) error
}
