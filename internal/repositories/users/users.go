package users

import (
	"context"
	"errors"

	"github.com/openclique/feedline/internal/domain"
)

var (
	ErrAlreadyExists = errors.New("user already exists")
	ErrNotFound      = errors.New("user not found")
)

type Repository interface {
	// Create persists a new user record.
	Create(ctx context.Context, user domain.User) error

	// GetByEmail returns the user registered under the given email.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// GetByUsername returns the user with the given username.
	GetByUsername(ctx context.Context, username string) (domain.User, error)
}
