package auth

import (
	"context"

	"github.com/openclique/feedline/internal/domain"
)

// Identity is the authenticated caller attached to a request by the
// bearer-token middleware.
type Identity struct {
	UserID   string
	Username string
}

// Service issues and validates credentials and bearer tokens.
type Service interface {
	// Register creates a new user with a bcrypt-hashed password.
	Register(ctx context.Context, username, email, password string) (domain.User, error)

	// Login verifies the credentials and returns a signed bearer token
	// together with the user it belongs to.
	Login(ctx context.Context, email, password string) (string, domain.User, error)

	// Verify parses and validates a bearer token, returning the identity
	// it carries.
	Verify(token string) (Identity, error)
}
