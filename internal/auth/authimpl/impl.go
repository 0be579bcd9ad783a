package authimpl

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/openclique/feedline/internal/auth"
	"github.com/openclique/feedline/internal/domain"
	userrepo "github.com/openclique/feedline/internal/repositories/users"
	"github.com/openclique/feedline/pkg/config"
	apperrors "github.com/openclique/feedline/pkg/errors"
	"github.com/openclique/feedline/pkg/logger"
	"go.uber.org/fx"
	"golang.org/x/crypto/bcrypt"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type Opts struct {
	fx.In

	Users  userrepo.Repository
	Logger logger.Logger
	Config *config.Config
}

type AuthImpl struct {
	Users  userrepo.Repository
	Logger logger.Logger
	Config *config.Config
}

func New(opts Opts) *AuthImpl {
	return &AuthImpl{
		Users:  opts.Users,
		Logger: opts.Logger.WithComponent("AuthService"),
		Config: opts.Config,
	}
}

var _ auth.Service = (*AuthImpl)(nil)

// Register creates a new user with a bcrypt-hashed password.
func (a *AuthImpl) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	if !usernameRe.MatchString(username) {
		return domain.User{}, apperrors.Wrap(apperrors.ErrInvalidInput,
			"username must be 3-20 characters (letters, numbers, underscore)")
	}
	if !emailRe.MatchString(email) {
		return domain.User{}, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid email address")
	}
	if password == "" {
		return domain.User{}, apperrors.Wrap(apperrors.ErrInvalidInput, "password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := a.Users.Create(ctx, user); err != nil {
		if errors.Is(err, userrepo.ErrAlreadyExists) {
			return domain.User{}, apperrors.Wrap(apperrors.ErrAlreadyExists, "username or email already taken")
		}
		return domain.User{}, err
	}

	a.Logger.Info("User registered", "username", username)
	return user, nil
}

// Login verifies the credentials and returns a signed bearer token.
func (a *AuthImpl) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := a.Users.GetByEmail(ctx, email)
	if errors.Is(err, userrepo.ErrNotFound) {
		return "", domain.User{}, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid credentials")
	}
	if err != nil {
		return "", domain.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.User{}, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"exp":      time.Now().Add(a.Config.Auth.TokenTTL).Unix(),
	})

	signed, err := token.SignedString([]byte(a.Config.Auth.JWTSecret))
	if err != nil {
		return "", domain.User{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, user, nil
}

// Verify parses and validates a bearer token.
func (a *AuthImpl) Verify(tokenString string) (auth.Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(a.Config.Auth.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return auth.Identity{}, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return auth.Identity{}, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	username, _ := claims["username"].(string)
	if sub == "" || username == "" {
		return auth.Identity{}, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid token claims")
	}

	return auth.Identity{UserID: sub, Username: username}, nil
}
