package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openclique/feedline/internal/domain"
	"github.com/openclique/feedline/internal/repositories"
	"github.com/openclique/feedline/pkg/logger"

	sq "github.com/Masterminds/squirrel"
)

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("UserRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

// Create persists a new user record.
func (p *Pgx) Create(ctx context.Context, user domain.User) error {
	query, args, err := repositories.SqBuilder.
		Insert("users").
		Columns("id", "username", "email", "password_hash", "created_at").
		Values(user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByEmail returns the user registered under the given email.
func (p *Pgx) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return p.getOne(ctx, sq.Eq{"email": email})
}

// GetByUsername returns the user with the given username.
func (p *Pgx) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return p.getOne(ctx, sq.Eq{"username": username})
}

func (p *Pgx) getOne(ctx context.Context, where sq.Eq) (domain.User, error) {
	query, args, err := repositories.SqBuilder.
		Select("id", "username", "email", "password_hash", "created_at").
		From("users").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return domain.User{}, repositories.ErrBadQuery
	}

	var user domain.User
	err = p.pg.QueryRow(ctx, query, args...).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}
