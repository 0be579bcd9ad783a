package app

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	"github.com/openclique/feedline/internal/api"
	"github.com/openclique/feedline/internal/auth"
	"github.com/openclique/feedline/internal/auth/authimpl"
	"github.com/openclique/feedline/internal/feedcache"
	_ "github.com/openclique/feedline/internal/migrations"
	"github.com/openclique/feedline/internal/posts"
	"github.com/openclique/feedline/internal/posts/postsimpl"
	repositories "github.com/openclique/feedline/internal/repositories/fx"
	"github.com/openclique/feedline/internal/uploads"
	"github.com/openclique/feedline/internal/uploads/uploadsimpl"
	"github.com/openclique/feedline/pkg/config"
	"github.com/openclique/feedline/pkg/logger"
	"github.com/openclique/feedline/pkg/mongo"
	"github.com/openclique/feedline/pkg/pgx"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
		mongo.New,
	),
	fx.Provide(
		fx.Annotate(
			postsimpl.New,
			fx.As(new(posts.Service)),
		),
		fx.Annotate(
			authimpl.New,
			fx.As(new(auth.Service)),
		),
		fx.Annotate(
			uploadsimpl.New,
			fx.As(new(uploads.Store)),
		),
	),
	repositories.Module,
	feedcache.Module,
	fx.Provide(api.New),
	fx.Invoke(migrate),
	fx.Invoke(run),
)

func migrate(cfg *config.Config) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	return goose.Up(db, filepath.Join(wd, "internal", "migrations"))
}

func run(lc fx.Lifecycle, log logger.Logger, srv *http.Server, store uploads.Store) {
	jobCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := store.ScheduleOrphanSweep(jobCtx); err != nil {
				log.Error("Failed to schedule upload sweep", "error", err)
			}
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
