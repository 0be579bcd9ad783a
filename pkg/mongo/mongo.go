package mongo

import (
	"context"
	"fmt"

	"github.com/openclique/feedline/pkg/config"
	"github.com/openclique/feedline/pkg/logger"
	"github.com/openclique/feedline/pkg/retry"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

// Opts holds dependencies for creating a mongo database handle.
type Opts struct {
	fx.In
	LC     fx.Lifecycle
	Logger logger.Logger
	Config *config.Config
}

// New connects to mongo and returns the application database handle,
// managed by the fx lifecycle.
func New(opts Opts) (*mongo.Database, error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(opts.Config.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	opts.LC.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				err := retry.Do(ctx, opts.Logger, "mongo ping", func() error {
					return client.Ping(ctx, nil)
				}, retry.DefaultConfig())
				if err != nil {
					return fmt.Errorf("failed to ping mongo: %w", err)
				}
				opts.Logger.Info("Connected to mongo", "database", opts.Config.Mongo.Database)
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return client.Disconnect(ctx)
			},
		},
	)

	return client.Database(opts.Config.Mongo.Database), nil
}
