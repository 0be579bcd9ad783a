package feedcache

import (
	"github.com/openclique/feedline/pkg/config"
	"github.com/openclique/feedline/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Module("feed_cache",
	fx.Provide(
		func(lc fx.Lifecycle, cfg *config.Config, logger logger.Logger) Cache {
			if !cfg.Redis.Enabled {
				return Noop{}
			}
			return NewRedis(lc, cfg, logger)
		},
	),
)
