package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/openclique/feedline/internal/api/middleware"
	"github.com/openclique/feedline/internal/api/routes"
	"github.com/openclique/feedline/internal/auth"
	"github.com/openclique/feedline/internal/posts"
	"github.com/openclique/feedline/internal/uploads"
	"github.com/openclique/feedline/pkg/config"
	"github.com/openclique/feedline/pkg/logger"
	"github.com/rs/cors"
	"go.uber.org/fx"
)

// Opts holds dependencies for assembling the HTTP server.
type Opts struct {
	fx.In

	LC      fx.Lifecycle
	Logger  logger.Logger
	Config  *config.Config
	Posts   posts.Service
	Auth    auth.Service
	Uploads uploads.Store
}

// New assembles the router and an http.Server managed by the fx lifecycle.
func New(opts Opts) *http.Server {
	log := opts.Logger.WithComponent("HTTPServer")

	r := chi.NewRouter()
	r.Use(requestLogger(log))

	authMW := middleware.NewAuthMiddleware(opts.Auth)
	routes.RegisterAccountRoutes(r, opts.Auth)
	routes.RegisterPostRoutes(r, opts.Posts, opts.Uploads, opts.Config, authMW)
	routes.RegisterWebRoutes(r, opts.Uploads)

	c := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(opts.Config.App.CorsOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Config.App.Port),
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
			}
			log.Info("HTTP server listening", "addr", srv.Addr)
			go func() {
				if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
					log.Error("HTTP server stopped unexpectedly", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return srv
}

func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Debug("Request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start).Round(time.Millisecond).String(),
			)
		})
	}
}
