package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/openclique/feedline/internal/api/handlers/post"
	"github.com/openclique/feedline/internal/api/middleware"
	"github.com/openclique/feedline/internal/posts"
	"github.com/openclique/feedline/internal/uploads"
	"github.com/openclique/feedline/pkg/config"
)

// RegisterPostRoutes registers the post endpoints on the router.
func RegisterPostRoutes(r chi.Router, service posts.Service, store uploads.Store,
	cfg *config.Config, authMW *middleware.AuthMiddleware) {

	createHandler := post.NewCreateHandler(service, store, cfg.Uploads.MaxBytes)
	listHandler := post.NewListHandler(service)
	likeHandler := post.NewLikeHandler(service)
	commentHandler := post.NewCommentHandler(service)
	deleteHandler := post.NewDeleteHandler(service)

	r.With(authMW.RequireAuth).Post("/api/posts/create", createHandler.HandleCreate)

	// The feed is public; no auth enforced.
	r.Get("/api/posts/all", listHandler.HandleList)

	// The like toggle is reachable via PUT and POST for client compatibility.
	r.With(authMW.RequireAuth).Put("/api/posts/like/{postId}", likeHandler.HandleLike)
	r.With(authMW.RequireAuth).Post("/api/posts/like/{postId}", likeHandler.HandleLike)

	r.With(authMW.RequireAuth).Post("/api/posts/comment/{postId}", commentHandler.HandleComment)
	r.With(authMW.RequireAuth).Delete("/api/posts/{postId}", deleteHandler.HandleDelete)
}
