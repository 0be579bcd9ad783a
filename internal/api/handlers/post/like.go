package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/openclique/feedline/internal/api/middleware"
	"github.com/openclique/feedline/internal/posts"
)

// LikeHandler handles like toggles
type LikeHandler struct {
	service posts.Service
}

func NewLikeHandler(service posts.Service) *LikeHandler {
	return &LikeHandler{service: service}
}

// HandleLike handles PUT|POST /api/posts/like/{postId}
// There is no separate like/unlike verb: the operation always flips the
// caller's membership in the post's like set.
func (h *LikeHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	count, err := h.service.ToggleLike(r.Context(), chi.URLParam(r, "postId"), identity.Username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Like updated",
		"likes":   count,
	})
}
