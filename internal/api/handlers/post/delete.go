package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/openclique/feedline/internal/api/middleware"
	"github.com/openclique/feedline/internal/posts"
)

// DeleteHandler handles post deletion
type DeleteHandler struct {
	service posts.Service
}

func NewDeleteHandler(service posts.Service) *DeleteHandler {
	return &DeleteHandler{service: service}
}

// HandleDelete handles DELETE /api/posts/{postId}
// Only the post's author may delete it.
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	err := h.service.Delete(r.Context(), chi.URLParam(r, "postId"), identity.Username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}
