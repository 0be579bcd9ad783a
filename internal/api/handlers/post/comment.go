package post

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/openclique/feedline/internal/api/middleware"
	"github.com/openclique/feedline/internal/posts"
)

// CommentHandler handles comment appends
type CommentHandler struct {
	service posts.Service
}

func NewCommentHandler(service posts.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

type commentInput struct {
	Text string `json:"text"`
}

// HandleComment handles POST /api/posts/comment/{postId}
func (h *CommentHandler) HandleComment(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var input commentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.service.AddComment(r.Context(), chi.URLParam(r, "postId"), identity.Username, input.Text)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Comment added"})
}
