package post

import (
	"net/http"

	"github.com/openclique/feedline/internal/posts"
)

// ListHandler serves the full feed
type ListHandler struct {
	service posts.Service
}

func NewListHandler(service posts.Service) *ListHandler {
	return &ListHandler{service: service}
}

// HandleList handles GET /api/posts/all
// Returns every post ordered newest first; no pagination.
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	feed, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, feed)
}
