package post

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/openclique/feedline/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handleServiceError maps service errors to HTTP responses. Message strings
// match the public API contract the feed client expects.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Post not found"})
	case apperrors.IsForbidden(err):
		writeJSON(w, http.StatusForbidden, map[string]string{"message": "You can only delete your own posts"})
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, apperrors.GetMessage(err))
	case apperrors.Is(err, apperrors.ErrPayloadTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, apperrors.GetMessage(err))
	default:
		writeError(w, http.StatusInternalServerError, apperrors.GetMessage(err))
	}
}
