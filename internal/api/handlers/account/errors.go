package account

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

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, apperrors.GetMessage(err))
	case apperrors.IsAlreadyExists(err):
		writeError(w, http.StatusConflict, apperrors.GetMessage(err))
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	default:
		writeError(w, http.StatusInternalServerError, apperrors.GetMessage(err))
	}
}
