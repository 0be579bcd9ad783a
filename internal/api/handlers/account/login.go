package account

import (
	"encoding/json"
	"net/http"

	"github.com/openclique/feedline/internal/auth"
)

// LoginHandler handles credential verification and token issuance
type LoginHandler struct {
	service auth.Service
}

func NewLoginHandler(service auth.Service) *LoginHandler {
	return &LoginHandler{service: service}
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin handles POST /api/auth/login
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, user, err := h.service.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}
