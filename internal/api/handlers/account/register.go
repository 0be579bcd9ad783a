package account

import (
	"encoding/json"
	"net/http"

	"github.com/openclique/feedline/internal/auth"
)

// RegisterHandler handles account creation
type RegisterHandler struct {
	service auth.Service
}

func NewRegisterHandler(service auth.Service) *RegisterHandler {
	return &RegisterHandler{service: service}
}

type registerInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister handles POST /api/auth/register
func (h *RegisterHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var input registerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.service.Register(r.Context(), input.Username, input.Email, input.Password); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}
