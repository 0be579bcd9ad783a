package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/openclique/feedline/internal/api/handlers/account"
	"github.com/openclique/feedline/internal/auth"
)

// RegisterAccountRoutes registers registration and login endpoints.
func RegisterAccountRoutes(r chi.Router, service auth.Service) {
	registerHandler := account.NewRegisterHandler(service)
	loginHandler := account.NewLoginHandler(service)

	r.Post("/api/auth/register", registerHandler.HandleRegister)
	r.Post("/api/auth/login", loginHandler.HandleLogin)
}
