package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/openclique/feedline/internal/uploads"
)

// RegisterWebRoutes registers the static upload file server and the
// health endpoint.
func RegisterWebRoutes(r chi.Router, store uploads.Store) {
	fs := http.FileServer(http.Dir(store.Dir()))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", fs))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})
}
