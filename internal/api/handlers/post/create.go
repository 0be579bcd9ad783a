package post

import (
	"errors"
	"net/http"

	"github.com/openclique/feedline/internal/api/middleware"
	"github.com/openclique/feedline/internal/posts"
	"github.com/openclique/feedline/internal/uploads"
)

// CreateHandler handles post creation requests
type CreateHandler struct {
	service  posts.Service
	uploads  uploads.Store
	maxBytes int64
}

func NewCreateHandler(service posts.Service, uploads uploads.Store, maxBytes int64) *CreateHandler {
	return &CreateHandler{
		service:  service,
		uploads:  uploads,
		maxBytes: maxBytes,
	}
}

// HandleCreate handles POST /api/posts/create
// Accepts multipart form data: "text" (string) and "image" (optional file).
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	// The size cap covers the whole request body; oversized uploads are
	// rejected before the service sees them.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "Uploaded file too large (max 10 MiB)")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	text := r.FormValue("text")

	imageRef := ""
	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		imageRef, err = h.uploads.Save(r.Context(), header.Filename, file)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to store uploaded image")
			return
		}
	case errors.Is(err, http.ErrMissingFile):
		// text-only post
	default:
		writeError(w, http.StatusBadRequest, "Invalid image attachment")
		return
	}

	created, err := h.service.Create(r.Context(), identity.UserID, identity.Username, text, imageRef)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Post Created Successfully",
		"post":    created,
	})
}
