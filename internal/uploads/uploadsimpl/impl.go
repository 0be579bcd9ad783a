package uploadsimpl

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	postrepo "github.com/openclique/feedline/internal/repositories/posts"
	"github.com/openclique/feedline/internal/uploads"
	"github.com/openclique/feedline/pkg/config"
	"github.com/openclique/feedline/pkg/logger"
	"go.uber.org/fx"
)

var (
	unsafeChars    = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
	underscoreRuns = regexp.MustCompile(`_+`)
)

type Opts struct {
	fx.In

	Repo   postrepo.Repository
	Logger logger.Logger
	Config *config.Config
}

type UploadsImpl struct {
	Repo   postrepo.Repository
	Logger logger.Logger
	Config *config.Config
}

func New(opts Opts) *UploadsImpl {
	return &UploadsImpl{
		Repo:   opts.Repo,
		Logger: opts.Logger.WithComponent("UploadStore"),
		Config: opts.Config,
	}
}

var _ uploads.Store = (*UploadsImpl)(nil)

// sanitizeName makes a client-supplied filename filesystem-safe: every
// character outside [A-Za-z0-9.-] becomes "_", runs of "_" collapse to one,
// and the result is lowercased.
func sanitizeName(name string) string {
	name = unsafeChars.ReplaceAllString(name, "_")
	name = underscoreRuns.ReplaceAllString(name, "_")
	return strings.ToLower(name)
}

// Save writes the attachment under a millisecond-timestamp-prefixed name.
// Two uploads in the same millisecond with the same sanitized name can
// still collide; accepted as a low-probability risk.
func (u *UploadsImpl) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	dir := u.Config.Uploads.Dir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create uploads dir: %w", err)
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeName(originalName))

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	u.Logger.Info("Stored upload", "file", name)
	return name, nil
}

// Dir returns the directory uploads are stored in.
func (u *UploadsImpl) Dir() string {
	return u.Config.Uploads.Dir
}
