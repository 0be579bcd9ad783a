package uploads

import (
	"context"
	"io"
)

// Store accepts post image attachments and persists them on disk under
// filesystem-safe, collision-resistant names.
type Store interface {
	// Save writes the attachment and returns the generated filename,
	// which the post carries as its imageUrl.
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)

	// Dir returns the directory uploads are stored in, for static serving.
	Dir() string

	// ScheduleOrphanSweep installs the daily job that removes files no
	// post references. It is a no-op unless enabled by configuration.
	ScheduleOrphanSweep(ctx context.Context) error
}
