package uploadsimpl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// ScheduleOrphanSweep sets up a daily job that deletes upload files no post
// references. Deleting a post deliberately leaves its image in place, so
// this sweep is the only reclamation path and it is off by default.
func (u *UploadsImpl) ScheduleOrphanSweep(ctx context.Context) error {
	if !u.Config.Uploads.JanitorEnabled {
		u.Logger.Info("Upload janitor disabled, orphaned files are kept")
		return nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create janitor scheduler: %w", err)
	}

	// Runs at 3:00 AM every day
	_, err = scheduler.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0)),
		),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				u.Logger.Info("Context cancelled, stopping upload sweep job")
				return
			}

			u.Logger.Info("Starting scheduled upload sweep")

			sweepCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
			defer cancel()

			removed, err := u.sweepOrphans(sweepCtx)
			if err != nil {
				u.Logger.Error("Upload sweep failed", "error", err)
				return
			}

			u.Logger.Info("Upload sweep completed", "files_removed", removed)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule upload sweep: %w", err)
	}

	scheduler.Start()

	go func() {
		<-ctx.Done()
		u.Logger.Info("Stopping upload sweep scheduler")
		if err := scheduler.Shutdown(); err != nil {
			u.Logger.Error("Failed to shut down upload sweep scheduler", "error", err)
		}
	}()

	return nil
}

func (u *UploadsImpl) sweepOrphans(ctx context.Context) (int, error) {
	posts, err := u.Repo.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	referenced := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		if p.ImageURL != "" {
			referenced[p.ImageURL] = struct{}{}
		}
	}

	entries, err := os.ReadDir(u.Config.Uploads.Dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := referenced[entry.Name()]; ok {
			continue
		}
		if err := os.Remove(filepath.Join(u.Config.Uploads.Dir, entry.Name())); err != nil {
			u.Logger.Warn("Failed to remove orphaned upload", "file", entry.Name(), "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}
