package providers

import (
	"time"

	"github.com/samber/do/v2"

	"github.com/shelfsyncapp/shelfsync-server/internal/config"
	"github.com/shelfsyncapp/shelfsync-server/internal/logger"
	"github.com/shelfsyncapp/shelfsync-server/internal/scheduler"
	"github.com/shelfsyncapp/shelfsync-server/internal/source/filesystem"
	"github.com/shelfsyncapp/shelfsync-server/internal/syncer"
)

// watchDebounce batches filesystem events before forcing a pass, so a
// multi-file copy triggers one sync instead of dozens.
const watchDebounce = 5 * time.Second

// SchedulerHandle wraps the sync scheduler with shutdown capability.
type SchedulerHandle struct {
	*scheduler.Scheduler
}

// Shutdown implements do.Shutdownable.
func (h *SchedulerHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideScheduler provides the started sync scheduler.
func ProvideScheduler(i do.Injector) (*SchedulerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	coordinator := do.MustInvoke[*syncer.Coordinator](i)
	log := do.MustInvoke[*logger.Logger](i)

	sched := scheduler.New(coordinator, cfg.Sync.PollInterval, log.Logger)
	sched.Start()

	log.Info("Sync scheduler started",
		"poll_interval", cfg.Sync.PollInterval,
		"min_interval", cfg.Sync.MinInterval,
	)

	return &SchedulerHandle{Scheduler: sched}, nil
}

// LibraryWatcherHandle wraps the library watcher with shutdown capability.
type LibraryWatcherHandle struct {
	watcher *filesystem.Watcher
}

// Shutdown implements do.Shutdownable.
func (h *LibraryWatcherHandle) Shutdown() error {
	if h.watcher == nil {
		return nil
	}
	return h.watcher.Close()
}

// ProvideLibraryWatcher provides the filesystem watcher that forces a sync
// pass when the library changes. Returns a nil-watcher handle when watching
// is disabled or no library is configured.
func ProvideLibraryWatcher(i do.Injector) (*LibraryWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	schedHandle := do.MustInvoke[*SchedulerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Library.Path == "" || !cfg.Library.Watch {
		return &LibraryWatcherHandle{}, nil
	}

	w, err := filesystem.NewWatcher(cfg.Library.Path, watchDebounce, func() {
		schedHandle.Trigger(true)
	}, log.Logger)
	if err != nil {
		// A broken watcher degrades to interval-only syncing.
		log.Warn("Library watcher unavailable", "error", err)
		return &LibraryWatcherHandle{}, nil
	}

	log.Info("Library watcher started", "path", cfg.Library.Path)

	return &LibraryWatcherHandle{watcher: w}, nil
}
