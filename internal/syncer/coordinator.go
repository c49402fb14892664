package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shelfsyncapp/shelfsync-server/internal/source"
)

// RefreshState persists the last-refresh timestamp between sync passes.
// The minimum-interval half of the refresh policy lives in config.
type RefreshState interface {
	LastRefreshedAt(ctx context.Context) (time.Time, error)
	SetLastRefreshedAt(ctx context.Context, t time.Time) error
}

// Coordinator drives full sync passes: gate check, then each registered
// source in order, with per-source failure isolation. Only a failure to
// enumerate sources surfaces as an overall error.
type Coordinator struct {
	provider source.Provider
	runner   *Runner
	refresh  RefreshState

	// minInterval gates non-forced passes.
	minInterval time.Duration

	logger *slog.Logger

	mu   sync.Mutex
	last *Summary
}

// NewCoordinator creates a sync coordinator.
func NewCoordinator(provider source.Provider, runner *Runner, refresh RefreshState, minInterval time.Duration, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		provider:    provider,
		runner:      runner,
		refresh:     refresh,
		minInterval: minInterval,
		logger:      logger,
	}
}

// Run executes one sync pass. When the refresh gate says the pass is not due
// and force is unset, it returns immediately with a skipped summary and no
// work performed.
//
// Per-source failures are recorded in the summary, never returned: the next
// scheduled pass retries them naturally.
func (c *Coordinator) Run(ctx context.Context, force bool) (*Summary, error) {
	now := time.Now()

	lastRefreshed, err := c.refresh.LastRefreshedAt(ctx)
	if err != nil {
		// Treat an unreadable timestamp as "never refreshed": the pass runs
		// and rewrites it.
		c.logger.Warn("could not read last refresh time", "error", err)
		lastRefreshed = time.Time{}
	}

	summary := &Summary{StartedAt: now, Forced: force}

	if !ShouldRun(force, lastRefreshed, c.minInterval, now) {
		summary.Skipped = true
		summary.FinishedAt = time.Now()
		c.record(summary)
		c.logger.Debug("sync not due, skipping",
			"last_refreshed", lastRefreshed,
			"min_interval", c.minInterval,
		)
		return summary, nil
	}

	sources, err := c.provider.Sources(ctx)
	if err != nil {
		summary.FinishedAt = time.Now()
		c.record(summary)
		return summary, fmt.Errorf("enumerate sources: %w", err)
	}

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			// Cancellation mid-pass leaves earlier sources synced; idempotent
			// upserts make the partial pass safe to repeat.
			summary.FinishedAt = time.Now()
			c.record(summary)
			return summary, err
		}
		summary.Sources = append(summary.Sources, c.runner.Sync(ctx, src))
	}

	if err := c.refresh.SetLastRefreshedAt(ctx, now); err != nil {
		c.logger.Warn("could not persist last refresh time", "error", err)
	}

	summary.FinishedAt = time.Now()
	c.record(summary)

	c.logger.LogAttrs(ctx, slog.LevelInfo, "sync pass complete",
		slog.Int("sources", len(summary.Sources)),
		slog.Int("failed", summary.FailedSources()),
		slog.Bool("forced", force),
	)
	return summary, nil
}

// LastSummary returns the most recent pass summary, or nil before any pass.
func (c *Coordinator) LastSummary() *Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

func (c *Coordinator) record(s *Summary) {
	c.mu.Lock()
	c.last = s
	c.mu.Unlock()
}
