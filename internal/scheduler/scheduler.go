// Package scheduler drives periodic sync passes and serializes manual
// triggers onto the same worker, so at most one pass is in flight.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shelfsyncapp/shelfsync-server/internal/syncer"
)

// PassRunner executes one sync pass.
type PassRunner interface {
	Run(ctx context.Context, force bool) (*syncer.Summary, error)
}

// Scheduler ticks at a fixed interval and runs a gated pass on every tick.
// Trigger queues an out-of-band pass; the worker picks it up between ticks.
type Scheduler struct {
	runner   PassRunner
	interval time.Duration
	logger   *slog.Logger

	trigger chan bool

	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
}

// New creates a scheduler. Start must be called before passes run.
func New(runner PassRunner, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		logger:   logger,
		trigger:  make(chan bool, 1),
		done:     make(chan struct{}),
	}
}

// Start launches the worker goroutine.
func (s *Scheduler) Start() {
	s.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		s.cancel = cancel
		go s.run(ctx)
	})
}

// Trigger requests a pass outside the regular tick. Returns false when a
// request is already queued; the queued pass covers this one too.
func (s *Scheduler) Trigger(force bool) bool {
	select {
	case s.trigger <- force:
		return true
	default:
		return false
	}
}

// Stop shuts the worker down and waits for an in-flight pass to finish.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
			<-s.done
		}
	})
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.pass(ctx, false)
		case force := <-s.trigger:
			s.pass(ctx, force)
		}
	}
}

func (s *Scheduler) pass(ctx context.Context, force bool) {
	if _, err := s.runner.Run(ctx, force); err != nil && ctx.Err() == nil {
		s.logger.Error("sync pass failed", "error", err)
	}
}
