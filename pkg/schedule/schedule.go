// Package schedule runs registered functions on fixed intervals.
//
//	s := schedule.New()
//	s.Every(15*time.Minute, "dashboard:rewarm", dashboardService.RefreshDashboardCache)
//	s.Start(ctx)
package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/shashiranjanraj/repwear/pkg/logger"
)

type entry struct {
	name     string
	interval time.Duration
	fn       func(context.Context) error
}

// Scheduler holds a set of periodic tasks.
type Scheduler struct {
	mu      sync.Mutex
	entries []entry
	started bool
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Every registers fn to run on the given interval. The first run happens
// one interval after Start, not immediately.
func (s *Scheduler) Every(interval time.Duration, name string, fn func(context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry{name: name, interval: interval, fn: fn})
}

// Start launches one goroutine per registered task. Tasks run until ctx is
// cancelled. Start is a no-op if called twice.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	for _, e := range s.entries {
		go s.run(ctx, e)
	}
	logger.Info("schedule: started", "tasks", len(s.entries))
}

func (s *Scheduler) run(ctx context.Context, e entry) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			if err := safeCall(ctx, e.fn); err != nil {
				logger.Error("schedule: task failed", "task", e.name, "error", err)
				continue
			}
			logger.Debug("schedule: task ran", "task", e.name, "duration", time.Since(start))
		}
	}
}

// safeCall recovers panics so a bad task cannot kill its schedule loop.
func safeCall(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("schedule: task panicked", "panic", r)
		}
	}()
	return fn(ctx)
}
