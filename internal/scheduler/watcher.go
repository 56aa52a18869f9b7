package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/coursewatch/coursewatch/internal/domain"
	"github.com/coursewatch/coursewatch/internal/notify"
	"github.com/coursewatch/coursewatch/internal/probe"
)

// Watcher is the monitoring loop: a seed pass to establish baselines, then
// one sequential check round per tick. Courses are checked in fixed order
// and all per-course failures are isolated to that course and that round.
type Watcher struct {
	Logger   *zap.Logger
	Checker  probe.Checker
	Notifier notify.Notifier
	Interval time.Duration
}

func NewWatcher(logger *zap.Logger, checker probe.Checker, notifier notify.Notifier, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Watcher{
		Logger:   logger,
		Checker:  checker,
		Notifier: notifier,
		Interval: interval,
	}
}

// Run blocks until ctx is cancelled. The first pass seeds each course's
// baseline without alerting; every tick after that is a full edge-checked
// round. The inter-round sleep is the only long suspension and it is cut
// short by cancellation.
func (w *Watcher) Run(ctx context.Context, courses []*domain.Course) {
	w.Seed(ctx, courses)

	w.Logger.Info("watch_started",
		zap.Int("courses", len(courses)),
		zap.Duration("interval", w.Interval),
	)

	t := time.NewTicker(w.Interval)
	defer t.Stop()

	round := 0
	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("watch_stopped", zap.Int("rounds", round))
			return
		case <-t.C:
			round++
			w.Logger.Info("watch_round", zap.Int("round", round))
			w.checkOnce(ctx, courses)
		}
	}
}

// Seed performs the initial snapshot. Transitions are only meaningful
// relative to an established baseline, so nothing can alert here; courses
// that fail to read stay unseeded and pick up a baseline on a later round.
func (w *Watcher) Seed(ctx context.Context, courses []*domain.Course) {
	for _, c := range courses {
		if ctx.Err() != nil {
			return
		}
		out := w.Checker.Check(ctx, c)
		if !out.OK {
			w.Logger.Warn("seed_unreadable",
				zap.String("course", c.Code),
				zap.String("reason", out.Reason),
			)
			continue
		}
		c.LastStatus = out.Status
		w.Logger.Info("seed_status",
			zap.String("course", c.Code),
			zap.String("status", out.Status),
		)
	}
}

func (w *Watcher) checkOnce(ctx context.Context, courses []*domain.Course) {
	for _, c := range courses {
		if ctx.Err() != nil {
			return
		}

		out := w.Checker.Check(ctx, c)
		if !out.OK {
			// transient: baseline untouched, next course
			w.Logger.Warn("course_check_skipped",
				zap.String("course", c.Code),
				zap.String("reason", out.Reason),
			)
			continue
		}

		prev := c.LastStatus
		if !c.Observe(out.Status) {
			w.Logger.Debug("course_checked",
				zap.String("course", c.Code),
				zap.String("status", out.Status),
			)
			continue
		}

		// the closed -> non-closed edge; baseline already moved in Observe
		w.Logger.Info("status_changed",
			zap.String("course", c.Code),
			zap.String("previous", prev),
			zap.String("current", out.Status),
			zap.String("url", c.URL),
		)

		tr := domain.Transition{Course: c, Previous: prev, Current: out.Status}
		if err := w.Notifier.Alert(ctx, tr); err != nil {
			// alerting is best-effort; the loop must outlive any notifier
			w.Logger.Warn("alert_failed",
				zap.String("course", c.Code),
				zap.Error(err),
			)
		}
	}
}
