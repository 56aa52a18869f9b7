package probe

import (
	"context"

	"go.uber.org/zap"

	"github.com/coursewatch/coursewatch/internal/domain"
)

// PageChecker reads a course's status out of its live browser tab: reload,
// wait for the page to settle, then read the status cell. Every failure is
// folded into the Result so the watch loop never sees an error value.
type PageChecker struct {
	Logger *zap.Logger
}

func NewPageChecker(logger *zap.Logger) *PageChecker {
	return &PageChecker{Logger: logger}
}

func (p *PageChecker) Check(ctx context.Context, c *domain.Course) Result {
	if c.Page == nil {
		return Result{OK: false, Reason: "no page attached"}
	}

	if err := c.Page.Refresh(ctx); err != nil {
		p.Logger.Warn("course_reload_failed",
			zap.String("course", c.Code),
			zap.String("url", c.URL),
			zap.Error(err),
		)
		return Result{OK: false, Reason: "reload: " + err.Error()}
	}

	raw, err := c.Page.ReadStatus(ctx)
	if err != nil {
		p.Logger.Warn("status_read_failed",
			zap.String("course", c.Code),
			zap.String("url", c.URL),
			zap.Error(err),
		)
		return Result{OK: false, Reason: "read: " + err.Error()}
	}

	status := domain.NormalizeStatus(raw)
	if status == "" {
		return Result{OK: false, Reason: "empty status cell"}
	}
	return Result{Status: status, OK: true}
}
