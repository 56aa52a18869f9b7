package probe

import (
	"context"

	"github.com/coursewatch/coursewatch/internal/domain"
)

// Result is the unified outcome of a single status read.
//
// Fields:
// - Status: normalized (trimmed, lower-cased) status cell text; empty when OK is false.
// - OK: false means "unreadable this cycle" and must never touch the baseline.
// - Reason: short failure cause for the logs.
type Result struct {
	Status string
	OK     bool
	Reason string
}

// Checker performs a single status check for one course.
type Checker interface {
	Check(ctx context.Context, c *domain.Course) Result
}
