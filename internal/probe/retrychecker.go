package probe

import (
	"context"
	"time"

	"github.com/coursewatch/coursewatch/internal/domain"
)

// RetryChecker re-attempts failed reads within one round. With Attempts=1
// it is a pass-through, which is the default: a transient miss is then
// reported to the loop as-is and simply skipped for that cycle.
type RetryChecker struct {
	Inner    Checker
	Attempts int
	Backoff  time.Duration
}

func (r *RetryChecker) Check(ctx context.Context, c *domain.Course) Result {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var last Result
	for i := 0; i < attempts; i++ {
		last = r.Inner.Check(ctx, c)
		if last.OK {
			return last
		}
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				last.Reason = last.Reason + " (interrupted)"
				return last
			case <-time.After(r.Backoff):
			}
		}
	}
	if attempts > 1 {
		last.Reason = last.Reason + " (after retries)"
	}
	return last
}
