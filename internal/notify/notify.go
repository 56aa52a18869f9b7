package notify

import (
	"context"

	"github.com/coursewatch/coursewatch/internal/domain"
)

// Notifier raises one alert for a closed→open transition. Implementations
// must be best-effort: whatever they return, the watch loop keeps going.
type Notifier interface {
	Alert(ctx context.Context, t domain.Transition) error
}

// Multi runs every notifier in order and reports the first error, so one
// broken alert channel never silences the rest.
type Multi []Notifier

func (m Multi) Alert(ctx context.Context, t domain.Transition) error {
	var firstErr error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Alert(ctx, t); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
