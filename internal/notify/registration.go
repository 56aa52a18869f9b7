package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/coursewatch/coursewatch/internal/domain"
)

// TabOpener opens a URL in a fresh browser tab. The browser session
// implements it; tests use fakes.
type TabOpener interface {
	OpenTab(ctx context.Context, url string) error
}

// RegistrationPage pulls the registration destination up in a new tab the
// moment a course opens, so the user lands one click from registering.
type RegistrationPage struct {
	Logger *zap.Logger
	Opener TabOpener
	URL    string
}

func NewRegistrationPage(logger *zap.Logger, opener TabOpener, url string) *RegistrationPage {
	return &RegistrationPage{Logger: logger, Opener: opener, URL: url}
}

func (r *RegistrationPage) Alert(ctx context.Context, t domain.Transition) error {
	r.Logger.Info("opening_registration_page", zap.String("url", r.URL))
	if err := r.Opener.OpenTab(ctx, r.URL); err != nil {
		r.Logger.Warn("registration_page_failed", zap.Error(err))
		return fmt.Errorf("open registration tab: %w", err)
	}
	return nil
}
