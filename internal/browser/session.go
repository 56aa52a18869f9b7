package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/coursewatch/coursewatch/internal/config"
)

// Session is the one browser process + context every course tab lives in.
// It owns the lifetime of all tabs; Close tears the whole tree down and is
// safe to defer on every exit path.
type Session struct {
	cfg     config.Config
	logger  *zap.Logger
	pw      *playwright.Playwright
	browser playwright.Browser
	bctx    playwright.BrowserContext

	first *Tab
	tabs  []*Tab
}

// Bootstrap opens the first course page and, if the site bounces us to the
// SSO login, polls until the user finishes signing in by hand. Login is
// inherently interactive (credentials, 2FA), so this never blocks on input:
// it watches the page itself — status cell visible, or the title flipping
// to the authenticated site — on a bounded schedule.
func (s *Session) Bootstrap(ctx context.Context, firstURL string) (*Tab, error) {
	page, err := s.bctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("open first page: %w", err)
	}
	tab := s.track(page)
	s.first = tab

	s.logger.Info("navigating_first_course", zap.String("url", firstURL))
	if _, err := page.Goto(firstURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   ms(s.cfg.NavTimeout),
	}); err != nil {
		return nil, fmt.Errorf("navigate to %s: %w", firstURL, err)
	}

	title, err := page.Title()
	if err != nil {
		return nil, fmt.Errorf("read page title: %w", err)
	}

	if !s.cfg.IsLoginTitle(title) {
		s.logger.Info("already_authenticated", zap.String("title", title))
		return tab, nil
	}

	s.logger.Info("waiting_for_manual_login",
		zap.Duration("deadline", s.cfg.LoginDeadline))

	signal, err := pollLogin(ctx, s.cfg, tab.StatusVisible, page.Title)
	if err != nil {
		return nil, err
	}
	s.logger.Info("login_detected", zap.String("signal", signal))
	return tab, nil
}

// pollLogin watches the page for either completion signal on a bounded
// schedule: the status cell becoming visible, or the title flipping to the
// authenticated site. It returns which signal won, ErrLoginTimeout once the
// deadline passes with neither, or the context error on interrupt.
func pollLogin(ctx context.Context, cfg config.Config, statusVisible func() (bool, error), title func() (string, error)) (string, error) {
	deadline := time.Now().Add(cfg.LoginDeadline)
	ticker := time.NewTicker(cfg.LoginPoll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}

		if visible, err := statusVisible(); err == nil && visible {
			return "status_cell", nil
		}
		if current, err := title(); err == nil && cfg.IsAuthenticatedTitle(current) {
			return "title", nil
		}

		if time.Now().After(deadline) {
			return "", ErrLoginTimeout
		}
	}
}

// OpenRemaining fans the authenticated session out to one tab per extra
// course URL. Each tab gets one verification read, log-only: a course that
// fails to verify stays tracked with no baseline and gets picked up on a
// later round. A popup-capture failure falls back to a directly created
// page, so partial failure still yields one tab per course.
func (s *Session) OpenRemaining(ctx context.Context, urls []string) []*Tab {
	out := make([]*Tab, 0, len(urls))
	for i, url := range urls {
		if ctx.Err() != nil {
			break
		}
		s.logger.Info("opening_course_tab",
			zap.Int("tab", i+2),
			zap.String("url", url),
		)

		tab, err := s.openViaPopup(url)
		if err != nil {
			s.logger.Warn("popup_open_failed", zap.String("url", url), zap.Error(err))
			tab, err = s.openDirect(url)
			if err != nil {
				s.logger.Warn("direct_open_failed", zap.String("url", url), zap.Error(err))
			}
		}
		out = append(out, tab)
		if tab == nil {
			continue
		}

		if raw, err := tab.ReadStatus(ctx); err != nil {
			s.logger.Warn("course_tab_unverified", zap.String("url", url), zap.Error(err))
		} else {
			s.logger.Info("course_tab_ready",
				zap.String("url", url),
				zap.String("status", raw),
			)
		}
	}
	return out
}

// OpenTab opens an extra tab (the registration page on alert) using the
// same popup-capture path as fan-out, with direct navigation as fallback.
func (s *Session) OpenTab(ctx context.Context, url string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if _, err := s.openViaPopup(url); err == nil {
		return nil
	}
	_, err := s.openDirect(url)
	return err
}

// openViaPopup triggers window.open on the first tab and captures the
// resulting popup handle. New tabs opened this way inherit the session the
// user logged in with.
func (s *Session) openViaPopup(url string) (*Tab, error) {
	if s.first == nil {
		return nil, fmt.Errorf("no bootstrap tab to open popups from")
	}
	popup, err := s.first.page.ExpectPopup(func() error {
		_, evalErr := s.first.page.Evaluate(`url => window.open(url, "_blank")`, url)
		return evalErr
	}, playwright.PageExpectPopupOptions{Timeout: ms(s.cfg.NavTimeout)})
	if err != nil {
		return nil, fmt.Errorf("capture popup: %w", err)
	}

	if err := popup.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: ms(s.cfg.NavTimeout),
	}); err != nil {
		// tab exists and is tracked; it just has not settled yet
		s.logger.Warn("popup_load_incomplete", zap.String("url", url), zap.Error(err))
	}
	return s.track(popup), nil
}

func (s *Session) openDirect(url string) (*Tab, error) {
	page, err := s.bctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   ms(s.cfg.NavTimeout),
	}); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("navigate fallback page: %w", err)
	}
	return s.track(page), nil
}

func (s *Session) track(page playwright.Page) *Tab {
	tab := &Tab{page: page, cfg: s.cfg}
	s.tabs = append(s.tabs, tab)
	return tab
}

// Close tears down every tab, the context, the browser process, and the
// Playwright driver. Individual failures are collected rather than
// short-circuiting so nothing downstream is left orphaned.
func (s *Session) Close() error {
	var errs error
	for _, t := range s.tabs {
		errs = multierr.Append(errs, t.page.Close())
	}
	s.tabs = nil
	s.first = nil
	if s.bctx != nil {
		errs = multierr.Append(errs, s.bctx.Close())
	}
	if s.browser != nil {
		errs = multierr.Append(errs, s.browser.Close())
	}
	if s.pw != nil {
		errs = multierr.Append(errs, s.pw.Stop())
	}
	return errs
}
