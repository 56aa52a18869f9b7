package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/coursewatch/coursewatch/internal/config"
)

// Tab wraps one course page. It implements domain.StatusPage for the watch
// loop and keeps all selector and timeout knowledge here.
type Tab struct {
	page playwright.Page
	cfg  config.Config
}

// Refresh reloads the page and waits for the network to go idle, bounded
// by the navigation timeout.
func (t *Tab) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := t.page.Reload(playwright.PageReloadOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   ms(t.cfg.NavTimeout),
	}); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	return nil
}

// ReadStatus returns the trimmed text of the first status cell, bounded by
// the read timeout. Normalization happens in the probe layer.
func (t *Tab) ReadStatus(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := t.page.Locator(t.cfg.StatusSelector).First().InnerText(
		playwright.LocatorInnerTextOptions{Timeout: ms(t.cfg.ReadTimeout)})
	if err != nil {
		return "", fmt.Errorf("status cell %s: %w", t.cfg.StatusSelector, err)
	}
	return strings.TrimSpace(text), nil
}

// StatusVisible reports whether the status cell is currently on screen,
// used as the login-completion signal during bootstrap.
func (t *Tab) StatusVisible() (bool, error) {
	return t.page.Locator(t.cfg.StatusSelector).First().IsVisible()
}

// Title returns the current page title.
func (t *Tab) Title() (string, error) {
	return t.page.Title()
}

// URL returns the tab's current address.
func (t *Tab) URL() string {
	return t.page.URL()
}
