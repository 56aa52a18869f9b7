// Package browser owns the Playwright session: dual-engine launch, the
// manual-login bootstrap, tab fan-out with popup capture, and guaranteed
// teardown. Everything above it talks to tabs through small interfaces.
package browser

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/coursewatch/coursewatch/internal/config"
)

// ErrLoginTimeout is returned when the user never completes the manual
// login inside the configured deadline. It is fatal to the whole run.
var ErrLoginTimeout = errors.New("timed out waiting for login")

// chromiumArgs harden the fallback engine: the schedule site sits behind
// SSO that rejects obvious automation, and sandboxing breaks headed
// Chromium on some hosts.
var chromiumArgs = []string{
	"--disable-blink-features=AutomationControlled",
	"--disable-dev-shm-usage",
	"--no-sandbox",
	"--disable-setuid-sandbox",
}

// Launch starts Playwright and opens a visible browser with one context.
// Firefox is tried first; on failure Chromium is launched with hardened
// flags. Both engines failing is fatal and the error names both causes.
func Launch(cfg config.Config, logger *zap.Logger) (*Session, error) {
	runOpts := &playwright.RunOptions{
		Browsers: []string{"firefox", "chromium"},
		Verbose:  false,
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	}
	if err := playwright.Install(runOpts); err != nil {
		return nil, fmt.Errorf("install playwright browsers: %w", err)
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	br, err := launchEngine(pw, logger)
	if err != nil {
		_ = pw.Stop()
		return nil, err
	}

	bctx, err := br.NewContext()
	if err != nil {
		_ = br.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("create browser context: %w", err)
	}

	return &Session{
		cfg:     cfg,
		logger:  logger,
		pw:      pw,
		browser: br,
		bctx:    bctx,
	}, nil
}

func launchEngine(pw *playwright.Playwright, logger *zap.Logger) (playwright.Browser, error) {
	logger.Info("launching_firefox")
	br, ffErr := pw.Firefox.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(false),
	})
	if ffErr == nil {
		logger.Info("browser_ready", zap.String("engine", "firefox"))
		return br, nil
	}

	logger.Warn("firefox_launch_failed", zap.Error(ffErr))
	logger.Info("launching_chromium_fallback")
	br, crErr := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(false),
		Args:     chromiumArgs,
	})
	if crErr == nil {
		logger.Info("browser_ready", zap.String("engine", "chromium"))
		return br, nil
	}

	return nil, fmt.Errorf(
		"both engines failed to launch (run `go run github.com/playwright-community/playwright-go/cmd/playwright install firefox` to install): firefox: %v; chromium: %v",
		ffErr, crErr)
}

// ms converts a duration into the millisecond float Playwright options take.
func ms(d time.Duration) *float64 { return playwright.Float(float64(d.Milliseconds())) }
