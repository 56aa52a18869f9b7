package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coursewatch/coursewatch/internal/browser"
	"github.com/coursewatch/coursewatch/internal/config"
	"github.com/coursewatch/coursewatch/internal/logging"
	"github.com/coursewatch/coursewatch/internal/notify"
	"github.com/coursewatch/coursewatch/internal/probe"
	"github.com/coursewatch/coursewatch/internal/scheduler"
	"github.com/coursewatch/coursewatch/internal/setup"
	"github.com/coursewatch/coursewatch/internal/store"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Start monitoring course sections",
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	sel, err := selectCourses(cfg, logger)
	if err != nil {
		// setup failures are handled: explain and stop cleanly
		logger.Error("setup_failed", zap.Error(err))
		return nil
	}
	courses := sel.Courses(cfg)

	logger.Info("coursewatch_starting",
		zap.String("semester", sel.Semester),
		zap.Strings("courses", sel.Codes),
	)

	// interrupt stops the loop; cleanup below still runs
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := browser.Launch(cfg, logger)
	if err != nil {
		logger.Error("browser_launch_failed", zap.Error(err))
		return nil
	}
	defer func() {
		logger.Info("closing_browser")
		if err := session.Close(); err != nil {
			logger.Warn("browser_close_errors", zap.Error(err))
		}
	}()

	first, err := session.Bootstrap(ctx, courses[0].URL)
	if err != nil {
		switch {
		case errors.Is(err, browser.ErrLoginTimeout):
			logger.Error("login_timeout", zap.Duration("deadline", cfg.LoginDeadline))
		case errors.Is(err, context.Canceled):
			logger.Info("interrupted_during_setup")
		default:
			logger.Error("bootstrap_failed", zap.Error(err))
		}
		return nil
	}
	courses[0].Page = first

	if len(courses) > 1 {
		urls := make([]string, 0, len(courses)-1)
		for _, c := range courses[1:] {
			urls = append(urls, c.URL)
		}
		tabs := session.OpenRemaining(ctx, urls)
		for i, tab := range tabs {
			if tab != nil {
				courses[i+1].Page = tab
			}
		}
	}

	checker := &probe.RetryChecker{
		Inner:    probe.NewPageChecker(logger),
		Attempts: cfg.ReadAttempts,
		Backoff:  cfg.ReadBackoff,
	}
	notifier := notify.Multi{
		notify.NewAlarm(logger, cfg.AlarmRepeats, cfg.AlarmGap),
		notify.NewRegistrationPage(logger, session, cfg.RegistrationURL),
	}

	scheduler.NewWatcher(logger, checker, notifier, cfg.CheckInterval).Run(ctx, courses)
	return nil
}

// selectCourses prefers the config saved by `coursewatch serve`; without
// one it falls back to the interactive prompts.
func selectCourses(cfg config.Config, logger *zap.Logger) (setup.Selection, error) {
	st := store.New(cfg.StorePath)
	if st.Exists() {
		if f, err := st.Load(); err == nil {
			logger.Info("using_saved_course_config",
				zap.String("path", st.Path),
				zap.String("last_updated", f.LastUpdated),
			)
			return setup.Parse(f.Semester, f.Courses)
		} else {
			logger.Warn("saved_course_config_unusable", zap.Error(err))
		}
	}
	return setup.Prompt(os.Stdin, os.Stdout)
}
