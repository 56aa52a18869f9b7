package config

import (
	"testing"
	"time"
)

func TestFromEnv_ParsesAndDefaults(t *testing.T) {
	t.Setenv("WATCH_BASE_URL", "https://example.test/schedule/")
	t.Setenv("WATCH_INTERVAL_SECONDS", "60")
	t.Setenv("WATCH_READ_ATTEMPTS", "3")
	t.Setenv("ADDR", ":9090")
	t.Setenv("LOG_DIR", "./_testlogs")

	cfg := FromEnv()

	if cfg.BaseCourseURL != "https://example.test/schedule" {
		t.Fatalf("base URL not trimmed: %q", cfg.BaseCourseURL)
	}
	if cfg.CheckInterval != time.Minute {
		t.Fatalf("interval wrong: %v", cfg.CheckInterval)
	}
	if cfg.ReadAttempts != 3 {
		t.Fatalf("read attempts wrong: %d", cfg.ReadAttempts)
	}
	if cfg.Addr != ":9090" || cfg.LogDir != "./_testlogs" {
		t.Fatalf("addr/logdir wrong: %+v", cfg)
	}

	// defaults untouched by env
	if cfg.StatusSelector != `td[data-th="Status"]` {
		t.Fatalf("selector default wrong: %q", cfg.StatusSelector)
	}
	if cfg.LoginDeadline != 5*time.Minute {
		t.Fatalf("login deadline default wrong: %v", cfg.LoginDeadline)
	}
}

func TestFromEnv_IgnoresBadNumbers(t *testing.T) {
	t.Setenv("WATCH_INTERVAL_SECONDS", "not-a-number")
	t.Setenv("WATCH_READ_ATTEMPTS", "-2")

	cfg := FromEnv()
	if cfg.CheckInterval != 5*time.Minute {
		t.Fatalf("bad interval should keep default, got %v", cfg.CheckInterval)
	}
	if cfg.ReadAttempts != 1 {
		t.Fatalf("bad attempts should keep default, got %d", cfg.ReadAttempts)
	}
}

func TestCourseURL(t *testing.T) {
	cfg := FromEnv()
	cfg.BaseCourseURL = "https://example.test/schedule"
	got := cfg.CourseURL("20262", "56615")
	if got != "https://example.test/schedule/20262/56615/" {
		t.Fatalf("unexpected URL: %q", got)
	}
}

func TestTitleClassification(t *testing.T) {
	cfg := FromEnv()

	if !cfg.IsLoginTitle("Sign in with your UT EID") {
		t.Fatal("expected login title match")
	}
	if !cfg.IsLoginTitle("Stale Request") {
		t.Fatal("expected stale-request match")
	}
	if cfg.IsLoginTitle("UT Austin Registrar - Course Schedule") {
		t.Fatal("schedule title misclassified as login")
	}

	if !cfg.IsAuthenticatedTitle("UT Austin Registrar - Course Schedule") {
		t.Fatal("expected authenticated title match")
	}
	if cfg.IsAuthenticatedTitle("Sign in - UT Austin Registrar") {
		t.Fatal("login title misclassified as authenticated")
	}
}
