package probe

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/coursewatch/coursewatch/internal/domain"
)

// fake page you can script per call
type fakePage struct {
	refreshErr []error
	statuses   []string
	readErr    []error
	i          int
}

func (f *fakePage) Refresh(ctx context.Context) error {
	if f.i < len(f.refreshErr) && f.refreshErr[f.i] != nil {
		err := f.refreshErr[f.i]
		f.i++
		return err
	}
	return nil
}

func (f *fakePage) ReadStatus(ctx context.Context) (string, error) {
	defer func() { f.i++ }()
	if f.i < len(f.readErr) && f.readErr[f.i] != nil {
		return "", f.readErr[f.i]
	}
	if f.i < len(f.statuses) {
		return f.statuses[f.i], nil
	}
	return "", errors.New("no more")
}

func TestPageChecker_NormalizesStatus(t *testing.T) {
	c := domain.NewCourse("1", "u")
	c.Page = &fakePage{statuses: []string{"  Closed "}}

	out := NewPageChecker(zap.NewNop()).Check(context.Background(), c)
	if !out.OK {
		t.Fatalf("expected OK, got %+v", out)
	}
	if out.Status != "closed" {
		t.Fatalf("expected normalized status, got %q", out.Status)
	}
}

func TestPageChecker_ReloadFailureIsNotOK(t *testing.T) {
	c := domain.NewCourse("1", "u")
	c.Page = &fakePage{refreshErr: []error{errors.New("timeout")}}

	out := NewPageChecker(zap.NewNop()).Check(context.Background(), c)
	if out.OK {
		t.Fatalf("expected failure, got %+v", out)
	}
	if out.Reason == "" {
		t.Fatalf("expected reason to be set")
	}
}

func TestPageChecker_MissingPage(t *testing.T) {
	c := domain.NewCourse("1", "u")
	out := NewPageChecker(zap.NewNop()).Check(context.Background(), c)
	if out.OK {
		t.Fatalf("expected failure for detached course")
	}
}

// fake checker you can control
type fakeChecker struct {
	results []Result
	i       int
}

func (f *fakeChecker) Check(ctx context.Context, c *domain.Course) Result {
	if f.i >= len(f.results) {
		return Result{OK: false, Reason: "no more"}
	}
	r := f.results[f.i]
	f.i++
	return r
}

func TestRetryChecker_SucceedsAfterRetry(t *testing.T) {
	f := &fakeChecker{results: []Result{
		{OK: false, Reason: "first fail"},
		{OK: true, Status: "open"},
	}}
	rc := &RetryChecker{Inner: f, Attempts: 3, Backoff: 5 * time.Millisecond}

	out := rc.Check(context.Background(), domain.NewCourse("1", "u"))
	if !out.OK || out.Status != "open" {
		t.Fatalf("expected success after retry, got %+v", out)
	}
}

func TestRetryChecker_AllFailAnnotates(t *testing.T) {
	f := &fakeChecker{results: []Result{
		{OK: false, Reason: "fail1"},
		{OK: false, Reason: "fail2"},
	}}
	rc := &RetryChecker{Inner: f, Attempts: 2, Backoff: 0}

	out := rc.Check(context.Background(), domain.NewCourse("1", "u"))
	if out.OK {
		t.Fatalf("expected failure, got success")
	}
	if out.Reason != "fail2 (after retries)" {
		t.Fatalf("expected annotation, got %q", out.Reason)
	}
}

func TestRetryChecker_SingleAttemptPassesThrough(t *testing.T) {
	f := &fakeChecker{results: []Result{{OK: false, Reason: "miss"}}}
	rc := &RetryChecker{Inner: f, Attempts: 1}

	out := rc.Check(context.Background(), domain.NewCourse("1", "u"))
	if out.Reason != "miss" {
		t.Fatalf("expected untouched reason, got %q", out.Reason)
	}
}
