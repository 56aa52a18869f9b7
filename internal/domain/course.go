package domain

import (
	"context"
	"strings"
)

// StatusClosed is the only baseline a transition can alert from. Statuses
// are compared normalized, so any capitalization on the page still matches.
const StatusClosed = "closed"

// StatusPage is the handle a course keeps to its browser tab. The real
// implementation lives in internal/browser; tests substitute fakes.
type StatusPage interface {
	// Refresh reloads the page and waits for it to settle.
	Refresh(ctx context.Context) error
	// ReadStatus returns the trimmed status-cell text, unnormalized.
	ReadStatus(ctx context.Context) (string, error)
}

// Course is one monitored section. LastStatus is the baseline for edge
// detection: empty until the first successful read, then always the most
// recent successfully read status. Only the watch loop mutates it.
type Course struct {
	Code       string
	Name       string
	URL        string
	Page       StatusPage
	LastStatus string
}

func NewCourse(code, url string) *Course {
	return &Course{
		Code: code,
		Name: "Course " + code,
		URL:  url,
	}
}

// Observe folds a successful read into the baseline and reports whether it
// was the alert-worthy edge: the baseline was exactly "closed" and the new
// status is anything else. The baseline is adopted before the caller can
// dispatch anything, so the same edge can never fire twice.
func (c *Course) Observe(status string) (transitioned bool) {
	status = NormalizeStatus(status)
	if status == "" {
		return false
	}
	transitioned = c.LastStatus == StatusClosed && status != StatusClosed
	c.LastStatus = status
	return transitioned
}

// Seeded reports whether the course has an established baseline.
func (c *Course) Seeded() bool { return c.LastStatus != "" }

// Transition describes one closed→non-closed edge for alerting.
type Transition struct {
	Course   *Course
	Previous string
	Current  string
}

// NormalizeStatus lower-cases and trims a raw status cell text so that
// comparisons and the "closed" check are byte-stable.
func NormalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
