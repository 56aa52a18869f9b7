package notify

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coursewatch/coursewatch/internal/domain"
)

type countNotifier struct {
	n   int
	err error
}

func (c *countNotifier) Alert(ctx context.Context, t domain.Transition) error {
	c.n++
	return c.err
}

type fakeOpener struct {
	urls []string
	err  error
}

func (f *fakeOpener) OpenTab(ctx context.Context, url string) error {
	f.urls = append(f.urls, url)
	return f.err
}

func transition() domain.Transition {
	c := domain.NewCourse("56615", "https://example.test/20262/56615/")
	c.LastStatus = "open"
	return domain.Transition{Course: c, Previous: "closed", Current: "open"}
}

func TestMulti_RunsAllAndKeepsFirstError(t *testing.T) {
	a := &countNotifier{err: errors.New("first")}
	b := &countNotifier{err: errors.New("second")}
	c := &countNotifier{}

	err := Multi{a, nil, b, c}.Alert(context.Background(), transition())

	require.Error(t, err)
	assert.Equal(t, "first", err.Error())
	assert.Equal(t, 1, a.n)
	assert.Equal(t, 1, b.n)
	assert.Equal(t, 1, c.n, "later notifiers still run after a failure")
}

func TestRegistrationPage_OpensConfiguredURL(t *testing.T) {
	op := &fakeOpener{}
	r := NewRegistrationPage(zap.NewNop(), op, "https://example.test/register")

	err := r.Alert(context.Background(), transition())

	require.NoError(t, err)
	require.Len(t, op.urls, 1)
	assert.Equal(t, "https://example.test/register", op.urls[0])
}

func TestRegistrationPage_ReportsOpenFailure(t *testing.T) {
	op := &fakeOpener{err: errors.New("popup blocked")}
	r := NewRegistrationPage(zap.NewNop(), op, "https://example.test/register")

	err := r.Alert(context.Background(), transition())
	assert.Error(t, err)
}

func TestAlarm_SurvivesMissingPlaybackBinaries(t *testing.T) {
	a := NewAlarm(zap.NewNop(), 2, 0)
	// point at binaries that cannot exist so Start fails on any platform
	a.soundCmd = func() *exec.Cmd { return exec.Command("/nonexistent/afplay") }
	a.speechCmd = func(message string) *exec.Cmd { return exec.Command("/nonexistent/say", message) }

	assert.NoError(t, a.Alert(context.Background(), transition()))
}
