package notify

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/coursewatch/coursewatch/internal/domain"
)

// Alarm gets the user's attention locally: a burst of terminal bells plus
// a system alert sound per cue, then a spoken message naming the course and
// its new status. Sound and speech shell out to whatever the platform has
// (afplay/say on macOS, paplay/espeak elsewhere) and every sub-step is
// fire-and-forget; a machine with no audio still gets the bells.
type Alarm struct {
	Logger  *zap.Logger
	Repeats int
	Gap     time.Duration

	soundCmd  func() *exec.Cmd
	speechCmd func(message string) *exec.Cmd
}

func NewAlarm(logger *zap.Logger, repeats int, gap time.Duration) *Alarm {
	if repeats < 1 {
		repeats = 1
	}
	a := &Alarm{Logger: logger, Repeats: repeats, Gap: gap}
	if runtime.GOOS == "darwin" {
		a.soundCmd = func() *exec.Cmd {
			return exec.Command("afplay", "/System/Library/Sounds/Sosumi.aiff")
		}
		a.speechCmd = func(message string) *exec.Cmd {
			return exec.Command("say", message)
		}
	} else {
		a.soundCmd = func() *exec.Cmd {
			return exec.Command("paplay", "/usr/share/sounds/freedesktop/stereo/complete.oga")
		}
		a.speechCmd = func(message string) *exec.Cmd {
			return exec.Command("espeak", message)
		}
	}
	return a
}

func (a *Alarm) Alert(ctx context.Context, t domain.Transition) error {
	a.Logger.Info("alarm_ringing", zap.String("course", t.Course.Code))

	for i := 0; i < a.Repeats; i++ {
		fmt.Fprint(os.Stdout, "\a")
		a.startQuietly(a.soundCmd())

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(a.Gap):
		}
	}

	message := fmt.Sprintf("Alert! %s is now %s. Check registration immediately!",
		t.Course.Name, t.Current)
	a.startQuietly(a.speechCmd(message))

	return nil
}

// startQuietly launches a playback command without waiting for it and
// swallows spawn errors; a missing binary must never stop the watch loop.
func (a *Alarm) startQuietly(cmd *exec.Cmd) {
	if cmd == nil {
		return
	}
	if err := cmd.Start(); err != nil {
		a.Logger.Debug("alarm_playback_unavailable",
			zap.String("command", cmd.Path),
			zap.Error(err),
		)
		return
	}
	go func() { _ = cmd.Wait() }()
}
