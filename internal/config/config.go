package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries every tunable the watcher and the config UI need. Values
// come from defaults plus environment overrides so tests can build one by
// hand without touching process state.
type Config struct {
	BaseCourseURL   string   // schedule root; /{semester}/{code}/ is appended
	RegistrationURL string   // opened in a new tab when a course opens
	StatusSelector  string   // status cell in the schedule table
	LoginTitles     []string // title fragments that mean "not signed in yet"
	LoggedInTitle   string   // title fragment of the authenticated site

	CheckInterval time.Duration // sleep between monitoring rounds
	LoginPoll     time.Duration // poll step while waiting for manual login
	LoginDeadline time.Duration // give up on login after this long
	NavTimeout    time.Duration // goto / reload / popup-load bound
	ReadTimeout   time.Duration // status cell lookup bound
	ReadAttempts  int           // status reads per course per round (1 = no retry)
	ReadBackoff   time.Duration // backoff between read attempts

	AlarmRepeats int           // audible cues per alert
	AlarmGap     time.Duration // delay between cues

	Addr      string // config web UI bind address
	StorePath string // courses.json written by the web UI
	LogDir    string // logs directory
}

func FromEnv() Config {
	cfg := Config{
		BaseCourseURL:   "https://utdirect.utexas.edu/apps/registrar/course_schedule",
		RegistrationURL: "https://utdirect.utexas.edu/registration/registration.WBX",
		StatusSelector:  `td[data-th="Status"]`,
		LoginTitles:     []string{"Sign in", "Stale Request"},
		LoggedInTitle:   "UT Austin Registrar",
		CheckInterval:   5 * time.Minute,
		LoginPoll:       2 * time.Second,
		LoginDeadline:   5 * time.Minute,
		NavTimeout:      30 * time.Second,
		ReadTimeout:     5 * time.Second,
		ReadAttempts:    1,
		ReadBackoff:     300 * time.Millisecond,
		AlarmRepeats:    5,
		AlarmGap:        300 * time.Millisecond,
		Addr:            "127.0.0.1:3000",
		StorePath:       "courses.json",
		LogDir:          "logs",
	}

	if v := os.Getenv("WATCH_BASE_URL"); v != "" {
		cfg.BaseCourseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("WATCH_REGISTRATION_URL"); v != "" {
		cfg.RegistrationURL = v
	}
	if v := os.Getenv("WATCH_STATUS_SELECTOR"); v != "" {
		cfg.StatusSelector = v
	}
	if v := os.Getenv("WATCH_INTERVAL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CheckInterval = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("WATCH_LOGIN_DEADLINE_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LoginDeadline = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("WATCH_READ_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ReadAttempts = n
		}
	}
	if v := os.Getenv("ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("WATCH_STORE_PATH"); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv("LOG_DIR"); v != "" {
		cfg.LogDir = v
	}

	return cfg
}

// CourseURL derives the schedule page for one course code.
func (c Config) CourseURL(semester, code string) string {
	return fmt.Sprintf("%s/%s/%s/", c.BaseCourseURL, semester, code)
}

// IsLoginTitle reports whether a page title looks like the SSO login page
// (or its stale-request variant) rather than the schedule site.
func (c Config) IsLoginTitle(title string) bool {
	for _, frag := range c.LoginTitles {
		if strings.Contains(title, frag) {
			return true
		}
	}
	return false
}

// IsAuthenticatedTitle reports whether a page title belongs to the
// signed-in schedule site.
func (c Config) IsAuthenticatedTitle(title string) bool {
	return strings.Contains(title, c.LoggedInTitle) && !c.IsLoginTitle(title)
}
