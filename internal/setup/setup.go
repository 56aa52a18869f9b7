// Package setup turns user input — interactive prompts or the saved
// courses.json — into the list of courses to monitor. Validation is a pure
// function so it tests without a terminal.
package setup

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/coursewatch/coursewatch/internal/config"
	"github.com/coursewatch/coursewatch/internal/domain"
)

var (
	ErrNoSemester = errors.New("semester code is required")
	ErrNoCourses  = errors.New("at least one course code is required")
)

// Selection is a validated semester plus course codes, ready to turn into
// monitored courses.
type Selection struct {
	Semester string
	Codes    []string
	Skipped  []string // non-numeric entries dropped during validation
}

// Parse validates raw input: non-empty semester, numeric-only codes, at
// least one code. Non-numeric codes are skipped (reported in Skipped), not
// fatal, matching the prompt's warn-and-continue behavior.
func Parse(semester string, rawCodes []string) (Selection, error) {
	sel := Selection{Semester: strings.TrimSpace(semester)}
	if sel.Semester == "" {
		return Selection{}, ErrNoSemester
	}

	for _, raw := range rawCodes {
		code := strings.TrimSpace(raw)
		if code == "" {
			continue
		}
		if !isDigits(code) {
			sel.Skipped = append(sel.Skipped, code)
			continue
		}
		sel.Codes = append(sel.Codes, code)
	}

	if len(sel.Codes) == 0 {
		return Selection{}, ErrNoCourses
	}
	return sel, nil
}

// Courses builds one monitored course per code, URLs derived from the
// configured schedule base.
func (s Selection) Courses(cfg config.Config) []*domain.Course {
	out := make([]*domain.Course, 0, len(s.Codes))
	for _, code := range s.Codes {
		out = append(out, domain.NewCourse(code, cfg.CourseURL(s.Semester, code)))
	}
	return out
}

// Prompt runs the interactive setup: semester first, then course codes one
// per line until an empty line. Non-numeric codes warn and re-prompt.
func Prompt(in io.Reader, out io.Writer) (Selection, error) {
	r := bufio.NewReader(in)

	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out, "coursewatch - course setup")
	fmt.Fprintln(out, strings.Repeat("=", 60))

	fmt.Fprintln(out, "\nEnter the semester code (e.g., 20262 for Spring 2026):")
	fmt.Fprint(out, "Semester code: ")
	semester, err := readLine(r)
	if err != nil && err != io.EOF {
		return Selection{}, err
	}
	if strings.TrimSpace(semester) == "" {
		return Selection{}, ErrNoSemester
	}

	fmt.Fprintln(out, "\nEnter course codes (the number at the end of the URL, e.g., 56615).")
	fmt.Fprintln(out, "Press Enter with no input when done adding courses.")

	var codes []string
	for {
		fmt.Fprintf(out, "Course code #%d (or press Enter to finish): ", len(codes)+1)
		line, err := readLine(r)
		if err != nil && err != io.EOF {
			return Selection{}, err
		}
		code := strings.TrimSpace(line)
		if code == "" {
			break
		}
		if !isDigits(code) {
			fmt.Fprintf(out, "WARNING: %q is not a valid course code (numbers only). Skipping.\n", code)
			continue
		}
		codes = append(codes, code)
		fmt.Fprintf(out, "Added course code: %s\n", code)
		if err == io.EOF {
			break
		}
	}

	sel, err := Parse(semester, codes)
	if err != nil {
		return Selection{}, err
	}
	fmt.Fprintf(out, "\nSetup complete: %d course(s) to monitor\n", len(sel.Codes))
	return sel, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err == io.EOF && line != "" {
		return line, io.EOF
	}
	return line, err
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
