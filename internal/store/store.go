// Package store reads and writes courses.json, the record shared between
// the config web UI and the watcher.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// File is the on-disk record: a semester, the monitored course codes, and
// when the UI last touched it.
type File struct {
	Semester    string   `koanf:"semester" json:"semester" validate:"required"`
	Courses     []string `koanf:"courses" json:"courses" validate:"min=1,dive,numeric"`
	LastUpdated string   `koanf:"last_updated" json:"last_updated"`
}

type Store struct {
	Path     string
	validate *validator.Validate
}

func New(path string) *Store {
	return &Store{
		Path:     path,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Exists reports whether a saved record is present at all.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

// Load parses and validates the saved record. A missing file, malformed
// JSON, or a record failing validation all return an error; callers fall
// back to interactive setup.
func (s *Store) Load() (File, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(s.Path), kjson.Parser()); err != nil {
		return File{}, fmt.Errorf("load %s: %w", s.Path, err)
	}

	var f File
	if err := k.Unmarshal("", &f); err != nil {
		return File{}, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	if err := s.validate.Struct(f); err != nil {
		return File{}, fmt.Errorf("invalid course config in %s: %w", s.Path, err)
	}
	return f, nil
}

// Save validates and writes the record with a refreshed timestamp, and
// returns what was written.
func (s *Store) Save(semester string, courses []string) (File, error) {
	f := File{
		Semester:    semester,
		Courses:     courses,
		LastUpdated: time.Now().Format(time.RFC3339),
	}
	if err := s.validate.Struct(f); err != nil {
		return File{}, fmt.Errorf("invalid course config: %w", err)
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return File{}, fmt.Errorf("encode course config: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return File{}, fmt.Errorf("write %s: %w", s.Path, err)
	}
	return f, nil
}
