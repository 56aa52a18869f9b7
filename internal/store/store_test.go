package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "courses.json"))
}

func TestSaveThenLoad(t *testing.T) {
	s := tempStore(t)

	saved, err := s.Save("20262", []string{"56615", "56605"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.LastUpdated)
	assert.True(t, s.Exists())

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "20262", loaded.Semester)
	assert.Equal(t, []string{"56615", "56605"}, loaded.Courses)
	assert.Equal(t, saved.LastUpdated, loaded.LastUpdated)
}

func TestSave_RejectsInvalid(t *testing.T) {
	s := tempStore(t)

	_, err := s.Save("", []string{"56615"})
	assert.Error(t, err, "empty semester must not be written")

	_, err = s.Save("20262", nil)
	assert.Error(t, err, "empty course list must not be written")

	_, err = s.Save("20262", []string{"CS101"})
	assert.Error(t, err, "non-numeric codes must not be written")

	assert.False(t, s.Exists())
}

func TestLoad_MissingFile(t *testing.T) {
	s := tempStore(t)
	assert.False(t, s.Exists())

	_, err := s.Load()
	assert.Error(t, err)
}

func TestLoad_RejectsMalformedAndInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err := New(bad).Load()
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"semester":"","courses":[]}`), 0o644))
	_, err = New(invalid).Load()
	assert.Error(t, err)
}
