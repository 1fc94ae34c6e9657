package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends returns one fresh store per backend.
func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	sqlStore, err := NewSQLStore(filepath.Join(dir, "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlStore.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(filepath.Join(dir, "prefs.yaml")),
		"sqlite": sqlStore,
	}
}

func TestStore_RoundTrip(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ThemeKey)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ThemeKey, "ocean"))
			v, err := s.Get(ThemeKey)
			require.NoError(t, err)
			assert.Equal(t, "ocean", v)

			// Overwrite
			require.NoError(t, s.Set(ThemeKey, "forest"))
			v, err = s.Get(ThemeKey)
			require.NoError(t, err)
			assert.Equal(t, "forest", v)
		})
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "prefs.yaml")

	require.NoError(t, NewFileStore(path).Set(ThemeKey, "dark"))

	v, err := NewFileStore(path).Get(ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "theme: dark")
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("::not yaml: ["), 0o644))

	_, err := NewFileStore(path).Get(ThemeKey)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestSQLStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	s1, err := NewSQLStore(path)
	require.NoError(t, err)
	require.NoError(t, s1.Set(ThemeKey, "sunset"))
	require.NoError(t, s1.Close())

	s2, err := NewSQLStore(path)
	require.NoError(t, err)
	defer s2.Close()

	v, err := s2.Get(ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, "sunset", v)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, closer, err := Open(BackendFile, filepath.Join(dir, "p.yaml"))
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)
	assert.NoError(t, closer())

	s, closer, err = Open(BackendSQLite, filepath.Join(dir, "p.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLStore{}, s)
	assert.NoError(t, closer())

	s, _, err = Open(BackendMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, closer, err = Open("redis", "")
	assert.Error(t, err)
	assert.NotNil(t, closer)
}
