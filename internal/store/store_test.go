package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

// exerciseRepo runs the ProfileRepo contract against any backend.
func exerciseRepo(t *testing.T, repo ProfileRepo) {
	t.Helper()
	ctx := context.Background()

	_, err := repo.Load(ctx, "default")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Save(ctx, "default", []byte(`{"v":1}`)))
	got, err := repo.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, string(got))

	require.NoError(t, repo.Save(ctx, "default", []byte(`{"v":2}`)))
	got, err = repo.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, string(got))

	require.NoError(t, repo.Save(ctx, "other", []byte(`x`)))
	got, err = repo.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, string(got), "keys are independent")
}

func TestSQLiteRepo(t *testing.T) {
	exerciseRepo(t, openTestStore(t).ProfileRepo())
}

func TestSQLiteRepo_FileDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "learnpath.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.ProfileRepo().Save(context.Background(), "default", []byte("persisted")))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.ProfileRepo().Load(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, "persisted", string(got))

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestMemoryRepo(t *testing.T) {
	exerciseRepo(t, NewMemoryRepo())
}

func TestMemoryRepo_CopiesData(t *testing.T) {
	repo := NewMemoryRepo()
	data := []byte("abc")
	require.NoError(t, repo.Save(context.Background(), "k", data))
	data[0] = 'z'
	got, err := repo.Load(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileRepo(t *testing.T) {
	repo, err := NewFileRepo(filepath.Join(t.TempDir(), "profiles"))
	require.NoError(t, err)
	exerciseRepo(t, repo)

	entries, err := os.ReadDir(repo.dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp", "no temp files left behind")
	}
}

func TestFileRepo_FailedSave(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepo(dir)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, "default", []byte("old")))

	// A directory squatting on the target path makes the rename fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "blocked.json"), 0o755))
	require.Error(t, repo.Save(ctx, "blocked", []byte("new")))

	got, err := repo.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp", "failed save cleans up its temp file")
	}

	assert.Error(t, repo.Save(ctx, "../escape", []byte("x")))
}

func TestDefaultDBPath_Env(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "x.db")
	t.Setenv("LEARNPATH_DB", p)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, p, got)
	_, err = os.Stat(filepath.Dir(p))
	assert.NoError(t, err)
}

func TestDefaultDBPath_XDG(t *testing.T) {
	t.Setenv("LEARNPATH_DB", "")
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataHome, "learnpath", "learnpath.db"), got)
}
