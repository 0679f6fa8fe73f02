package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "state", "dismissals.db")
	s, err := Open(dbPath, "1")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	return s, dbPath
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("  ", "1")
	require.Error(t, err)
}

func TestSetAndHas(t *testing.T) {
	s, _ := newTestStore(t)

	ok, err := s.Has("closed_1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set("closed_1"))
	require.NoError(t, s.Set("closed_1"))

	ok, err = s.Has("closed_1")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Has("closed_2")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEmptyKey(t *testing.T) {
	s, _ := newTestStore(t)
	require.ErrorIs(t, s.Set(""), ErrEmptyKey)
	_, err := s.Has("")
	require.ErrorIs(t, err, ErrEmptyKey)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "dismissals.db")

	first, err := Open(dbPath, "1")
	require.NoError(t, err)
	require.NoError(t, first.Set("closed_99"))
	require.NoError(t, first.Close())

	second, err := Open(dbPath, "1")
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, second.Close()) })

	ok, err := second.Has("closed_99")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestListByPrefix(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Set("closed_2"))
	require.NoError(t, s.Set("closed_1"))
	require.NoError(t, s.Set("closedX1"))
	require.NoError(t, s.Set("other"))

	entries, err := s.List("closed_")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "closed_1", entries[0].Key)
	require.Equal(t, "closed_2", entries[1].Key)
	require.Equal(t, "1", entries[0].Value)
	require.NotEmpty(t, entries[0].UpdatedAt)
}

func TestCloseNil(t *testing.T) {
	var s *Store
	require.NoError(t, s.Close())
}
