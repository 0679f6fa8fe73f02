package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore("1")

	ok, err := s.Has("closed_1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set("closed_1"))
	require.NoError(t, s.Set("closed_3"))
	require.NoError(t, s.Set("misc"))

	ok, err = s.Has("closed_1")
	require.NoError(t, err)
	require.True(t, ok)

	entries, err := s.List("closed_")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "closed_1", entries[0].Key)
	assert.Equal(t, "1", entries[0].Value)
}

func TestNewForBackend(t *testing.T) {
	dir := t.TempDir()

	s, err := NewForBackend("sqlite", dir, "1")
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, Close(s)) })
	_, isLister := s.(Lister)
	assert.True(t, isLister)
	assert.FileExists(t, filepath.Join(dir, dismissalsDBFileName))

	m, err := NewForBackend("MEMORY", dir, "1")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, m)
	assert.NoError(t, Close(m))

	fallback, err := NewForBackend("redis", dir, "1")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, fallback)

	_, err = NewForBackend("sqlite", "", "1")
	assert.Error(t, err)
}

func TestLockIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "toasts.lock")

	first := NewLock(path)
	require.NoError(t, first.Acquire())

	second := NewLock(path)
	require.ErrorIs(t, second.Acquire(), ErrLocked)

	require.NoError(t, first.Release())
	require.NoError(t, second.Acquire())
	require.NoError(t, second.Release())
}
