package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_LoadAbsent(t *testing.T) {
	s := openTestSQLite(t)

	_, err := s.Load(context.Background())
	require.ErrorIs(t, err, ErrNoRecord)
}

func TestSQLiteStore_SaveLoadRoundTrip(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, []byte(`{"token":"tok123"}`)))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"token":"tok123"}`), got)
}

func TestSQLiteStore_SaveReplacesWholeRecord(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, []byte("first")))
	require.NoError(t, s.Save(ctx, []byte("second")))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)

	// Single-record semantics: exactly one row regardless of saves.
	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM session_records`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSQLiteStore_DeleteIsIdempotent(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, []byte("x")))
	require.NoError(t, s.Delete(ctx))
	require.NoError(t, s.Delete(ctx))

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, ErrNoRecord)
}

func TestSQLiteStore_ReopenKeepsRecord(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "session.db")
	ctx := context.Background()

	s1, err := OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, s1.Save(ctx, []byte("persisted")))
	require.NoError(t, s1.Close())

	// Reopen runs migrations again; they must be a no-op.
	s2, err := OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("persisted"), got)
}
