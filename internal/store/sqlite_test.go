package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteStore_LogSearch(t *testing.T) {
	s := newTestSQLite(t)

	logged, err := s.LogSearch(context.Background(), Search{
		Query:         "newtown",
		ResolvedLabel: "Suburb Newtown",
		RadiusKm:      10,
		Sector:        "all",
		ResultCount:   42,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, logged.ID)
	assert.False(t, logged.CreatedAt.IsZero())

	recent, err := s.RecentSearches(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "newtown", recent[0].Query)
	assert.Equal(t, "Suburb Newtown", recent[0].ResolvedLabel)
	assert.InDelta(t, 10, recent[0].RadiusKm, 0.001)
	assert.Equal(t, 42, recent[0].ResultCount)
}

func TestSQLiteStore_RecentSearches_NewestFirst(t *testing.T) {
	s := newTestSQLite(t)

	for _, q := range []string{"first", "second", "third"} {
		_, err := s.LogSearch(context.Background(), Search{Query: q, ResolvedLabel: "x", Sector: "all"})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	recent, err := s.RecentSearches(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "third", recent[0].Query)
	assert.Equal(t, "second", recent[1].Query)
}

func TestSQLiteStore_RecentSearches_Empty(t *testing.T) {
	s := newTestSQLite(t)

	recent, err := s.RecentSearches(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestSQLiteStore_MigrateIdempotent(t *testing.T) {
	s := newTestSQLite(t)
	require.NoError(t, s.Migrate(context.Background()))
}
