package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openschools-au/schoolsearch-cli/internal/config"
)

func configStore(driver, url string) config.StoreConfig {
	return config.StoreConfig{Driver: driver, DatabaseURL: url}
}

func TestOpen_SQLite(t *testing.T) {
	st, err := Open(context.Background(), configStore("sqlite", filepath.Join(t.TempDir(), "open.db")))
	require.NoError(t, err)
	require.NotNil(t, st)
	t.Cleanup(func() { _ = st.Close() })

	assert.IsType(t, &SQLiteStore{}, st)
	require.NoError(t, st.Migrate(context.Background()))
}
