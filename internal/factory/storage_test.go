package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filamentgenius/backend/internal/config"
)

func TestNewStore_Memory(t *testing.T) {
	cfg := &config.Config{DBDriver: "memory"}
	st, err := NewStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.NotNil(t, st.Users())
	assert.NotNil(t, st.Projects())
}

func TestNewStore_SQLite(t *testing.T) {
	cfg := &config.Config{
		DBDriver:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "filament.db"),
	}
	st, err := NewStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.NotNil(t, st.Projects())
}

func TestNewStore_UnknownDriver(t *testing.T) {
	cfg := &config.Config{DBDriver: "spanner"}
	_, err := NewStore(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown DB_DRIVER")
}
