package recorder

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrateUp_CreatesFramesTable(t *testing.T) {
	r, err := Open(filepath.Join(t.TempDir(), "frames.db"))
	require.NoError(t, err)
	defer r.Close()

	migrationsFS, err := MigrationsFS()
	require.NoError(t, err)
	require.NoError(t, r.MigrateUp(migrationsFS))

	version, dirty, err := r.MigrateVersion(migrationsFS)
	require.NoError(t, err)
	require.False(t, dirty)
	require.Equal(t, uint(1), version)

	stats, err := r.Stats()
	require.NoError(t, err)
	require.Equal(t, int64(0), stats.FrameCount)
}

func TestMigrateUp_IsIdempotent(t *testing.T) {
	r, err := Open(filepath.Join(t.TempDir(), "frames.db"))
	require.NoError(t, err)
	defer r.Close()

	migrationsFS, err := MigrationsFS()
	require.NoError(t, err)
	require.NoError(t, r.MigrateUp(migrationsFS))
	require.NoError(t, r.MigrateUp(migrationsFS))
}

func TestMigrateDown_DropsFramesTable(t *testing.T) {
	r, err := Open(filepath.Join(t.TempDir(), "frames.db"))
	require.NoError(t, err)
	defer r.Close()

	migrationsFS, err := MigrationsFS()
	require.NoError(t, err)
	require.NoError(t, r.MigrateUp(migrationsFS))
	require.NoError(t, r.MigrateDown(migrationsFS))

	version, _, err := r.MigrateVersion(migrationsFS)
	require.NoError(t, err)
	require.Equal(t, uint(0), version)
}
