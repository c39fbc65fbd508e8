package recorder

import (
	"net/http"
	"path/filepath"
	"testing"

	"github.com/dis-interop/cdis-gateway/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestAttachAdminRoutes_ServesDbStats(t *testing.T) {
	r, err := Open(filepath.Join(t.TempDir(), "frames.db"))
	require.NoError(t, err)
	defer r.Close()

	migrationsFS, err := MigrationsFS()
	require.NoError(t, err)
	require.NoError(t, r.MigrateUp(migrationsFS))

	mux := http.NewServeMux()
	require.NoError(t, r.AttachAdminRoutes(mux))

	req := testutil.NewTestRequest("GET", "/debug/db-stats")
	rec := testutil.NewTestRecorder()
	mux.ServeHTTP(rec, req)

	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	require.Contains(t, rec.Body.String(), "frame_count")
}
