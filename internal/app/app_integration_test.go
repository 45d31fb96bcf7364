//go:build integration

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/badge-service/internal/domain/model"
	"github.com/guttosm/badge-service/internal/testutil"
)

func TestInitializeApp_Integration(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg.Database.Enabled = true
	cfg.Database.URI = testutil.GetSharedContainerURI()
	cfg.Database.DatabaseName = testutil.SanitizeDBName(t.Name())
	cfg.Database.LogsTTL = 24 * time.Hour

	a, err := InitializeApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, a.Database, "database should be connected")
	require.NotNil(t, a.requestLogs)
	t.Cleanup(func() { _ = a.Database.DB.Database.Drop(context.Background()) })

	for _, path := range []string{"/fmt", "/fmt"} {
		w := httptest.NewRecorder()
		a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Contains(t, w.Body.String(), `"mongodb_logs_circuit"`)

	a.requestLogs.Stop()
	ctx := context.Background()
	logs, err := a.Database.RequestLogs.QueryLogs(ctx, model.RequestLogQuery{Package: "fmt"})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, model.CacheHit, logs[0].Cache, "newest first")
	assert.Equal(t, model.CacheMiss, logs[1].Cache)

	require.NoError(t, a.Close(ctx))
}
