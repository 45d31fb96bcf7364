package app

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/guttosm/badge-service/config"
)

// testConfig returns the default configuration pointed at a fake registry
// that knows fmt only.
func testConfig(t *testing.T) (*config.Config, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Path != "/ports/fmt/vcpkg.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"name":"fmt","version":"10.2.1"}`))
	}))
	t.Cleanup(server.Close)

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Requests.Template = server.URL + "/ports/{package}/vcpkg.json"
	cfg.Requests.InitialDelay = 0
	cfg.Appearance.MeasureFont = ""
	cfg.Database.Enabled = false
	return cfg, &calls
}
