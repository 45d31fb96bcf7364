//go:build !integration

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/badge-service/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestInitializeApp(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*config.Config)
		wantError bool
		validate  func(*testing.T, *App)
	}{
		{
			name: "creates app with default config",
			validate: func(t *testing.T, a *App) {
				assert.NotNil(t, a.Router)
				assert.NotNil(t, a.Services)
				assert.Nil(t, a.Database)
				assert.NotNil(t, a.limiter)
				assert.Nil(t, a.requestLogs)
			},
		},
		{
			name: "rate limiting disabled",
			modify: func(c *config.Config) {
				c.Server.RateLimit = 0
			},
			validate: func(t *testing.T, a *App) {
				assert.Nil(t, a.limiter)
			},
		},
		{
			name: "invalid logo fails",
			modify: func(c *config.Config) {
				c.Appearance.Logo = "not xml"
			},
			wantError: true,
		},
		{
			name: "invalid colour fails",
			modify: func(c *config.Config) {
				c.Appearance.PrimaryBackground = "#12"
			},
			wantError: true,
		},
		{
			name: "relative request template fails",
			modify: func(c *config.Config) {
				c.Requests.Template = "ports/{package}/vcpkg.json"
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, _ := testConfig(t)
			if tt.modify != nil {
				tt.modify(cfg)
			}

			a, err := InitializeApp(cfg)
			if tt.wantError {
				assert.Error(t, err)
				assert.Nil(t, a)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { _ = a.Close(context.Background()) })
			if tt.validate != nil {
				tt.validate(t, a)
			}
		})
	}
}

func TestApp_ServesBadges(t *testing.T) {
	cfg, calls := testConfig(t)
	a, err := InitializeApp(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(context.Background()) })

	serve := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := serve("/fmt")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Contains(t, w.Body.String(), `>v10.2.1</text>`)

	w = serve("/fmt")
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))

	w = serve("/doesnotexist")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, w.Body.String())

	w = serve("/readyz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"metadata_circuit"`)
	assert.Contains(t, w.Body.String(), `"cache"`)

	w = serve("/_swagger/doc.json")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Badge Service API"`)
	assert.Contains(t, w.Body.String(), `"/{package}"`)
}

func TestApp_Close(t *testing.T) {
	cfg, _ := testConfig(t)
	a, err := InitializeApp(cfg)
	require.NoError(t, err)

	assert.NoError(t, a.Close(context.Background()))
	assert.NoError(t, a.Close(context.Background()), "close is idempotent")
}
