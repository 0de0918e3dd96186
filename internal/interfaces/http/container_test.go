package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civictrack/civictrack/internal/infrastructure/config"
	"github.com/civictrack/civictrack/internal/infrastructure/database"
	sharedConfig "github.com/civictrack/civictrack/internal/shared/config"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

func newTestContainer(t *testing.T) *Container {
	t.Helper()
	if testing.Short() {
		t.Skip("probes the evidence store endpoint")
	}
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server:   sharedConfig.ServerConfig{Mode: "test"},
		Database: sharedConfig.DatabaseConfig{Driver: "sqlite", Path: ":memory:"},
		Auth:     sharedConfig.AuthConfig{JWT: sharedConfig.JWTConfig{Secret: "test-secret", Issuer: "civictrack"}},
		Storage:  sharedConfig.StorageConfig{Endpoint: "127.0.0.1:1", Bucket: "evidence"},
	}
	db, err := database.Open(&cfg.Database)
	require.NoError(t, err)

	c, err := NewContainer(db, cfg, logger.NewNop())
	require.NoError(t, err)
	c.SetupRoutes()
	t.Cleanup(func() { _ = c.Shutdown(context.Background()) })
	return c
}

func TestContainer_RegistersRoutes(t *testing.T) {
	c := newTestContainer(t)

	registered := map[string]bool{}
	for _, r := range c.Engine().Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /health",
		"GET /metrics",
		"POST /reports",
		"GET /reports/map",
		"GET /reports/events/stream",
		"PATCH /reports/:id/status",
		"POST /reports/:id/evidence",
		"GET /reports/survey/:token",
		"PUT /admin/settings/report",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
	assert.False(t, registered["GET /swagger/*any"], "swagger is only served in debug mode")
}

func TestContainer_RunsWithoutRedis(t *testing.T) {
	c := newTestContainer(t)
	assert.Nil(t, c.eventBus)
	assert.Nil(t, c.svcs.publisher)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	c.Engine().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
