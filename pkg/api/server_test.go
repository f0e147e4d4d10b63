package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protovet/protovet/pkg/config"
	"github.com/protovet/protovet/pkg/lint"
	"github.com/protovet/protovet/pkg/observability"
)

func TestServerProbes(t *testing.T) {
	server := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "probe %s", path)
	}
}

func TestServerMetricsEndpoint(t *testing.T) {
	server := newTestServer(t)

	// Generate some traffic first
	rec := postJSON(t, server, "/api/v1/validate", "syntax = \"proto3\";\npackage users.v1;\n")
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "protovet_validations_total")
}

func TestServerMethodNotAllowed(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/validate", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServerUnknownRoute(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bogus", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServerWithoutCache(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            "8080",
			MaxRequestBytes: 4 << 20,
		},
		Lint: config.LintConfig{
			CacheEnabled: false,
		},
		Observability: config.ObservabilityConfig{
			MetricsEnabled: false,
		},
	}

	logger := observability.NewLogger(observability.ErrorLevel, &bytes.Buffer{})
	server, err := NewServer(cfg, logger, observability.NewMetrics(nil), "test")
	require.NoError(t, err)
	assert.Nil(t, server.cache)

	rec := postJSON(t, server, "/api/v1/validate", "syntax = \"proto3\";\npackage users.v1;\n")
	require.Equal(t, http.StatusOK, rec.Code)

	var report lint.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.True(t, report.Valid)
}

func TestServerOptionsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, lint.OptionsFileName)
	require.NoError(t, os.WriteFile(path, []byte("ignore:\n  - package-declaration\n"), 0o644))

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            "8080",
			MaxRequestBytes: 4 << 20,
		},
		Lint: config.LintConfig{
			OptionsFile: path,
		},
	}

	logger := observability.NewLogger(observability.ErrorLevel, &bytes.Buffer{})
	server, err := NewServer(cfg, logger, observability.NewMetrics(nil), "test")
	require.NoError(t, err)

	// Missing package would normally produce a package-declaration warning
	rec := postJSON(t, server, "/api/v1/validate", "syntax = \"proto3\";\n")
	require.Equal(t, http.StatusOK, rec.Code)

	var report lint.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	for _, issue := range report.Warnings {
		assert.NotEqual(t, "package-declaration", issue.Rule)
	}
}
