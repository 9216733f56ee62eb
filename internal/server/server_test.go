package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmicfriends/promptkit/internal/config"
	"github.com/cosmicfriends/promptkit/internal/metrics"
	"github.com/cosmicfriends/promptkit/internal/testutil"
)

// newTestServer builds a server over the fixture characters without
// listening. Handler tests drive it through httptest.
func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	if cfg.Home == nil {
		cfg.Home = mustHome(t)
	}
	if cfg.Logger == nil {
		cfg.Logger = testutil.Logger()
	}
	srv, err := New(cfg)
	require.NoError(t, err)
	return srv
}

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "characters")
	testutil.WriteCharacters(t, dir)
	return dir
}

func get(h http.Handler, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	for k, v := range header {
		req.Header[http.CanonicalHeaderKey(k)] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNew_Defaults(t *testing.T) {
	srv := newTestServer(t, Config{CharactersDir: "/srv/chars"})

	assert.Equal(t, "127.0.0.1:8080", srv.Addr())
	assert.Equal(t, "/srv/chars", srv.CharactersDir())
	assert.False(t, srv.IsRunning())
}

func TestNew_CharactersDirFromHome(t *testing.T) {
	h := mustHome(t)
	srv := newTestServer(t, Config{Home: h})
	assert.Equal(t, h.CharactersPath(), srv.CharactersDir())
}

func TestRequireInit(t *testing.T) {
	srv := newTestServer(t, Config{CharactersDir: fixtureDir(t)})

	rec := get(srv.Handler(), "/api/characters", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"no characters loaded"}`, rec.Body.String())

	// Health does not need characters.
	assert.Equal(t, http.StatusOK, get(srv.Handler(), "/health", nil).Code)

	require.NoError(t, srv.Load(context.Background()))
	assert.Equal(t, http.StatusOK, get(srv.Handler(), "/api/characters", nil).Code)
}

func TestRequireInit_EmptyDirectory(t *testing.T) {
	srv := newTestServer(t, Config{CharactersDir: t.TempDir()})
	require.NoError(t, srv.Load(context.Background()))

	rec := get(srv.Handler(), "/api/characters/cf-007", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequestID(t *testing.T) {
	srv := newTestServer(t, Config{CharactersDir: fixtureDir(t)})

	t.Run("generated", func(t *testing.T) {
		first := get(srv.Handler(), "/health", nil).Header().Get(RequestIDHeader)
		second := get(srv.Handler(), "/health", nil).Header().Get(RequestIDHeader)
		assert.Len(t, first, 36)
		assert.NotEqual(t, first, second)
	})

	t.Run("propagated", func(t *testing.T) {
		rec := get(srv.Handler(), "/health", http.Header{RequestIDHeader: {"trace-abc"}})
		assert.Equal(t, "trace-abc", rec.Header().Get(RequestIDHeader))
	})

	t.Run("oversized replaced", func(t *testing.T) {
		long := strings.Repeat("x", maxRequestIDLen+1)
		rec := get(srv.Handler(), "/health", http.Header{RequestIDHeader: {long}})
		assert.NotEqual(t, long, rec.Header().Get(RequestIDHeader))
		assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
	})
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, Config{CharactersDir: fixtureDir(t)})

	// Disabled by default.
	for i := 0; i < 50; i++ {
		require.Equal(t, http.StatusOK, get(srv.Handler(), "/health", nil).Code)
	}

	c := config.DefaultConfig()
	c.Server.RateLimit = 0.001
	c.Server.Burst = 2
	srv.applyConfig(c)

	assert.Equal(t, http.StatusOK, get(srv.Handler(), "/health", nil).Code)
	assert.Equal(t, http.StatusOK, get(srv.Handler(), "/health", nil).Code)

	rec := get(srv.Handler(), "/health", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	srv.applyConfig(config.DefaultConfig())
	assert.Equal(t, http.StatusOK, get(srv.Handler(), "/health", nil).Code)
}

func TestLimiter(t *testing.T) {
	l := newLimiter(0, 0)
	assert.True(t, l.allow())
	assert.Equal(t, "disabled", l.LogValue().String())

	l.set(0.001, 0)
	assert.True(t, l.allow())
	assert.False(t, l.allow())
}

func TestApplyConfig_CharactersDir(t *testing.T) {
	srv := newTestServer(t, Config{})

	// The home characters directory does not exist yet.
	require.Error(t, srv.Load(context.Background()))
	assert.Equal(t, http.StatusServiceUnavailable, get(srv.Handler(), "/api/characters", nil).Code)

	dir := fixtureDir(t)
	c := config.DefaultConfig()
	c.CharactersDir = dir
	srv.applyConfig(c)

	assert.Equal(t, dir, srv.CharactersDir())
	assert.Equal(t, 2, srv.Characters().Len())
	assert.Equal(t, http.StatusOK, get(srv.Handler(), "/api/characters", nil).Code)

	// A bad directory keeps the loaded set.
	c = config.DefaultConfig()
	c.CharactersDir = filepath.Join(t.TempDir(), "missing")
	srv.applyConfig(c)
	assert.Equal(t, 2, srv.Characters().Len())
}

func TestApplyConfig_PinnedDir(t *testing.T) {
	dir := fixtureDir(t)
	srv := newTestServer(t, Config{CharactersDir: dir})
	require.NoError(t, srv.Load(context.Background()))

	c := config.DefaultConfig()
	c.CharactersDir = t.TempDir()
	srv.applyConfig(c)

	assert.Equal(t, dir, srv.CharactersDir())
	assert.Equal(t, 2, srv.Characters().Len())
}

func TestNew_ConfigManager(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("server:\n  rate_limit: 0.001\n  burst: 1\n"), 0o644))

	mgr, err := config.NewManager(cfgFile)
	require.NoError(t, err)

	srv := newTestServer(t, Config{CharactersDir: fixtureDir(t), ConfigManager: mgr})
	assert.Equal(t, http.StatusOK, get(srv.Handler(), "/health", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(srv.Handler(), "/health", nil).Code)
}

func TestMetrics_RecordsPromptRequests(t *testing.T) {
	srv := newTestServer(t, Config{CharactersDir: fixtureDir(t)})
	require.NoError(t, srv.Load(context.Background()))

	req := httptest.NewRequest("POST", "/api/prompts/flat", strings.NewReader(`{"character":"nova"}`))
	req.Header.Set(RequestIDHeader, "flat-1")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Non-prompt routes are not recorded.
	require.Equal(t, http.StatusOK, get(srv.Handler(), "/api/characters", nil).Code)

	recent, err := srv.Metrics().List(context.Background(), metrics.Filter{}, 0)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "flat", recent[0].Mode)
	assert.Equal(t, testutil.NovaID, recent[0].CharacterID)
	assert.Equal(t, "flat-1", recent[0].RequestID)
	assert.Equal(t, 1, recent[0].Prompts)
	assert.True(t, recent[0].Success)
}
