package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/characters", r.URL.Path)
		w.Write([]byte(`{"count": 2}`))
	}))
	defer srv.Close()

	var out struct {
		Count int `json:"count"`
	}
	require.NoError(t, NewClient(srv.URL).Get(context.Background(), "/api/characters", &out))
	assert.Equal(t, 2, out.Count)
}

func TestClient_Post(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		buf := new(bytes.Buffer)
		buf.ReadFrom(r.Body)
		assert.JSONEq(t, `{"character":"cf-007"}`, buf.String())
		w.Write([]byte(`{"prompt": "ok"}`))
	}))
	defer srv.Close()

	var out map[string]string
	err := NewClient(srv.URL).Post(context.Background(), "/api/prompts/flat", map[string]string{"character": "cf-007"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out["prompt"])
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error": "loading"}`))
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithRetry(3, time.Millisecond))
	require.NoError(t, c.Get(context.Background(), "/health", nil))
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "character not found: ghost"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithRetry(5, time.Millisecond))
	err := c.Get(context.Background(), "/api/characters/ghost", nil)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Equal(t, "character not found: ghost", se.Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_ZeroAttemptsTriesOnce(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c := NewClient(srv.URL, WithRetry(0, time.Millisecond))
	require.Error(t, c.Get(ctx, "/health", nil))
	assert.Equal(t, int32(1), calls.Load())
	assert.NoError(t, ctx.Err())
}

func TestClient_WaitReady(t *testing.T) {
	var ready atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ready.Load() {
			ready.Store(true)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL).WaitReady(context.Background(), 5*time.Second))
}

func TestOutputTo(t *testing.T) {
	data := map[string]any{"prompt": "a <b> & c"}

	var buf bytes.Buffer
	require.NoError(t, OutputTo(&buf, OutputFormatJSON, data))
	assert.Contains(t, buf.String(), `"a <b> & c"`)

	buf.Reset()
	require.NoError(t, OutputTo(&buf, OutputFormatYAML, data))
	assert.Contains(t, buf.String(), "prompt: a <b> & c")

	buf.Reset()
	require.NoError(t, OutputTo(&buf, OutputFormatText, "plain prompt"))
	assert.Equal(t, "plain prompt\n", buf.String())

	buf.Reset()
	require.NoError(t, OutputTo(&buf, OutputFormatText, data))
	assert.Contains(t, buf.String(), "prompt:")

	assert.Error(t, OutputTo(&buf, "xml", data))
}

func TestSetOutputFormat(t *testing.T) {
	defer SetOutputFormat("yaml")

	SetOutputFormat("json")
	assert.Equal(t, OutputFormatJSON, GetOutputFormat())
	SetOutputFormat("text")
	assert.Equal(t, OutputFormatText, GetOutputFormat())
	SetOutputFormat("bogus")
	assert.Equal(t, DefaultOutput, GetOutputFormat())
}

type stubEndpoint struct {
	group, name, path string
	init             bool
}

func (s stubEndpoint) Route() (string, string, http.HandlerFunc) {
	return http.MethodGet, s.path, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(s.name))
	}
}

func (s stubEndpoint) RequiresInit() bool { return s.init }

func (s stubEndpoint) Command(func() string) *cobra.Command {
	return &cobra.Command{Use: s.name}
}

func (s stubEndpoint) Group() string { return s.group }

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(
		stubEndpoint{name: "health", path: "/health"},
		stubEndpoint{group: "characters", name: "list", path: "/api/characters", init: true},
		stubEndpoint{group: "characters", name: "get", path: "/api/characters/{id}", init: true},
	)
	assert.Len(t, r.Endpoints(), 3)

	t.Run("commands are grouped", func(t *testing.T) {
		root := r.BuildCommands(func() string { return "" })
		cmd, _, err := root.Find([]string{"characters", "get"})
		require.NoError(t, err)
		assert.Equal(t, "get", cmd.Name())

		cmd, _, err = root.Find([]string{"health"})
		require.NoError(t, err)
		assert.Equal(t, "health", cmd.Name())
	})

	t.Run("init middleware wraps only init routes", func(t *testing.T) {
		var wrapped []string
		mux := http.NewServeMux()
		r.RegisterRoutes(mux, func(next http.HandlerFunc) http.HandlerFunc {
			return func(w http.ResponseWriter, req *http.Request) {
				wrapped = append(wrapped, req.URL.Path)
				next(w, req)
			}
		})

		for _, path := range []string{"/health", "/api/characters", "/api/characters/x"} {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, rec.Code, path)
		}
		assert.Equal(t, []string{"/api/characters", "/api/characters/x"}, wrapped)
	})
}
