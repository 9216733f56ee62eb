package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/cosmicfriends/promptkit/internal/svcctx"
)

// RequestIDHeader carries the request id on requests and responses.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen bounds client-supplied request ids.
const maxRequestIDLen = 128

// withRequestID tags every request with an id, reusing the caller's when it
// sent one, and logs the request once it completes.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(svcctx.WithRequestID(r.Context(), id)))

		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"request_id", id,
		)
	})
}

// withRateLimit rejects requests with 429 once the token bucket is empty.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.allow() {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"rate limit exceeded"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withServices wraps a handler to enrich the request context with services.
// The logger is scoped to the request id.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if s.services != nil {
			services := *s.services
			if id := svcctx.RequestIDFrom(ctx); id != "" {
				services.Logger = s.logger.With("request_id", id)
			}
			ctx = svcctx.WithServices(ctx, &services)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// limiter is a replaceable token bucket. A nil bucket allows everything.
type limiter struct {
	mu     sync.RWMutex
	bucket *rate.Limiter
}

func newLimiter(perSecond float64, burst int) *limiter {
	l := &limiter{}
	l.set(perSecond, burst)
	return l
}

// set replaces the bucket. A non-positive rate disables limiting.
func (l *limiter) set(perSecond float64, burst int) {
	var bucket *rate.Limiter
	if perSecond > 0 {
		if burst < 1 {
			burst = 1
		}
		bucket = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
	l.mu.Lock()
	l.bucket = bucket
	l.mu.Unlock()
}

func (l *limiter) allow() bool {
	l.mu.RLock()
	bucket := l.bucket
	l.mu.RUnlock()
	return bucket == nil || bucket.Allow()
}

// LogValue implements slog.LogValuer.
func (l *limiter) LogValue() slog.Value {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.bucket == nil {
		return slog.StringValue("disabled")
	}
	return slog.GroupValue(
		slog.Float64("rate", float64(l.bucket.Limit())),
		slog.Int("burst", l.bucket.Burst()),
	)
}
