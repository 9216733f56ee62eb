// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/cosmicfriends/promptkit/internal/character"
	"github.com/cosmicfriends/promptkit/internal/config"
	"github.com/cosmicfriends/promptkit/internal/home"
	"github.com/cosmicfriends/promptkit/internal/metrics"
	"github.com/cosmicfriends/promptkit/internal/prompt"
)

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	Characters *character.Registry
	Planner    *prompt.Planner
	Config     *config.Manager
	Logger     *slog.Logger
	Home       *home.Dir
	Metrics    *metrics.Recorder
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// CharactersFrom extracts the character registry from context.
func CharactersFrom(ctx context.Context) *character.Registry {
	if s := ServicesFrom(ctx); s != nil {
		return s.Characters
	}
	return nil
}

// PlannerFrom extracts the prompt planner from context.
// Falls back to a planner on the global random source.
func PlannerFrom(ctx context.Context) *prompt.Planner {
	if s := ServicesFrom(ctx); s != nil && s.Planner != nil {
		return s.Planner
	}
	return prompt.NewPlanner(nil)
}

// ConfigFrom extracts the current configuration from context.
// Falls back to the defaults when no manager is attached.
func ConfigFrom(ctx context.Context) *config.Config {
	if s := ServicesFrom(ctx); s != nil && s.Config != nil {
		return s.Config.Get()
	}
	return config.DefaultConfig()
}

// LoggerFrom extracts the logger from context.
// Falls back to slog.Default().
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil && s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// HomeFrom extracts the home directory from context.
func HomeFrom(ctx context.Context) *home.Dir {
	if s := ServicesFrom(ctx); s != nil {
		return s.Home
	}
	return nil
}

// MetricsFrom extracts the generation metrics recorder from context.
// A nil recorder discards what it is given.
func MetricsFrom(ctx context.Context) *metrics.Recorder {
	if s := ServicesFrom(ctx); s != nil {
		return s.Metrics
	}
	return nil
}

type requestIDKey struct{}

// WithRequestID returns a new context carrying the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom extracts the request id from context, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
