package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cosmicfriends/promptkit/internal/api"
	"github.com/cosmicfriends/promptkit/internal/character"
	"github.com/cosmicfriends/promptkit/internal/config"
	"github.com/cosmicfriends/promptkit/internal/home"
	"github.com/cosmicfriends/promptkit/internal/metrics"
	"github.com/cosmicfriends/promptkit/internal/prompt"
	"github.com/cosmicfriends/promptkit/internal/server/endpoints"
	"github.com/cosmicfriends/promptkit/internal/svcctx"
)

// Server is the promptkit HTTP server.
// It owns the character registry and, while running, keeps it in sync with
// the characters directory.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	characters *character.Registry
	configMgr  *config.Manager
	home       *home.Dir
	limiter    *limiter
	metrics    *metrics.Recorder
	logger     *slog.Logger

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	// pinnedDir is set when the characters directory came from the caller
	// rather than config, so config reloads leave it alone.
	pinnedDir   bool
	watch       bool
	reloadDelay time.Duration

	mu            sync.RWMutex
	running       bool
	loaded        bool
	charactersDir string
	runCtx        context.Context
	stopWatch     context.CancelFunc
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 8080)
	Port string
	// CharactersDir overrides characters_dir from config.
	CharactersDir string
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Home is the promptkit home directory (default: ~/.promptkit)
	Home *home.Dir
	// Planner overrides the random source for content prompts.
	Planner *prompt.Planner
	// DisableWatch turns off reloading when character files change.
	DisableWatch bool
	// ReloadDelay is the debounce for character file changes.
	ReloadDelay time.Duration
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Planner == nil {
		cfg.Planner = prompt.NewPlanner(nil)
	}
	if cfg.ReloadDelay <= 0 {
		cfg.ReloadDelay = character.DefaultReloadDelay
	}
	if cfg.Home == nil {
		h, err := home.New("")
		if err != nil {
			return nil, err
		}
		cfg.Home = h
	}

	current := config.DefaultConfig()
	if cfg.ConfigManager != nil {
		current = cfg.ConfigManager.Get()
	}

	s := &Server{
		characters:    character.NewRegistry(cfg.Logger),
		configMgr:     cfg.ConfigManager,
		home:          cfg.Home,
		limiter:       newLimiter(current.Server.RateLimit, current.Server.Burst),
		metrics:       metrics.NewRecorder(current.Server.MetricsHistory),
		logger:        cfg.Logger,
		pinnedDir:     cfg.CharactersDir != "",
		watch:         !cfg.DisableWatch,
		reloadDelay:   cfg.ReloadDelay,
		charactersDir: cfg.CharactersDir,
	}
	if !s.pinnedDir {
		s.charactersDir = current.ResolvedCharactersDir(cfg.Home.CharactersPath())
	}

	s.services = &svcctx.Services{
		Characters: s.characters,
		Planner:    cfg.Planner,
		Config:     cfg.ConfigManager,
		Logger:     cfg.Logger,
		Home:       cfg.Home,
		Metrics:    s.metrics,
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	s.endpointRegistry.Register(endpoints.All(endpoints.Config{})...)

	// Set up HTTP server
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.handler = s.withRequestID(s.withRateLimit(s.withServices(mux)))
	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	if cfg.ConfigManager != nil {
		cfg.ConfigManager.OnChange(s.applyConfig)
	}

	return s, nil
}

// Load reads the characters directory into the registry.
// Start calls it; tests that drive Handler directly call it themselves.
func (s *Server) Load(ctx context.Context) error {
	dir := s.CharactersDir()
	if err := s.characters.LoadDir(ctx, dir); err != nil {
		return err
	}
	s.mu.Lock()
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// Start loads the characters, starts watching their directory and serves
// HTTP. It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	if err := s.Load(ctx); err != nil {
		s.setNotRunning()
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	s.runCtx = runCtx
	s.mu.Unlock()
	s.restartWatcher(s.CharactersDir())

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			_ = s.shutdown()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// shutdown stops the HTTP server and the directory watcher.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	// Shutdown HTTP server with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.mu.Lock()
	if s.stopWatch != nil {
		s.stopWatch()
		s.stopWatch = nil
	}
	s.runCtx = nil
	s.mu.Unlock()

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

// restartWatcher points the character watcher at dir, stopping any
// previous one. It does nothing unless the server is running with
// watching enabled.
func (s *Server) restartWatcher(dir string) {
	if !s.watch {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.runCtx == nil {
		return
	}
	if s.stopWatch != nil {
		s.stopWatch()
	}

	ctx, cancel := context.WithCancel(s.runCtx)
	s.stopWatch = cancel

	w := character.NewWatcher(s.characters, dir, s.logger)
	w.SetDelay(s.reloadDelay)
	go func() {
		if err := w.Run(ctx); err != nil {
			s.logger.Error("character watcher stopped", "dir", dir, "error", err)
		}
	}()
}

// applyConfig reacts to a config reload: the rate limit is replaced and a
// changed characters directory is reloaded and watched.
func (s *Server) applyConfig(c *config.Config) {
	s.limiter.set(c.Server.RateLimit, c.Server.Burst)
	s.logger.Info("rate limit updated", "limit", s.limiter)

	if s.pinnedDir {
		return
	}
	dir := c.ResolvedCharactersDir(s.home.CharactersPath())

	s.mu.Lock()
	changed := dir != s.charactersDir
	s.charactersDir = dir
	ctx := s.runCtx
	s.mu.Unlock()

	if !changed {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	s.logger.Info("characters directory changed", "dir", dir)
	if err := s.characters.LoadDir(ctx, dir); err != nil {
		s.logger.Error("failed to load new characters directory, keeping previous set", "dir", dir, "error", err)
	} else {
		s.mu.Lock()
		s.loaded = true
		s.mu.Unlock()
	}
	s.restartWatcher(dir)
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler returns the full middleware chain, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Characters returns the character registry.
func (s *Server) Characters() *character.Registry {
	return s.characters
}

// Metrics returns the generation metrics recorder.
func (s *Server) Metrics() *metrics.Recorder {
	return s.metrics
}

// CharactersDir returns the directory characters are loaded from.
func (s *Server) CharactersDir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.charactersDir
}

// requireInit is middleware that ensures characters are available.
// Returns 503 Service Unavailable until a load has succeeded and at least
// one character is registered.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		loaded := s.loaded
		s.mu.RUnlock()
		if !loaded || s.characters.Len() == 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"no characters loaded"}`))
			return
		}
		next(w, r)
	}
}
