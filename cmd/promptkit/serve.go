package main

import (
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmicfriends/promptkit/internal/config"
	"github.com/cosmicfriends/promptkit/internal/server"
)

var (
	serveHost       string
	servePort       int
	serveCharacters string
	serveNoWatch    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the promptkit server",
	Long: `Start the promptkit HTTP server.

Character records are loaded from characters_dir (default:
~/.promptkit/characters) and reloaded whenever a record file changes. The
config file is watched too: rate limits, log level and characters_dir take
effect without a restart.

The server provides:
  - /health          - Basic server health check
  - /ready           - Readiness check (at least one character loaded)
  - /status          - Version, loaded characters and request defaults
  - /api/characters  - Character records
  - /api/prompts/*   - Prompt generation

Examples:
  promptkit serve                        # Start on default port 8080
  promptkit serve --port 3000            # Start on custom port
  promptkit serve --characters ./chars   # Load records from ./chars`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Get home directory
		h, err := openHome()
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		cfgMgr, err := config.NewManager(configFile(h))
		if err != nil {
			return err
		}
		cfg := cfgMgr.Get()

		// Set up logger; the level follows config reloads
		level := new(slog.LevelVar)
		level.Set(cfg.SlogLevel())
		logger := newLogger(os.Stdout, cfg.Log.Format, level)
		slog.SetDefault(logger)

		cfgMgr.OnChange(func(c *config.Config) {
			level.Set(c.SlogLevel())
			logger.Info("config reloaded", "file", cfgMgr.ConfigFile(), "log_level", c.SlogLevel())
		})
		cfgMgr.OnError(func(err error) {
			logger.Error("config reload failed, keeping previous config", "error", err)
		})
		if cfgMgr.ConfigFile() != "" {
			cfgMgr.WatchConfig()
			logger.Info("watching config file", "file", cfgMgr.ConfigFile())
		}

		host := cfg.Server.Host
		if cmd.Flags().Changed("host") {
			host = serveHost
		}
		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		// Create server
		srv, err := server.New(server.Config{
			Host:          host,
			Port:          strconv.Itoa(port),
			CharactersDir: serveCharacters,
			ConfigManager: cfgMgr,
			Home:          h,
			DisableWatch:  serveNoWatch,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

// newLogger builds the slog handler named by log.format.
func newLogger(w io.Writer, format string, level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to (overrides server.host)")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (overrides server.port)")
	serveCmd.Flags().StringVar(&serveCharacters, "characters", "", "Characters directory (overrides characters_dir)")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "Do not reload when character files change")

	rootCmd.AddCommand(serveCmd)
}
