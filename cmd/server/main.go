package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rdhelms/deck-the-pockets/internal/config"
	"github.com/rdhelms/deck-the-pockets/internal/game"
	"github.com/rdhelms/deck-the-pockets/internal/web"
	"github.com/rdhelms/deck-the-pockets/internal/ws"
	staticserver "github.com/rdhelms/deck-the-pockets/static"
	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var version = "dev" // Set at build time via -ldflags

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cobra.CheckErr(newCmd().ExecuteContext(ctx))
}

func newCmd() *cobra.Command {
	var envFile string
	cfg := config.Config{}

	cmd := &cobra.Command{
		Use:   "deck-the-pockets",
		Short: "Real-time tree decorating and ornament hunt party game",
		Long: `Deck the Pockets - real-time tree decorating and ornament hunt

Environment Variables:
  PORT             Port to listen on (default: 3000)
  BIND             Address to bind to (default: 0.0.0.0)
  LOG_LEVEL        zerolog level (default: info)
  HUNT_COUNTDOWN   Seconds before the hunt starts (default: 15)
  HUNT_TICK        Countdown tick interval (default: 1s)
  VERIFY_DROPS     Reject onTree events for ornaments off the tree (default: false)
  PUBLIC_URL       URL encoded in the share QR code (default: request origin)
  CORS_ORIGINS     Comma separated allowed origins (default: *)
  EXPORT_ENABLED   Append finished rounds to a results file (default: false)
  EXPORT_FILE      Results file (default: ./deck-the-pockets-results.txt)`,
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			if envFile != "" {
				files = append(files, envFile)
			}
			loaded, err := config.FromEnv(files...)
			if err != nil {
				return err
			}
			// flags win over the environment
			fs := cmd.Flags()
			if !fs.Changed("port") {
				cfg.Port = loaded.Port
			}
			if !fs.Changed("bind") {
				cfg.Bind = loaded.Bind
			}
			if !fs.Changed("log-level") {
				cfg.LogLevel = loaded.LogLevel
			}
			cfg.HuntCountdown = loaded.HuntCountdown
			cfg.HuntTick = loaded.HuntTick
			cfg.VerifyDrops = loaded.VerifyDrops || cfg.VerifyDrops
			cfg.PublicURL = loaded.PublicURL
			cfg.CORSOrigins = loaded.CORSOrigins
			cfg.ExportEnabled = loaded.ExportEnabled
			cfg.ExportFile = loaded.ExportFile
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	fs.IntVarP(&cfg.Port, "port", "p", 3000, "port to listen on (overrides PORT env var)")
	fs.StringVarP(&cfg.Bind, "bind", "b", "0.0.0.0", "address to bind to (overrides BIND env var)")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "log level (overrides LOG_LEVEL env var)")
	fs.BoolVar(&cfg.VerifyDrops, "verify-drops", false, "reject onTree events for ornaments off the tree")
	fs.StringVar(&envFile, "env-file", "", "load environment variables from this file")

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetVersionTemplate("deck-the-pockets {{.Version}}\n")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	// zerolog setup (human-friendly console)
	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)
	cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zerologlog.Logger = zerologlog.Output(cw)

	// Gin setup with custom logger (skip /socket.io noise)
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(cfg.CORSOrigins))
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/socket.io") {
			return
		}
		zerologlog.Info().Str("path", path).Int("status", c.Writer.Status()).Dur("dur", time.Since(start)).Msg("http")
	})

	// Socket server + session engine
	hub := ws.NewHub()
	sock := ws.New(hub)
	opts := game.Options{
		HuntCountdown: cfg.HuntCountdown,
		TickInterval:  cfg.HuntTick,
		VerifyDrops:   cfg.VerifyDrops,
	}
	if cfg.ExportEnabled {
		opts.OnRoundEnd = func(s *game.Session) {
			if err := game.ExportRound(s, cfg.ExportFile, time.Now()); err != nil {
				zerologlog.Error().Err(err).Str("round", s.ID).Msg("failed to export round")
				return
			}
			zerologlog.Info().Str("round", s.ID).Str("file", cfg.ExportFile).Msg("exported round")
		}
	}
	engine, err := game.NewEngine(hub, opts)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	defer engine.Close()
	sock.SetEngine(engine)
	io := sock.Mount(r)
	defer io.Close()

	web.Register(r, engine, cfg.PublicURL)

	// Serve frontend for all other routes
	r.NoRoute(func(c *gin.Context) {
		staticserver.Handler().ServeHTTP(c.Writer, c.Request)
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		zerologlog.Info().Str("addr", srv.Addr).Str("version", version).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}
	if len(origins) == 1 && origins[0] == "*" {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = origins
		cc.AllowCredentials = true
	}
	return cors.New(cc)
}
