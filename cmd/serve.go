package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/artcollab/internal/api"
	"github.com/zjrosen/artcollab/internal/config"
	"github.com/zjrosen/artcollab/internal/core"
	"github.com/zjrosen/artcollab/internal/log"
	"github.com/zjrosen/artcollab/internal/processor"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the registry HTTP API",
	Long: `Run the registry and expose it over HTTP.

On start the command journal is replayed to rebuild state; any entry that no
longer applies aborts startup. The log level and slow-command threshold
reload when the config file changes.

Example:
  artcollab serve                      # listen on server.addr
  artcollab serve --addr :9090         # override the address
  ARTCOLLAB_JOURNAL_ENABLED=false artcollab serve   # in-memory only`,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "address to listen on (overrides server.addr)")
}

func runServe(_ *cobra.Command, _ []string) error {
	cleanup, err := setupLogging(true)
	if err != nil {
		return err
	}
	defer cleanup()

	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !debugFlag {
		gin.SetMode(gin.ReleaseMode)
	}

	threshold := processor.NewThreshold(cfg.Processor.SlowCommandThreshold)
	infra, err := core.NewInfrastructure(core.FromConfig(cfg, threshold))
	if err != nil {
		return fmt.Errorf("creating registry: %w", err)
	}
	if err := infra.Start(); err != nil {
		_ = infra.Shutdown(context.Background())
		return fmt.Errorf("starting registry: %w", err)
	}

	watchConfig(viper.GetViper(), threshold)

	handler := api.NewHandler(infra, api.Config{
		CallerHeader:               cfg.Auth.CallerHeader,
		JWTSecret:                  cfg.Auth.JWTSecret,
		CORSOrigins:                cfg.Server.CORSOrigins,
		IdempotencyTTL:             cfg.Idempotency.TTL,
		IdempotencyCleanupInterval: cfg.Idempotency.CleanupInterval,
	})
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	log.Info(log.CatAPI, "artcollab listening", "addr", cfg.Server.Addr, "journal", cfg.Journal.Enabled)
	fmt.Printf("artcollab listening on %s\n", cfg.Server.Addr)

	var serveErr error
	select {
	case sig := <-sigCh:
		fmt.Printf("\nReceived %s, shutting down...\n", sig)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr = fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.ErrorErr(log.CatAPI, "stopping HTTP server", err)
	}
	if err := infra.Shutdown(shutdownCtx); err != nil {
		log.ErrorErr(log.CatConfig, "shutting down registry", err)
	}

	fmt.Println("artcollab stopped")
	return serveErr
}

// watchConfig reloads the live settings whenever the config file changes.
func watchConfig(v *viper.Viper, threshold *processor.Threshold) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Info(log.CatConfig, "config changed", "path", e.Name, "op", e.Op.String())
		applyLiveConfig(decode(v), threshold)
	})
	v.WatchConfig()
}

// applyLiveConfig applies the settings that may change while serving.
// Everything else needs a restart.
func applyLiveConfig(next config.Config, threshold *processor.Threshold) {
	log.SetMinLevel(log.ParseLevel(next.Log.Level))
	threshold.Set(next.Processor.SlowCommandThreshold)
	log.Info(log.CatConfig, "live config applied",
		"log_level", next.Log.Level,
		"slow_command_threshold", next.Processor.SlowCommandThreshold,
	)
}
