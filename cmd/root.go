// Package cmd implements the artcollab command line.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/artcollab/internal/config"
	"github.com/zjrosen/artcollab/internal/log"
)

// defaultConfigPath is where a config file is created when none is found.
const defaultConfigPath = ".artcollab/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "artcollab",
	Short: "A collaborative digital-art registry",
	Long: `artcollab runs a registry where artists register, co-create artworks by
contributing to them, finalize them and mint a single NFT per artwork.

Every state change runs through one ordered command queue and is journaled
to SQLite so the registry can be rebuilt on restart.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .artcollab/config.yaml or ~/.config/artcollab/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"enable debug logging")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	// A missing .env is normal.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: reading .env: %v\n", err)
	}

	loaded, err := loadConfig(viper.GetViper(), cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	cfg = loaded
}

// setDefaults registers every key so env overrides apply even when the file
// does not mention it.
func setDefaults(v *viper.Viper) {
	d := config.Defaults()
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.cors_origins", d.Server.CORSOrigins)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("processor.queue_capacity", d.Processor.QueueCapacity)
	v.SetDefault("processor.slow_command_threshold", d.Processor.SlowCommandThreshold)
	v.SetDefault("journal.enabled", d.Journal.Enabled)
	v.SetDefault("journal.path", d.Journal.Path)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
	v.SetDefault("idempotency.ttl", d.Idempotency.TTL)
	v.SetDefault("idempotency.cleanup_interval", d.Idempotency.CleanupInterval)
	v.SetDefault("auth.caller_header", d.Auth.CallerHeader)
	v.SetDefault("auth.jwt_secret", d.Auth.JWTSecret)
	v.SetDefault("log.level", d.Log.Level)
}

// loadConfig reads the config into v and decodes it.
// Lookup order: explicit path, .artcollab/config.yaml, ~/.config/artcollab/config.yaml.
// When nothing is found a default file is written to .artcollab/config.yaml.
func loadConfig(v *viper.Viper, path string) (config.Config, error) {
	setDefaults(v)
	v.SetEnvPrefix("ARTCOLLAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch {
	case path != "":
		v.SetConfigFile(path)
	case fileExists(defaultConfigPath):
		v.SetConfigFile(defaultConfigPath)
	default:
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", config.AppName))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return decode(v), fmt.Errorf("reading config: %w", err)
		}
		if writeErr := config.WriteDefaultConfig(defaultConfigPath); writeErr == nil {
			v.SetConfigFile(defaultConfigPath)
			_ = v.ReadInConfig()
		}
	}

	return decode(v), nil
}

func decode(v *viper.Viper) config.Config {
	out := config.Defaults()
	if err := v.Unmarshal(&out); err != nil {
		log.ErrorErr(log.CatConfig, "decoding config", err)
	}
	return out
}

// configPath is the file `config set` edits and the watcher follows.
func configPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	if cfgFile != "" {
		return cfgFile
	}
	return defaultConfigPath
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// setupLogging installs the logger. Serving always logs (to ARTCOLLAB_LOG or
// stderr); other commands log only with --debug or ARTCOLLAB_DEBUG.
func setupLogging(serving bool) (func(), error) {
	debug := debugFlag || os.Getenv("ARTCOLLAB_DEBUG") != ""
	if !serving && !debug {
		log.InitWriter(os.Stderr)
		log.SetEnabled(false)
		return func() {}, nil
	}

	cleanup := func() {}
	if logPath := os.Getenv("ARTCOLLAB_LOG"); logPath != "" {
		c, err := log.Init(logPath)
		if err != nil {
			return nil, fmt.Errorf("initializing logging: %w", err)
		}
		cleanup = c
	} else {
		log.InitWriter(os.Stderr)
	}

	level := log.ParseLevel(cfg.Log.Level)
	if debug {
		level = log.LevelDebug
	}
	log.SetMinLevel(level)
	return cleanup, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
