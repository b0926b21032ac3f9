// Package config provides configuration types, defaults and validation for artcollab.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zjrosen/artcollab/internal/log"
)

// AppName names config directories and env prefixes.
const AppName = "artcollab"

// Config holds all configuration options for artcollab.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" yaml:"server"`
	Processor   ProcessorConfig   `mapstructure:"processor" yaml:"processor"`
	Journal     JournalConfig     `mapstructure:"journal" yaml:"journal"`
	Tracing     TracingConfig     `mapstructure:"tracing" yaml:"tracing"`
	Idempotency IdempotencyConfig `mapstructure:"idempotency" yaml:"idempotency"`
	Auth        AuthConfig        `mapstructure:"auth" yaml:"auth"`
	Log         LogConfig         `mapstructure:"log" yaml:"log"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	CORSOrigins     []string      `mapstructure:"cors_origins" yaml:"cors_origins"` // empty disables CORS
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"` // zero disables
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// ProcessorConfig configures the command processor.
type ProcessorConfig struct {
	QueueCapacity int `mapstructure:"queue_capacity" yaml:"queue_capacity"`

	// SlowCommandThreshold is when a handler gets a slow-command warning.
	// Reloaded live when the config file changes.
	SlowCommandThreshold time.Duration `mapstructure:"slow_command_threshold" yaml:"slow_command_threshold"`
}

// JournalConfig configures the SQLite command journal.
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// TracingConfig holds OpenTelemetry settings.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Exporter selects the trace export backend: none, file, stdout or otlp.
	Exporter string `mapstructure:"exporter" yaml:"exporter"`

	FilePath     string  `mapstructure:"file_path" yaml:"file_path"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate" yaml:"sample_rate"`
	ServiceName  string  `mapstructure:"service_name" yaml:"service_name"`
}

// IdempotencyConfig controls how long Idempotency-Key results are remembered.
type IdempotencyConfig struct {
	TTL             time.Duration `mapstructure:"ttl" yaml:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" yaml:"cleanup_interval"`
}

// AuthConfig says where the caller identity comes from.
type AuthConfig struct {
	// CallerHeader carries the opaque caller id when no JWT secret is set.
	CallerHeader string `mapstructure:"caller_header" yaml:"caller_header"`
	// JWTSecret, when set, switches to HS256 bearer tokens whose sub claim is the caller.
	JWTSecret string `mapstructure:"jwt_secret" yaml:"jwt_secret"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // debug, info, warn, error
}

// DefaultJournalPath returns ~/.artcollab/journal.db, or a relative path when
// the home directory is unavailable.
func DefaultJournalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("."+AppName, "journal.db")
	}
	return filepath.Join(home, "."+AppName, "journal.db")
}

// DefaultTracesFilePath returns ~/.config/artcollab/traces/traces.jsonl or "".
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName, "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:            "127.0.0.1:8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    0,
			ShutdownTimeout: 30 * time.Second,
		},
		Processor: ProcessorConfig{
			QueueCapacity:        1000,
			SlowCommandThreshold: 100 * time.Millisecond,
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    DefaultJournalPath(),
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // derived at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
			ServiceName:  AppName,
		},
		Idempotency: IdempotencyConfig{
			TTL:             10 * time.Minute,
			CleanupInterval: 30 * time.Minute,
		},
		Auth: AuthConfig{
			CallerHeader: "X-Caller-ID",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks every section and joins the problems found.
func (c Config) Validate() error {
	return errors.Join(
		ValidateServer(c.Server),
		ValidateProcessor(c.Processor),
		ValidateJournal(c.Journal),
		ValidateTracing(c.Tracing),
		ValidateAuth(c.Auth),
	)
}

// ValidateServer checks the HTTP settings.
func ValidateServer(s ServerConfig) error {
	if strings.TrimSpace(s.Addr) == "" {
		return fmt.Errorf("server.addr is required")
	}
	if s.ReadTimeout < 0 || s.WriteTimeout < 0 || s.ShutdownTimeout < 0 {
		return fmt.Errorf("server timeouts must not be negative")
	}
	return nil
}

// ValidateProcessor checks the processor settings.
func ValidateProcessor(p ProcessorConfig) error {
	if p.QueueCapacity <= 0 {
		return fmt.Errorf("processor.queue_capacity must be positive, got %d", p.QueueCapacity)
	}
	if p.SlowCommandThreshold < 0 {
		return fmt.Errorf("processor.slow_command_threshold must not be negative")
	}
	return nil
}

// ValidateJournal requires a path when the journal is enabled.
func ValidateJournal(j JournalConfig) error {
	if j.Enabled && strings.TrimSpace(j.Path) == "" {
		return fmt.Errorf("journal.path is required when the journal is enabled")
	}
	return nil
}

// ValidateTracing checks tracing configuration.
// Empty values use defaults; path requirements only apply when enabled.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	switch tracing.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
	}

	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// ValidateAuth requires some source of caller identity.
func ValidateAuth(a AuthConfig) error {
	if a.JWTSecret == "" && strings.TrimSpace(a.CallerHeader) == "" {
		return fmt.Errorf("auth.caller_header is required when auth.jwt_secret is empty")
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# artcollab configuration

# HTTP API
server:
  addr: 127.0.0.1:8080
  # Origins allowed to call the API from a browser. Empty disables CORS.
  cors_origins: []
  read_timeout: 10s
  write_timeout: 0s      # 0 disables; event streams end when it elapses
  shutdown_timeout: 30s   # how long in-flight requests get on shutdown

# Command processor
processor:
  queue_capacity: 1000            # commands waiting beyond this are rejected with 503
  slow_command_threshold: 100ms   # log a warning when a command takes longer (reloads live)

# Command journal (SQLite). Successful mutations are appended and replayed on start.
journal:
  enabled: true
  # path: ~/.artcollab/journal.db

# Distributed tracing
tracing:
  enabled: false
  exporter: file              # none, file, stdout, otlp
  # file_path: ~/.config/artcollab/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0            # 0.0-1.0
  service_name: artcollab

# Results of POST requests carrying an Idempotency-Key header are replayed
# for repeats with the same key and caller until ttl passes.
idempotency:
  ttl: 10m
  cleanup_interval: 30m

# Caller identity
auth:
  caller_header: X-Caller-ID
  # When set, callers authenticate with an HS256 bearer token; the sub claim is the caller id.
  # jwt_secret: change-me

log:
  level: info   # debug, info, warn, error (reloads live)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
