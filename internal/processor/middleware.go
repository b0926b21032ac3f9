package processor

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/zjrosen/artcollab/internal/command"
	"github.com/zjrosen/artcollab/internal/log"
)

// Middleware wraps a CommandHandler to add additional behavior.
// Middleware functions are composed using ChainMiddleware.
type Middleware func(CommandHandler) CommandHandler

// ChainMiddleware applies middlewares to a handler in reverse order.
// The first middleware in the list will be the outermost wrapper.
// For example: ChainMiddleware(handler, logging, journal, timeout)
// Results in: logging(journal(timeout(handler)))
func ChainMiddleware(handler CommandHandler, middlewares ...Middleware) CommandHandler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

func traceIDOf(cmd command.Command) string {
	if hasTraceID, ok := cmd.(interface{ TraceID() string }); ok {
		return hasTraceID.TraceID()
	}
	return ""
}

func sourceOf(cmd command.Command) command.CommandSource {
	if hasSource, ok := cmd.(interface{ Source() command.CommandSource }); ok {
		return hasSource.Source()
	}
	return ""
}

// outcome folds a handler return into (success, error).
func outcome(result *command.CommandResult, err error) (bool, error) {
	switch {
	case err != nil:
		return false, err
	case result != nil && !result.Success:
		return false, result.Error
	default:
		return true, nil
	}
}

// ===========================================================================
// Logging Middleware
// ===========================================================================

// LoggingMiddlewareConfig configures the logging middleware.
type LoggingMiddlewareConfig struct {
	// Reserved for future configuration options
}

// NewLoggingMiddleware creates a middleware that logs command execution.
// Infrastructure failures log at error level, refused transitions at warn.
func NewLoggingMiddleware(cfg LoggingMiddlewareConfig) Middleware {
	return func(next CommandHandler) CommandHandler {
		return HandlerFunc(func(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
			start := time.Now()

			result, err := next.Handle(ctx, cmd)

			duration := time.Since(start)
			fields := []any{
				"command_id", cmd.ID(),
				"command_type", cmd.Type().String(),
				"trace_id", traceIDOf(cmd),
				"duration", duration,
				"source", string(sourceOf(cmd)),
			}

			switch {
			case err != nil:
				log.ErrorErr(log.CatCmd, "command failed", err, fields...)
			case result != nil && !result.Success:
				errMsg := ""
				if result.Error != nil {
					errMsg = result.Error.Error()
				}
				log.Warn(log.CatCmd, "command completed with error result", append(fields, "error", errMsg)...)
			default:
				log.Debug(log.CatCmd, "command completed", fields...)
			}

			return result, err
		})
	}
}

// ===========================================================================
// Command Log Middleware
// ===========================================================================

// CommandLogMiddlewareConfig configures the command log middleware.
type CommandLogMiddlewareConfig struct {
	// EventBus receives a CommandLogEvent per command.
	// If nil, the middleware will be a no-op.
	EventBus EventPublisher
}

// EventPublisher is an interface for publishing events.
type EventPublisher interface {
	Publish(eventType string, payload any)
}

// NewCommandLogMiddleware creates a middleware that emits a CommandLogEvent
// for each processed command.
func NewCommandLogMiddleware(cfg CommandLogMiddlewareConfig) Middleware {
	return func(next CommandHandler) CommandHandler {
		return HandlerFunc(func(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
			if cfg.EventBus == nil {
				return next.Handle(ctx, cmd)
			}

			start := time.Now()
			result, err := next.Handle(ctx, cmd)
			success, cmdErr := outcome(result, err)

			cfg.EventBus.Publish("updated", CommandLogEvent{
				CommandID:   cmd.ID(),
				CommandType: cmd.Type(),
				Source:      sourceOf(cmd),
				Success:     success,
				Error:       cmdErr,
				Duration:    time.Since(start),
				Timestamp:   time.Now(),
				TraceID:     traceIDOf(cmd),
			})

			return result, err
		})
	}
}

// ===========================================================================
// Timeout Middleware
// ===========================================================================

// DefaultTimeoutWarningThreshold is the default threshold for logging slow handler warnings.
const DefaultTimeoutWarningThreshold = 100 * time.Millisecond

// Threshold is a duration that can be changed while the processor runs,
// e.g. when the config file is reloaded.
type Threshold struct {
	v atomic.Int64
}

// NewThreshold returns a Threshold holding d, or the default when d <= 0.
func NewThreshold(d time.Duration) *Threshold {
	t := &Threshold{}
	t.Set(d)
	return t
}

// Set replaces the threshold. Non-positive values restore the default.
func (t *Threshold) Set(d time.Duration) {
	if d <= 0 {
		d = DefaultTimeoutWarningThreshold
	}
	t.v.Store(int64(d))
}

// Get returns the current threshold.
func (t *Threshold) Get() time.Duration {
	return time.Duration(t.v.Load())
}

// TimeoutMiddlewareConfig configures the timeout middleware.
type TimeoutMiddlewareConfig struct {
	// WarningThreshold is used when Threshold is nil.
	WarningThreshold time.Duration
	// Threshold, when set, is consulted on every command.
	Threshold *Threshold
}

// NewTimeoutMiddleware creates a middleware that logs warnings when handlers
// exceed the configured threshold.
// It only logs; slow handlers are never aborted.
func NewTimeoutMiddleware(cfg TimeoutMiddlewareConfig) Middleware {
	threshold := cfg.Threshold
	if threshold == nil {
		threshold = NewThreshold(cfg.WarningThreshold)
	}

	return func(next CommandHandler) CommandHandler {
		return HandlerFunc(func(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
			start := time.Now()

			result, err := next.Handle(ctx, cmd)

			limit := threshold.Get()
			if duration := time.Since(start); duration > limit {
				log.Warn(log.CatCmd, "handler exceeded time threshold",
					"command_id", cmd.ID(),
					"command_type", cmd.Type().String(),
					"trace_id", traceIDOf(cmd),
					"duration", duration,
					"threshold", limit,
				)
			}

			return result, err
		})
	}
}
