// Package core assembles the registry runtime: engine, command processor,
// journal, tracing and settlement, behind one lifecycle.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/artcollab/internal/command"
	"github.com/zjrosen/artcollab/internal/config"
	"github.com/zjrosen/artcollab/internal/domain"
	"github.com/zjrosen/artcollab/internal/engine"
	"github.com/zjrosen/artcollab/internal/handler"
	"github.com/zjrosen/artcollab/internal/infrastructure/sqlite"
	"github.com/zjrosen/artcollab/internal/log"
	"github.com/zjrosen/artcollab/internal/processor"
	"github.com/zjrosen/artcollab/internal/pubsub"
	"github.com/zjrosen/artcollab/internal/settlement"
	"github.com/zjrosen/artcollab/internal/tracing"
)

// ErrReplayRefused is returned when a journaled command is refused on replay,
// meaning the journal no longer reproduces a consistent history.
var ErrReplayRefused = errors.New("journaled command refused on replay")

// InfrastructureConfig holds everything needed to build an Infrastructure.
type InfrastructureConfig struct {
	// QueueCapacity bounds the processor queue. Zero uses the processor default.
	QueueCapacity int
	// SlowThreshold is shared with the timeout middleware so it can be reloaded live.
	// Nil uses a fixed 100ms.
	SlowThreshold *processor.Threshold
	// JournalPath enables the SQLite journal when non-empty.
	JournalPath string
	Tracing     tracing.Config
	// Settler receives ownership transfer requests. Nil logs them.
	Settler settlement.Settler
	// Appender replaces the journal that successful mutations are written to.
	// Replay at Start still reads from JournalPath.
	Appender processor.Appender
}

// FromConfig maps the application config onto an InfrastructureConfig.
func FromConfig(cfg config.Config, threshold *processor.Threshold) InfrastructureConfig {
	ic := InfrastructureConfig{
		QueueCapacity: cfg.Processor.QueueCapacity,
		SlowThreshold: threshold,
		Tracing: tracing.Config{
			Enabled:      cfg.Tracing.Enabled,
			Exporter:     cfg.Tracing.Exporter,
			FilePath:     cfg.Tracing.FilePath,
			OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
			SampleRate:   cfg.Tracing.SampleRate,
			ServiceName:  cfg.Tracing.ServiceName,
		},
	}
	if ic.Tracing.FilePath == "" {
		ic.Tracing.FilePath = config.DefaultTracesFilePath()
	}
	if cfg.Journal.Enabled {
		ic.JournalPath = cfg.Journal.Path
	}
	return ic
}

// Infrastructure owns the running registry.
type Infrastructure struct {
	Engine     *engine.Engine
	Processor  *processor.CommandProcessor
	EventBus   *pubsub.Broker[any]
	Dispatcher *settlement.Dispatcher

	db      *sqlite.DB
	tracing *tracing.Provider

	ctx            context.Context
	cancel         context.CancelFunc
	dispatcherDone <-chan struct{}
}

// NewInfrastructure builds the registry. The journal database is opened and
// migrated here; nothing runs until Start.
func NewInfrastructure(cfg InfrastructureConfig) (*Infrastructure, error) {
	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("creating tracing provider: %w", err)
	}

	var db *sqlite.DB
	var appender processor.Appender
	if cfg.JournalPath != "" {
		db, err = sqlite.NewDB(cfg.JournalPath)
		if err != nil {
			_ = provider.Shutdown(context.Background())
			return nil, fmt.Errorf("opening journal: %w", err)
		}
		appender = db.Journal()
	}
	if cfg.Appender != nil {
		appender = cfg.Appender
	}

	eventBus := pubsub.NewBroker[any]()

	threshold := cfg.SlowThreshold
	if threshold == nil {
		threshold = processor.NewThreshold(0)
	}

	eng := engine.New()

	// Journal sits innermost so it sees the handler's own result and can
	// undo the transition when the append fails.
	cmdProcessor := processor.NewCommandProcessor(
		processor.WithQueueCapacity(cfg.QueueCapacity),
		processor.WithEventBus(eventBus),
		processor.WithMiddleware(
			processor.NewLoggingMiddleware(processor.LoggingMiddlewareConfig{}),
			processor.NewCommandLogMiddleware(processor.CommandLogMiddlewareConfig{EventBus: &eventBusAdapter{broker: eventBus}}),
			tracing.NewTracingMiddleware(tracing.TracingMiddlewareConfig{Tracer: provider.Tracer()}),
			processor.NewTimeoutMiddleware(processor.TimeoutMiddlewareConfig{Threshold: threshold}),
			processor.NewJournalMiddleware(processor.JournalMiddlewareConfig{Journal: appender, Rollback: eng}),
		),
	)

	handler.RegisterAll(cmdProcessor, eng)

	ctx, cancel := context.WithCancel(context.Background())

	return &Infrastructure{
		Engine:     eng,
		Processor:  cmdProcessor,
		EventBus:   eventBus,
		Dispatcher: settlement.NewDispatcher(eventBus, cfg.Settler),
		db:         db,
		tracing:    provider,
		ctx:        ctx,
		cancel:     cancel,
	}, nil
}

// Start runs the processor, replays the journal and then starts settlement.
// Replayed purchases are not settled again.
func (i *Infrastructure) Start() error {
	go i.Processor.Run(i.ctx)
	if err := i.Processor.WaitForReady(i.ctx); err != nil {
		return fmt.Errorf("waiting for command processor: %w", err)
	}

	if i.db != nil {
		start := time.Now()
		n, err := i.Replay(i.ctx, i.db.Journal())
		if err != nil {
			return fmt.Errorf("replaying journal: %w", err)
		}
		log.Info(log.CatJournal, "journal replayed", "entries", n, "duration", time.Since(start))
	}

	i.dispatcherDone = i.Dispatcher.Start(i.ctx)
	return nil
}

// Replayer yields journaled mutations in order. Satisfied by *sqlite.Journal.
type Replayer interface {
	Replay(ctx context.Context, fn func(sqlite.Entry, command.Mutation) error) (int, error)
}

// Replay feeds every entry of src through the processor tagged as a replay.
// It stops at the first entry that fails or is refused.
func (i *Infrastructure) Replay(ctx context.Context, src Replayer) (int, error) {
	return src.Replay(ctx, func(e sqlite.Entry, m command.Mutation) error {
		r, err := i.Execute(ctx, m)
		if err != nil {
			return err
		}
		if !r.IsOK() {
			return fmt.Errorf("%w: %s (seq %d) got code %d", ErrReplayRefused, e.CommandType, e.Seq, r.ErrCode())
		}
		return nil
	})
}

// Journal returns the journal, or nil when journaling is disabled.
func (i *Infrastructure) Journal() *sqlite.Journal {
	if i.db == nil {
		return nil
	}
	return i.db.Journal()
}

// Shutdown drains queued commands, stops settlement, flushes spans and closes
// the journal.
func (i *Infrastructure) Shutdown(ctx context.Context) error {
	i.Processor.Drain()
	i.cancel()
	if i.dispatcherDone != nil {
		select {
		case <-i.dispatcherDone:
		case <-ctx.Done():
		}
	}
	i.EventBus.Close()

	var errs []error
	if err := i.tracing.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("flushing traces: %w", err))
	}
	if i.db != nil {
		if err := i.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing journal: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Execute submits cmd and waits for its tagged result. Refusals come back as
// an err Result with a nil error; validation, queue and journal failures come
// back as errors.
func (i *Infrastructure) Execute(ctx context.Context, cmd command.Command) (domain.Result, error) {
	res, err := i.Processor.SubmitAndWait(ctx, cmd)
	if err != nil {
		return domain.Result{}, err
	}
	return ResultFrom(res)
}

// ResultFrom converts a processor result into its wire form.
func ResultFrom(res *command.CommandResult) (domain.Result, error) {
	if res == nil {
		return domain.Result{}, fmt.Errorf("no result")
	}
	if r, ok := res.Data.(domain.Result); ok {
		return r, nil
	}
	if res.Error != nil {
		return domain.Result{}, res.Error
	}
	return domain.OK(res.Data), nil
}

// eventBusAdapter lets the command log middleware publish onto the typed broker.
type eventBusAdapter struct {
	broker *pubsub.Broker[any]
}

func (a *eventBusAdapter) Publish(eventType string, payload any) {
	a.broker.Publish(pubsub.EventType(eventType), payload)
}
