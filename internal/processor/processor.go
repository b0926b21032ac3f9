// Package processor provides the FIFO command processor.
// A single goroutine executes every command in submission order, which is
// what gives engine operations their atomicity and total order.
package processor

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/zjrosen/artcollab/internal/command"
	"github.com/zjrosen/artcollab/internal/log"
	"github.com/zjrosen/artcollab/internal/pubsub"
)

// DefaultQueueCapacity is the default buffer size for the command queue.
const DefaultQueueCapacity = 1000

// Option configures the CommandProcessor.
type Option func(*CommandProcessor)

// WithQueueCapacity sets the command queue buffer capacity.
func WithQueueCapacity(capacity int) Option {
	return func(p *CommandProcessor) {
		if capacity > 0 {
			p.queueCapacity = capacity
		}
	}
}

// WithEventBus sets the event bus for publishing command results.
func WithEventBus(bus *pubsub.Broker[any]) Option {
	return func(p *CommandProcessor) {
		p.eventBus = bus
	}
}

// WithMiddleware adds middleware to be applied to all handlers.
// Middleware is applied in order: first middleware wraps outermost.
func WithMiddleware(middlewares ...Middleware) Option {
	return func(p *CommandProcessor) {
		p.middlewares = append(p.middlewares, middlewares...)
	}
}

// CommandProcessor processes commands sequentially in FIFO order.
type CommandProcessor struct {
	queue         chan queueItem
	queueCapacity int

	handlers    map[command.CommandType]CommandHandler
	middlewares []Middleware

	eventBus *pubsub.Broker[any]

	// Lifecycle management
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// State tracking
	running  atomic.Bool
	started  atomic.Bool
	readyCh  chan struct{}
	readyMu  sync.Mutex
	readySet bool

	// Guards the send side of queue against a concurrent Drain closing it.
	submitMu sync.RWMutex

	processedCount atomic.Int64
	errorCount     atomic.Int64
}

// queueItem wraps a command with an optional result channel for SubmitAndWait.
type queueItem struct {
	cmd      command.Command
	resultCh chan *commandResponse // nil for fire-and-forget Submit
}

type commandResponse struct {
	result *command.CommandResult
	err    error
}

// NewCommandProcessor creates a new CommandProcessor with the given options.
func NewCommandProcessor(opts ...Option) *CommandProcessor {
	p := &CommandProcessor{
		queueCapacity: DefaultQueueCapacity,
		handlers:      make(map[command.CommandType]CommandHandler),
		readyCh:       make(chan struct{}),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.queue = make(chan queueItem, p.queueCapacity)
	return p
}

// RegisterHandler registers a handler for a command type.
// Must be called before Run. The handler is wrapped with all configured middleware.
func (p *CommandProcessor) RegisterHandler(cmdType command.CommandType, handler CommandHandler) {
	p.handlers[cmdType] = ChainMiddleware(handler, p.middlewares...)
}

// HasHandler reports whether a handler is registered for cmdType.
func (p *CommandProcessor) HasHandler(cmdType command.CommandType) bool {
	_, ok := p.handlers[cmdType]
	return ok
}

// Run starts the command processing loop.
// It blocks until ctx is cancelled, Stop is called, or Drain empties the queue.
// Run can only be called once; later calls return immediately.
func (p *CommandProcessor) Run(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		return
	}

	p.ctx, p.cancel = context.WithCancel(ctx)

	// Add to wait group BEFORE setting running to avoid race with Drain()
	p.wg.Add(1)
	p.running.Store(true)

	p.readyMu.Lock()
	if !p.readySet {
		close(p.readyCh)
		p.readySet = true
	}
	p.readyMu.Unlock()

	defer func() {
		p.running.Store(false)
		p.wg.Done()
	}()

	log.Debug(log.CatCmd, "command processor started", "queue_capacity", p.queueCapacity)

	for {
		select {
		case <-p.ctx.Done():
			return
		case item, ok := <-p.queue:
			if !ok {
				return
			}
			p.processItem(item)
		}
	}
}

// WaitForReady blocks until the processor is ready to accept commands.
func (p *CommandProcessor) WaitForReady(ctx context.Context) error {
	select {
	case <-p.readyCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Submit adds a command to the queue for asynchronous processing.
// Returns ErrQueueFull if the queue is at capacity or the processor is not running.
func (p *CommandProcessor) Submit(cmd command.Command) error {
	p.submitMu.RLock()
	defer p.submitMu.RUnlock()

	if !p.running.Load() {
		return command.ErrQueueFull
	}

	select {
	case p.queue <- queueItem{cmd: cmd}:
		return nil
	default:
		return command.ErrQueueFull
	}
}

// SubmitAndWait adds a command to the queue and waits for the result.
// Cancelling ctx abandons the wait; a command that was already queued still runs.
func (p *CommandProcessor) SubmitAndWait(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	resultCh := make(chan *commandResponse, 1)

	if err := p.enqueue(ctx, queueItem{cmd: cmd, resultCh: resultCh}); err != nil {
		return nil, err
	}

	select {
	case resp := <-resultCh:
		return resp.result, resp.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.ctx.Done():
		return nil, context.Canceled
	}
}

func (p *CommandProcessor) enqueue(ctx context.Context, item queueItem) error {
	p.submitMu.RLock()
	defer p.submitMu.RUnlock()

	if !p.running.Load() {
		return command.ErrQueueFull
	}

	select {
	case p.queue <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return command.ErrQueueFull
	}
}

// Stop cancels the processing context and waits for shutdown.
// Pending commands in the queue are NOT processed.
func (p *CommandProcessor) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

// Drain processes all remaining commands in the queue before stopping.
func (p *CommandProcessor) Drain() {
	p.submitMu.Lock()
	if !p.running.Load() {
		p.submitMu.Unlock()
		return
	}
	p.running.Store(false)
	close(p.queue)
	p.submitMu.Unlock()

	p.wg.Wait()
}

// IsRunning returns true if the processor is currently accepting commands.
func (p *CommandProcessor) IsRunning() bool {
	return p.running.Load()
}

// ProcessedCount returns the total number of commands processed.
func (p *CommandProcessor) ProcessedCount() int64 {
	return p.processedCount.Load()
}

// ErrorCount returns the total number of commands that resulted in errors.
func (p *CommandProcessor) ErrorCount() int64 {
	return p.errorCount.Load()
}

// QueueLength returns the current number of pending commands.
func (p *CommandProcessor) QueueLength() int {
	return len(p.queue)
}

// processItem handles a single command from the queue.
func (p *CommandProcessor) processItem(item queueItem) {
	result := p.processCommand(item.cmd)

	p.processedCount.Add(1)
	if result != nil && !result.Success {
		p.errorCount.Add(1)
	}

	if item.resultCh != nil {
		item.resultCh <- &commandResponse{result: result}
		close(item.resultCh)
	}
}

// processCommand executes the command processing pipeline.
// Errors are wrapped in the CommandResult, not returned separately.
func (p *CommandProcessor) processCommand(cmd command.Command) *command.CommandResult {
	// Step 1: Validate the command
	if err := cmd.Validate(); err != nil {
		p.emitErrorEvent(cmd, err)
		return &command.CommandResult{Success: false, Error: &ValidationError{Err: err}}
	}

	// Step 2: Route to handler
	handler, ok := p.handlers[cmd.Type()]
	if !ok {
		p.emitErrorEvent(cmd, ErrUnknownCommandType)
		return &command.CommandResult{Success: false, Error: ErrUnknownCommandType}
	}

	// Step 3: Execute handler
	result, err := handler.Handle(p.ctx, cmd)
	if err != nil {
		p.emitErrorEvent(cmd, err)
		return &command.CommandResult{Success: false, Error: err}
	}
	if result == nil {
		result = &command.CommandResult{Success: true}
	}

	// Step 4: Emit events from result
	if len(result.Events) > 0 {
		p.emitEvents(result.Events)
	}
	if !result.Success && result.Error != nil {
		p.emitErrorEvent(cmd, result.Error)
	}

	return result
}

// emitEvents publishes events to the event bus.
func (p *CommandProcessor) emitEvents(events []any) {
	if p.eventBus == nil {
		return
	}
	for _, event := range events {
		p.eventBus.Publish(pubsub.CreatedEvent, event)
	}
}

// emitErrorEvent publishes an error event for command failures.
func (p *CommandProcessor) emitErrorEvent(cmd command.Command, err error) {
	if p.eventBus == nil {
		return
	}
	p.eventBus.Publish(pubsub.UpdatedEvent, CommandErrorEvent{
		CommandID:   cmd.ID(),
		CommandType: cmd.Type(),
		Error:       err,
	})
}
