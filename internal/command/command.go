// Package command defines the Command interface, the command types of the art
// registry, and the BaseCommand struct every concrete command embeds.
package command

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// Command represents an explicit intent entering the registry.
// All commands must implement this interface to be processed by the FIFO processor.
type Command interface {
	// ID returns unique command identifier for tracing/correlation
	ID() string
	// Type returns the command type for routing to handlers
	Type() CommandType
	// Validate checks command preconditions before execution
	Validate() error
	// Priority returns execution priority (0=normal, 1=urgent)
	Priority() int
	// CreatedAt returns when command was created
	CreatedAt() time.Time
}

// CommandType identifies the kind of command for handler routing.
type CommandType string

const (
	// Identity Commands

	// CmdRegisterArtist registers the caller as an artist.
	CmdRegisterArtist CommandType = "register_artist"

	// Artwork Ledger Commands

	// CmdCreateArtwork creates an artwork owned by the caller.
	CmdCreateArtwork CommandType = "create_artwork"
	// CmdAddContribution appends the caller's contribution to an artwork.
	CmdAddContribution CommandType = "add_contribution"
	// CmdFinalizeArtwork freezes an artwork's contributions.
	CmdFinalizeArtwork CommandType = "finalize_artwork"

	// NFT Registry Commands

	// CmdMintNft mints the token for a finalized artwork.
	CmdMintNft CommandType = "mint_nft"
	// CmdBuyNft records the caller as a token's new owner.
	CmdBuyNft CommandType = "buy_nft"

	// Queries

	CmdIsRegistered CommandType = "is_registered"
	CmdGetArtist    CommandType = "get_artist"
	CmdGetArtwork   CommandType = "get_artwork"
	CmdGetNft       CommandType = "get_nft"
	CmdListArtworks CommandType = "list_artworks"
	CmdListNfts     CommandType = "list_nfts"
)

// String returns the string representation of the CommandType.
func (ct CommandType) String() string {
	return string(ct)
}

// IsMutation reports whether commands of this type change engine state.
// Only mutations are journaled and replayed.
func (ct CommandType) IsMutation() bool {
	switch ct {
	case CmdRegisterArtist, CmdCreateArtwork, CmdAddContribution,
		CmdFinalizeArtwork, CmdMintNft, CmdBuyNft:
		return true
	default:
		return false
	}
}

// CommandSource identifies where the command originated.
type CommandSource string

const (
	// SourceAPI indicates the command came from the HTTP API.
	SourceAPI CommandSource = "api"
	// SourceCLI indicates the command came from a CLI subcommand.
	SourceCLI CommandSource = "cli"
	// SourceReplay indicates the command was rebuilt from the journal.
	SourceReplay CommandSource = "replay"
	// SourceInternal indicates the command was system-generated.
	SourceInternal CommandSource = "internal"
)

// String returns the string representation of the CommandSource.
func (cs CommandSource) String() string {
	return string(cs)
}

// BaseCommand provides common fields for all commands.
// Concrete command types should embed this struct.
type BaseCommand struct {
	id          string
	cmdType     CommandType
	priority    int
	createdAt   time.Time
	source      CommandSource
	traceID     string
	spanContext trace.SpanContext
}

// NewBaseCommand creates a BaseCommand with a generated UUID and current timestamp.
func NewBaseCommand(cmdType CommandType, source CommandSource) BaseCommand {
	return BaseCommand{
		id:        uuid.New().String(),
		cmdType:   cmdType,
		createdAt: time.Now(),
		source:    source,
	}
}

// ID returns the unique command identifier.
func (b *BaseCommand) ID() string {
	return b.id
}

// SetID overrides the generated identifier. Used when rebuilding journaled commands.
func (b *BaseCommand) SetID(id string) {
	b.id = id
}

// Type returns the command type for handler routing.
func (b *BaseCommand) Type() CommandType {
	return b.cmdType
}

// Priority returns the execution priority (0=normal, 1=urgent).
func (b *BaseCommand) Priority() int {
	return b.priority
}

// SetPriority sets the execution priority.
func (b *BaseCommand) SetPriority(priority int) {
	b.priority = priority
}

// CreatedAt returns when the command was created.
func (b *BaseCommand) CreatedAt() time.Time {
	return b.createdAt
}

// SetCreatedAt overrides the creation time. Used when rebuilding journaled commands.
func (b *BaseCommand) SetCreatedAt(t time.Time) {
	b.createdAt = t
}

// Source returns the origin of this command.
func (b *BaseCommand) Source() CommandSource {
	return b.source
}

// TraceID returns the correlation ID for related commands.
// A valid SpanContext takes precedence over a manually set trace ID.
func (b *BaseCommand) TraceID() string {
	if b.spanContext.IsValid() {
		return b.spanContext.TraceID().String()
	}
	return b.traceID
}

// SetTraceID sets the correlation ID for command tracing, e.g. from a request header.
func (b *BaseCommand) SetTraceID(traceID string) {
	b.traceID = traceID
}

// SpanContext returns the OpenTelemetry span context for trace propagation.
func (b *BaseCommand) SpanContext() trace.SpanContext {
	return b.spanContext
}

// SetSpanContext sets the OpenTelemetry span context for trace propagation.
func (b *BaseCommand) SetSpanContext(sc trace.SpanContext) {
	b.spanContext = sc
}

// Validate is a no-op for BaseCommand. Concrete commands should override this.
func (b *BaseCommand) Validate() error {
	return nil
}

// CommandResult contains the outcome of command execution.
type CommandResult struct {
	// Success indicates whether the command executed successfully.
	Success bool
	// Events contains domain events to publish on the event bus.
	Events []any
	// Error contains the error if Success is false.
	Error error
	// Data contains optional result data for the caller.
	Data any
}

// ErrQueueFull is returned when the command queue has reached capacity.
var ErrQueueFull = errors.New("command queue is full")

// ErrCallerRequired is returned by Validate when a mutation has no caller identity.
var ErrCallerRequired = errors.New("caller id is required")
