package processor

import (
	"context"
	"errors"

	"github.com/zjrosen/artcollab/internal/command"
)

// CommandHandler executes one command type.
// A handler reports a refused transition through CommandResult.Error with
// Success=false, and reserves the error return for infrastructure failures.
type CommandHandler interface {
	Handle(ctx context.Context, cmd command.Command) (*command.CommandResult, error)
}

// HandlerFunc adapts a function to the CommandHandler interface.
type HandlerFunc func(ctx context.Context, cmd command.Command) (*command.CommandResult, error)

// Handle calls f(ctx, cmd).
func (f HandlerFunc) Handle(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	return f(ctx, cmd)
}

// ErrUnknownCommandType is returned when no handler is registered for a command type.
var ErrUnknownCommandType = errors.New("unknown command type")
