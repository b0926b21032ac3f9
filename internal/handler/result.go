// Package handler provides the command handlers that apply registry commands
// to the engine.
package handler

import (
	"fmt"

	"github.com/zjrosen/artcollab/internal/command"
	"github.com/zjrosen/artcollab/internal/domain"
	"github.com/zjrosen/artcollab/internal/engine"
	"github.com/zjrosen/artcollab/internal/processor"
)

// SuccessWithEvents builds a successful result carrying value as an ok Result.
func SuccessWithEvents(value any, events ...any) *command.CommandResult {
	return &command.CommandResult{
		Success: true,
		Data:    domain.OK(value),
		Events:  events,
	}
}

// Refused builds a failure result for a transition the engine rejected.
// Data carries the err Result so callers can put it on the wire unchanged.
func Refused(err *domain.Error) *command.CommandResult {
	return &command.CommandResult{
		Success: false,
		Error:   err,
		Data:    domain.Err(err),
	}
}

// finish turns an engine outcome into a handler return.
// Domain errors become failure results; anything else is an infrastructure error.
func finish(eng *engine.Engine, value any, err error) (*command.CommandResult, error) {
	events := eng.TakeEvents()
	if err != nil {
		if de, ok := domain.AsError(err); ok {
			return Refused(de), nil
		}
		return nil, err
	}
	return SuccessWithEvents(value, events...), nil
}

// unexpected reports a command routed to the wrong handler.
func unexpected(cmd command.Command) error {
	return fmt.Errorf("%w: %T for %s", processor.ErrUnknownCommandType, cmd, cmd.Type())
}

// Registrar accepts handler registrations. Satisfied by *processor.CommandProcessor.
type Registrar interface {
	RegisterHandler(cmdType command.CommandType, handler processor.CommandHandler)
}

// RegisterAll registers a handler for every command type against eng.
func RegisterAll(r Registrar, eng *engine.Engine) {
	r.RegisterHandler(command.CmdRegisterArtist, NewRegisterArtistHandler(eng))
	r.RegisterHandler(command.CmdCreateArtwork, NewCreateArtworkHandler(eng))
	r.RegisterHandler(command.CmdAddContribution, NewAddContributionHandler(eng))
	r.RegisterHandler(command.CmdFinalizeArtwork, NewFinalizeArtworkHandler(eng))
	r.RegisterHandler(command.CmdMintNft, NewMintNftHandler(eng))
	r.RegisterHandler(command.CmdBuyNft, NewBuyNftHandler(eng))

	queries := NewQueryHandler(eng)
	for _, t := range []command.CommandType{
		command.CmdIsRegistered, command.CmdGetArtist, command.CmdGetArtwork,
		command.CmdGetNft, command.CmdListArtworks, command.CmdListNfts,
	} {
		r.RegisterHandler(t, queries)
	}
}
