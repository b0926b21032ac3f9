package handler

import (
	"context"

	"github.com/zjrosen/artcollab/internal/command"
	"github.com/zjrosen/artcollab/internal/engine"
)

// RegisterArtistHandler handles CmdRegisterArtist commands.
type RegisterArtistHandler struct {
	eng *engine.Engine
}

// NewRegisterArtistHandler creates a new RegisterArtistHandler.
func NewRegisterArtistHandler(eng *engine.Engine) *RegisterArtistHandler {
	return &RegisterArtistHandler{eng: eng}
}

// Handle registers the caller. Success value is true.
func (h *RegisterArtistHandler) Handle(_ context.Context, cmd command.Command) (*command.CommandResult, error) {
	c, ok := cmd.(*command.RegisterArtistCommand)
	if !ok {
		return nil, unexpected(cmd)
	}
	return finish(h.eng, true, h.eng.Register(c.Caller, c.Name))
}
