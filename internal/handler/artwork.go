package handler

import (
	"context"

	"github.com/zjrosen/artcollab/internal/command"
	"github.com/zjrosen/artcollab/internal/engine"
)

// ===========================================================================
// CreateArtworkHandler
// ===========================================================================

// CreateArtworkHandler handles CmdCreateArtwork commands.
type CreateArtworkHandler struct {
	eng *engine.Engine
}

// NewCreateArtworkHandler creates a new CreateArtworkHandler.
func NewCreateArtworkHandler(eng *engine.Engine) *CreateArtworkHandler {
	return &CreateArtworkHandler{eng: eng}
}

// Handle creates the artwork. Success value is the new ArtworkID.
func (h *CreateArtworkHandler) Handle(_ context.Context, cmd command.Command) (*command.CommandResult, error) {
	c, ok := cmd.(*command.CreateArtworkCommand)
	if !ok {
		return nil, unexpected(cmd)
	}
	id, err := h.eng.CreateArtwork(c.Caller, c.Title, c.Description)
	return finish(h.eng, id, err)
}

// ===========================================================================
// AddContributionHandler
// ===========================================================================

// AddContributionHandler handles CmdAddContribution commands.
type AddContributionHandler struct {
	eng *engine.Engine
}

// NewAddContributionHandler creates a new AddContributionHandler.
func NewAddContributionHandler(eng *engine.Engine) *AddContributionHandler {
	return &AddContributionHandler{eng: eng}
}

// Handle appends the contribution.
func (h *AddContributionHandler) Handle(_ context.Context, cmd command.Command) (*command.CommandResult, error) {
	c, ok := cmd.(*command.AddContributionCommand)
	if !ok {
		return nil, unexpected(cmd)
	}
	return finish(h.eng, true, h.eng.AddContribution(c.Caller, c.ArtworkID, c.Amount))
}

// ===========================================================================
// FinalizeArtworkHandler
// ===========================================================================

// FinalizeArtworkHandler handles CmdFinalizeArtwork commands.
type FinalizeArtworkHandler struct {
	eng *engine.Engine
}

// NewFinalizeArtworkHandler creates a new FinalizeArtworkHandler.
func NewFinalizeArtworkHandler(eng *engine.Engine) *FinalizeArtworkHandler {
	return &FinalizeArtworkHandler{eng: eng}
}

// Handle finalizes the artwork.
func (h *FinalizeArtworkHandler) Handle(_ context.Context, cmd command.Command) (*command.CommandResult, error) {
	c, ok := cmd.(*command.FinalizeArtworkCommand)
	if !ok {
		return nil, unexpected(cmd)
	}
	return finish(h.eng, true, h.eng.FinalizeArtwork(c.Caller, c.ArtworkID))
}
