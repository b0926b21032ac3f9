package handler

import (
	"context"

	"github.com/zjrosen/artcollab/internal/command"
	"github.com/zjrosen/artcollab/internal/engine"
)

// MintNftHandler handles CmdMintNft commands.
type MintNftHandler struct {
	eng *engine.Engine
}

// NewMintNftHandler creates a new MintNftHandler.
func NewMintNftHandler(eng *engine.Engine) *MintNftHandler {
	return &MintNftHandler{eng: eng}
}

// Handle mints the token. Success value is the new NftID.
func (h *MintNftHandler) Handle(_ context.Context, cmd command.Command) (*command.CommandResult, error) {
	c, ok := cmd.(*command.MintNftCommand)
	if !ok {
		return nil, unexpected(cmd)
	}
	id, err := h.eng.MintNft(c.Caller, c.ArtworkID, c.Price)
	return finish(h.eng, id, err)
}

// BuyNftHandler handles CmdBuyNft commands.
// The OwnershipTransferRequested event it returns is what drives settlement.
type BuyNftHandler struct {
	eng *engine.Engine
}

// NewBuyNftHandler creates a new BuyNftHandler.
func NewBuyNftHandler(eng *engine.Engine) *BuyNftHandler {
	return &BuyNftHandler{eng: eng}
}

// Handle transfers ownership.
func (h *BuyNftHandler) Handle(_ context.Context, cmd command.Command) (*command.CommandResult, error) {
	c, ok := cmd.(*command.BuyNftCommand)
	if !ok {
		return nil, unexpected(cmd)
	}
	return finish(h.eng, true, h.eng.BuyNft(c.Caller, c.NftID))
}
