package command

import (
	"fmt"

	"github.com/zjrosen/artcollab/internal/domain"
)

// ===========================================================================
// NFT Registry Commands
// ===========================================================================

// MintNftCommand mints the token for a finalized artwork at price.
type MintNftCommand struct {
	*BaseCommand
	Caller    domain.ArtistID  `json:"caller"`
	ArtworkID domain.ArtworkID `json:"artworkId"`
	Price     uint64           `json:"price"`
}

// NewMintNftCommand creates a new MintNftCommand.
func NewMintNftCommand(source CommandSource, caller domain.ArtistID, artworkID domain.ArtworkID, price uint64) *MintNftCommand {
	base := NewBaseCommand(CmdMintNft, source)
	return &MintNftCommand{
		BaseCommand: &base,
		Caller:      caller,
		ArtworkID:   artworkID,
		Price:       price,
	}
}

// Validate checks that a caller is present.
func (c *MintNftCommand) Validate() error {
	if c.Caller.IsZero() {
		return ErrCallerRequired
	}
	return nil
}

// CallerID returns the acting identity.
func (c *MintNftCommand) CallerID() domain.ArtistID { return c.Caller }

// String returns a readable representation of the command.
func (c *MintNftCommand) String() string {
	return fmt.Sprintf("MintNft{caller=%s, artwork=%d, price=%d}", c.Caller, c.ArtworkID, c.Price)
}

// BuyNftCommand records the caller as the owner of a token.
type BuyNftCommand struct {
	*BaseCommand
	Caller domain.ArtistID `json:"caller"`
	NftID  domain.NftID    `json:"nftId"`
}

// NewBuyNftCommand creates a new BuyNftCommand.
func NewBuyNftCommand(source CommandSource, caller domain.ArtistID, nftID domain.NftID) *BuyNftCommand {
	base := NewBaseCommand(CmdBuyNft, source)
	return &BuyNftCommand{
		BaseCommand: &base,
		Caller:      caller,
		NftID:       nftID,
	}
}

// Validate checks that a caller is present.
func (c *BuyNftCommand) Validate() error {
	if c.Caller.IsZero() {
		return ErrCallerRequired
	}
	return nil
}

// CallerID returns the acting identity.
func (c *BuyNftCommand) CallerID() domain.ArtistID { return c.Caller }

// String returns a readable representation of the command.
func (c *BuyNftCommand) String() string {
	return fmt.Sprintf("BuyNft{caller=%s, nft=%d}", c.Caller, c.NftID)
}
