package command

import (
	"fmt"

	"github.com/zjrosen/artcollab/internal/domain"
)

// ===========================================================================
// Artwork Ledger Commands
// ===========================================================================

// CreateArtworkCommand creates an artwork with the caller as creator.
type CreateArtworkCommand struct {
	*BaseCommand
	Caller      domain.ArtistID `json:"caller"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
}

// NewCreateArtworkCommand creates a new CreateArtworkCommand.
func NewCreateArtworkCommand(source CommandSource, caller domain.ArtistID, title, description string) *CreateArtworkCommand {
	base := NewBaseCommand(CmdCreateArtwork, source)
	return &CreateArtworkCommand{
		BaseCommand: &base,
		Caller:      caller,
		Title:       title,
		Description: description,
	}
}

// Validate checks that a caller is present.
func (c *CreateArtworkCommand) Validate() error {
	if c.Caller.IsZero() {
		return ErrCallerRequired
	}
	return nil
}

// CallerID returns the acting identity.
func (c *CreateArtworkCommand) CallerID() domain.ArtistID { return c.Caller }

// String returns a readable representation of the command.
func (c *CreateArtworkCommand) String() string {
	return fmt.Sprintf("CreateArtwork{caller=%s, title=%q}", c.Caller, truncate(c.Title, 50))
}

// AddContributionCommand credits the caller with amount on an artwork.
type AddContributionCommand struct {
	*BaseCommand
	Caller    domain.ArtistID  `json:"caller"`
	ArtworkID domain.ArtworkID `json:"artworkId"`
	Amount    uint64           `json:"amount"`
}

// NewAddContributionCommand creates a new AddContributionCommand.
func NewAddContributionCommand(source CommandSource, caller domain.ArtistID, artworkID domain.ArtworkID, amount uint64) *AddContributionCommand {
	base := NewBaseCommand(CmdAddContribution, source)
	return &AddContributionCommand{
		BaseCommand: &base,
		Caller:      caller,
		ArtworkID:   artworkID,
		Amount:      amount,
	}
}

// Validate checks that a caller is present.
func (c *AddContributionCommand) Validate() error {
	if c.Caller.IsZero() {
		return ErrCallerRequired
	}
	return nil
}

// CallerID returns the acting identity.
func (c *AddContributionCommand) CallerID() domain.ArtistID { return c.Caller }

// String returns a readable representation of the command.
func (c *AddContributionCommand) String() string {
	return fmt.Sprintf("AddContribution{caller=%s, artwork=%d, amount=%d}", c.Caller, c.ArtworkID, c.Amount)
}

// FinalizeArtworkCommand closes an artwork to further contributions.
type FinalizeArtworkCommand struct {
	*BaseCommand
	Caller    domain.ArtistID  `json:"caller"`
	ArtworkID domain.ArtworkID `json:"artworkId"`
}

// NewFinalizeArtworkCommand creates a new FinalizeArtworkCommand.
func NewFinalizeArtworkCommand(source CommandSource, caller domain.ArtistID, artworkID domain.ArtworkID) *FinalizeArtworkCommand {
	base := NewBaseCommand(CmdFinalizeArtwork, source)
	return &FinalizeArtworkCommand{
		BaseCommand: &base,
		Caller:      caller,
		ArtworkID:   artworkID,
	}
}

// Validate checks that a caller is present.
func (c *FinalizeArtworkCommand) Validate() error {
	if c.Caller.IsZero() {
		return ErrCallerRequired
	}
	return nil
}

// CallerID returns the acting identity.
func (c *FinalizeArtworkCommand) CallerID() domain.ArtistID { return c.Caller }

// String returns a readable representation of the command.
func (c *FinalizeArtworkCommand) String() string {
	return fmt.Sprintf("FinalizeArtwork{caller=%s, artwork=%d}", c.Caller, c.ArtworkID)
}
