package command

import (
	"fmt"

	"github.com/zjrosen/artcollab/internal/domain"
)

// ===========================================================================
// Identity Commands
// ===========================================================================

// RegisterArtistCommand registers the caller under a display name.
type RegisterArtistCommand struct {
	*BaseCommand
	Caller domain.ArtistID `json:"caller"`
	Name   string          `json:"name"`
}

// NewRegisterArtistCommand creates a new RegisterArtistCommand.
func NewRegisterArtistCommand(source CommandSource, caller domain.ArtistID, name string) *RegisterArtistCommand {
	base := NewBaseCommand(CmdRegisterArtist, source)
	return &RegisterArtistCommand{
		BaseCommand: &base,
		Caller:      caller,
		Name:        name,
	}
}

// Validate checks that a caller is present.
func (c *RegisterArtistCommand) Validate() error {
	if c.Caller.IsZero() {
		return ErrCallerRequired
	}
	return nil
}

// CallerID returns the acting identity.
func (c *RegisterArtistCommand) CallerID() domain.ArtistID { return c.Caller }

// String returns a readable representation of the command.
func (c *RegisterArtistCommand) String() string {
	return fmt.Sprintf("RegisterArtist{caller=%s, name=%q}", c.Caller, truncate(c.Name, 50))
}

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
