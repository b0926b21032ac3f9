package command

import (
	"github.com/zjrosen/artcollab/internal/domain"
)

// ===========================================================================
// Queries
// ===========================================================================
//
// Queries run on the processor like mutations so they observe a consistent
// point in the command order. They are never journaled.

// IsRegisteredQuery asks whether an identity has registered.
type IsRegisteredQuery struct {
	*BaseCommand
	Artist domain.ArtistID
}

// NewIsRegisteredQuery creates a new IsRegisteredQuery.
func NewIsRegisteredQuery(source CommandSource, artist domain.ArtistID) *IsRegisteredQuery {
	base := NewBaseCommand(CmdIsRegistered, source)
	return &IsRegisteredQuery{BaseCommand: &base, Artist: artist}
}

// GetArtistQuery fetches an artist profile.
type GetArtistQuery struct {
	*BaseCommand
	Artist domain.ArtistID
}

// NewGetArtistQuery creates a new GetArtistQuery.
func NewGetArtistQuery(source CommandSource, artist domain.ArtistID) *GetArtistQuery {
	base := NewBaseCommand(CmdGetArtist, source)
	return &GetArtistQuery{BaseCommand: &base, Artist: artist}
}

// GetArtworkQuery fetches an artwork.
type GetArtworkQuery struct {
	*BaseCommand
	ArtworkID domain.ArtworkID
}

// NewGetArtworkQuery creates a new GetArtworkQuery.
func NewGetArtworkQuery(source CommandSource, id domain.ArtworkID) *GetArtworkQuery {
	base := NewBaseCommand(CmdGetArtwork, source)
	return &GetArtworkQuery{BaseCommand: &base, ArtworkID: id}
}

// GetNftQuery fetches a token.
type GetNftQuery struct {
	*BaseCommand
	NftID domain.NftID
}

// NewGetNftQuery creates a new GetNftQuery.
func NewGetNftQuery(source CommandSource, id domain.NftID) *GetNftQuery {
	base := NewBaseCommand(CmdGetNft, source)
	return &GetNftQuery{BaseCommand: &base, NftID: id}
}

// ListArtworksQuery lists every artwork.
type ListArtworksQuery struct {
	*BaseCommand
}

// NewListArtworksQuery creates a new ListArtworksQuery.
func NewListArtworksQuery(source CommandSource) *ListArtworksQuery {
	base := NewBaseCommand(CmdListArtworks, source)
	return &ListArtworksQuery{BaseCommand: &base}
}

// ListNftsQuery lists every token.
type ListNftsQuery struct {
	*BaseCommand
}

// NewListNftsQuery creates a new ListNftsQuery.
func NewListNftsQuery(source CommandSource) *ListNftsQuery {
	base := NewBaseCommand(CmdListNfts, source)
	return &ListNftsQuery{BaseCommand: &base}
}
