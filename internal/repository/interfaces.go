// Package repository defines the keyed stores the transition engine holds for
// artists, artworks and NFTs, plus their in-memory implementations.
package repository

import (
	"errors"

	"github.com/zjrosen/artcollab/internal/domain"
)

// ===========================================================================
// Error Sentinel Values
// ===========================================================================

// ErrArtistNotFound is returned when an artist ID does not exist in the repository.
var ErrArtistNotFound = errors.New("artist not found")

// ErrArtworkNotFound is returned when an artwork ID does not exist in the repository.
var ErrArtworkNotFound = errors.New("artwork not found")

// ErrNftNotFound is returned when an NFT ID does not exist in the repository.
var ErrNftNotFound = errors.New("nft not found")

// ===========================================================================
// Repository Interfaces
// ===========================================================================

// ArtistRepository stores artist profiles keyed by caller identity.
// Implementations must be thread-safe.
type ArtistRepository interface {
	// Get returns a copy of the artist, or ErrArtistNotFound.
	Get(id domain.ArtistID) (*domain.Artist, error)
	// Exists reports whether id is present.
	Exists(id domain.ArtistID) bool
	// Save inserts or replaces the artist.
	Save(artist *domain.Artist) error
	// Delete removes the artist. Missing ids are not an error.
	Delete(id domain.ArtistID) error
	// All returns every artist ordered by ID.
	All() []*domain.Artist
	// Count returns the number of stored artists.
	Count() int
}

// ArtworkRepository stores artworks keyed by ArtworkID.
// Implementations must be thread-safe and must never hand out a pointer
// to their internal record.
type ArtworkRepository interface {
	// Get returns a copy of the artwork, or ErrArtworkNotFound.
	Get(id domain.ArtworkID) (*domain.Artwork, error)
	// Save stores a copy of the artwork, replacing any previous record.
	Save(artwork *domain.Artwork) error
	// Delete removes the artwork. Missing ids are not an error.
	Delete(id domain.ArtworkID) error
	// All returns copies of every artwork ordered by ID.
	All() []*domain.Artwork
	// Count returns the number of stored artworks.
	Count() int
}

// NftRepository stores minted tokens keyed by NftID.
// Implementations must be thread-safe.
type NftRepository interface {
	// Get returns a copy of the token, or ErrNftNotFound.
	Get(id domain.NftID) (*domain.NFT, error)
	// Save stores a copy of the token, replacing any previous record.
	Save(nft *domain.NFT) error
	// Delete removes the token. Missing ids are not an error.
	Delete(id domain.NftID) error
	// All returns copies of every token ordered by ID.
	All() []*domain.NFT
	// Count returns the number of stored tokens.
	Count() int
}
