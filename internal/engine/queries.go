package engine

import (
	"github.com/zjrosen/artcollab/internal/domain"
)

// Artist returns the registered artist or a NotFound error.
func (e *Engine) Artist(id domain.ArtistID) (*domain.Artist, error) {
	a, err := e.artists.Get(id)
	if err != nil {
		return nil, domain.NotFound(domain.ReasonArtistNotFound, "artist "+id.String())
	}
	return a, nil
}

// Artwork returns a copy of the artwork or a NotFound error.
func (e *Engine) Artwork(id domain.ArtworkID) (*domain.Artwork, error) {
	a, err := e.artworks.Get(id)
	if err != nil {
		return nil, domain.NotFound(domain.ReasonArtworkNotFound, "artwork "+id.String())
	}
	return a, nil
}

// Nft returns a copy of the token or a NotFound error.
func (e *Engine) Nft(id domain.NftID) (*domain.NFT, error) {
	n, err := e.nfts.Get(id)
	if err != nil {
		return nil, domain.NotFound(domain.ReasonNftNotFound, "nft "+id.String())
	}
	return n, nil
}

// Artworks lists every artwork ordered by id.
func (e *Engine) Artworks() []*domain.Artwork {
	return e.artworks.All()
}

// Nfts lists every token ordered by id.
func (e *Engine) Nfts() []*domain.NFT {
	return e.nfts.All()
}
