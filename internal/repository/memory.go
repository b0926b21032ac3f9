package repository

import (
	"cmp"
	"slices"
	"sync"

	"github.com/zjrosen/artcollab/internal/domain"
)

// ===========================================================================
// MemoryArtistRepository
// ===========================================================================

// MemoryArtistRepository is an in-memory implementation of ArtistRepository.
// It is thread-safe using sync.RWMutex for concurrent access.
type MemoryArtistRepository struct {
	mu      sync.RWMutex
	artists map[domain.ArtistID]domain.Artist
}

// NewMemoryArtistRepository creates a new in-memory artist repository.
func NewMemoryArtistRepository() *MemoryArtistRepository {
	return &MemoryArtistRepository{
		artists: make(map[domain.ArtistID]domain.Artist),
	}
}

// Get retrieves an artist by ID.
func (r *MemoryArtistRepository) Get(id domain.ArtistID) (*domain.Artist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.artists[id]
	if !ok {
		return nil, ErrArtistNotFound
	}
	return &a, nil
}

// Exists reports whether the artist is registered.
func (r *MemoryArtistRepository) Exists(id domain.ArtistID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.artists[id]
	return ok
}

// Save persists an artist.
func (r *MemoryArtistRepository) Save(artist *domain.Artist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.artists[artist.ID] = *artist
	return nil
}

// Delete removes an artist.
func (r *MemoryArtistRepository) Delete(id domain.ArtistID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.artists, id)
	return nil
}

// All returns every artist ordered by ID.
func (r *MemoryArtistRepository) All() []*domain.Artist {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Artist, 0, len(r.artists))
	for _, a := range r.artists {
		a := a
		result = append(result, &a)
	}
	slices.SortFunc(result, func(x, y *domain.Artist) int { return cmp.Compare(x.ID, y.ID) })
	return result
}

// Count returns the number of artists.
func (r *MemoryArtistRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.artists)
}

// Reset clears all state from the repository. Useful for test setup/teardown.
func (r *MemoryArtistRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.artists = make(map[domain.ArtistID]domain.Artist)
}

// ===========================================================================
// MemoryArtworkRepository
// ===========================================================================

// MemoryArtworkRepository is an in-memory implementation of ArtworkRepository.
type MemoryArtworkRepository struct {
	mu       sync.RWMutex
	artworks map[domain.ArtworkID]*domain.Artwork
}

// NewMemoryArtworkRepository creates a new in-memory artwork repository.
func NewMemoryArtworkRepository() *MemoryArtworkRepository {
	return &MemoryArtworkRepository{
		artworks: make(map[domain.ArtworkID]*domain.Artwork),
	}
}

// Get retrieves a copy of an artwork by ID.
func (r *MemoryArtworkRepository) Get(id domain.ArtworkID) (*domain.Artwork, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.artworks[id]
	if !ok {
		return nil, ErrArtworkNotFound
	}
	return a.Clone(), nil
}

// Save persists a copy of the artwork.
func (r *MemoryArtworkRepository) Save(artwork *domain.Artwork) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.artworks[artwork.ID] = artwork.Clone()
	return nil
}

// Delete removes an artwork.
func (r *MemoryArtworkRepository) Delete(id domain.ArtworkID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.artworks, id)
	return nil
}

// All returns copies of every artwork ordered by ID.
func (r *MemoryArtworkRepository) All() []*domain.Artwork {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Artwork, 0, len(r.artworks))
	for _, a := range r.artworks {
		result = append(result, a.Clone())
	}
	slices.SortFunc(result, func(x, y *domain.Artwork) int { return cmp.Compare(x.ID, y.ID) })
	return result
}

// Count returns the number of artworks.
func (r *MemoryArtworkRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.artworks)
}

// Reset clears all state from the repository.
func (r *MemoryArtworkRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.artworks = make(map[domain.ArtworkID]*domain.Artwork)
}

// ===========================================================================
// MemoryNftRepository
// ===========================================================================

// MemoryNftRepository is an in-memory implementation of NftRepository.
type MemoryNftRepository struct {
	mu   sync.RWMutex
	nfts map[domain.NftID]domain.NFT
}

// NewMemoryNftRepository creates a new in-memory NFT repository.
func NewMemoryNftRepository() *MemoryNftRepository {
	return &MemoryNftRepository{
		nfts: make(map[domain.NftID]domain.NFT),
	}
}

// Get retrieves a copy of a token by ID.
func (r *MemoryNftRepository) Get(id domain.NftID) (*domain.NFT, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.nfts[id]
	if !ok {
		return nil, ErrNftNotFound
	}
	return &n, nil
}

// Save persists a copy of the token.
func (r *MemoryNftRepository) Save(nft *domain.NFT) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nfts[nft.ID] = *nft
	return nil
}

// Delete removes a token.
func (r *MemoryNftRepository) Delete(id domain.NftID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.nfts, id)
	return nil
}

// All returns copies of every token ordered by ID.
func (r *MemoryNftRepository) All() []*domain.NFT {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.NFT, 0, len(r.nfts))
	for _, n := range r.nfts {
		n := n
		result = append(result, &n)
	}
	slices.SortFunc(result, func(x, y *domain.NFT) int { return cmp.Compare(x.ID, y.ID) })
	return result
}

// Count returns the number of tokens.
func (r *MemoryNftRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nfts)
}

// Reset clears all state from the repository.
func (r *MemoryNftRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nfts = make(map[domain.NftID]domain.NFT)
}

var (
	_ ArtistRepository  = (*MemoryArtistRepository)(nil)
	_ ArtworkRepository = (*MemoryArtworkRepository)(nil)
	_ NftRepository     = (*MemoryNftRepository)(nil)
)
