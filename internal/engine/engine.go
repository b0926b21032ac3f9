// Package engine implements the state transitions of the art registry.
//
// An Engine owns the artist, artwork and NFT stores and the two id counters.
// Each operation either commits fully or leaves every store untouched.
// Engine methods are not safe for concurrent use; the command processor
// provides the required serialization.
package engine

import (
	"errors"

	"github.com/zjrosen/artcollab/internal/domain"
	"github.com/zjrosen/artcollab/internal/repository"
)

// ErrNothingToUndo is returned by Undo when there is no transition to revert.
var ErrNothingToUndo = errors.New("no transition to undo")

// Option configures an Engine.
type Option func(*Engine)

// WithArtistRepository replaces the default in-memory artist store.
func WithArtistRepository(repo repository.ArtistRepository) Option {
	return func(e *Engine) {
		e.artists = repo
	}
}

// WithArtworkRepository replaces the default in-memory artwork store.
func WithArtworkRepository(repo repository.ArtworkRepository) Option {
	return func(e *Engine) {
		e.artworks = repo
	}
}

// WithNftRepository replaces the default in-memory NFT store.
func WithNftRepository(repo repository.NftRepository) Option {
	return func(e *Engine) {
		e.nfts = repo
	}
}

// Engine is the transition engine.
type Engine struct {
	artists  repository.ArtistRepository
	artworks repository.ArtworkRepository
	nfts     repository.NftRepository

	// Last assigned ids. Zero means nothing has been assigned yet.
	lastArtworkID domain.ArtworkID
	lastNftID     domain.NftID

	// Events produced by successful transitions, drained by TakeEvents.
	pending []any

	// Reverts the most recent successful transition. Nil after a refusal.
	undo func() error
}

// New creates an Engine. Stores not supplied through options are in-memory.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.artists == nil {
		e.artists = repository.NewMemoryArtistRepository()
	}
	if e.artworks == nil {
		e.artworks = repository.NewMemoryArtworkRepository()
	}
	if e.nfts == nil {
		e.nfts = repository.NewMemoryNftRepository()
	}
	return e
}

// NextArtworkID is the id the next successful CreateArtwork will assign.
func (e *Engine) NextArtworkID() domain.ArtworkID {
	return e.lastArtworkID + 1
}

// NextNftID is the id the next successful MintNft will assign.
func (e *Engine) NextNftID() domain.NftID {
	return e.lastNftID + 1
}

// TakeEvents returns the events produced since the previous call and clears them.
func (e *Engine) TakeEvents() []any {
	if len(e.pending) == 0 {
		return nil
	}
	evs := e.pending
	e.pending = nil
	return evs
}

func (e *Engine) emit(ev any) {
	e.pending = append(e.pending, ev)
}

// begin forgets the previous transition's undo. Every mutating operation
// calls it first.
func (e *Engine) begin() {
	e.undo = nil
}

func (e *Engine) commit(undo func() error) {
	e.undo = undo
}

// Undo reverts the most recent successful transition: store records, the id
// counter it advanced and any events not yet taken. Only one level is kept,
// and a refused operation clears it.
func (e *Engine) Undo() error {
	if e.undo == nil {
		return ErrNothingToUndo
	}
	undo := e.undo
	e.undo = nil
	e.pending = nil
	return undo()
}

// State is a point-in-time copy of everything the engine owns.
type State struct {
	Artists       []*domain.Artist  `json:"artists"`
	Artworks      []*domain.Artwork `json:"artworks"`
	Nfts          []*domain.NFT     `json:"nfts"`
	NextArtworkID domain.ArtworkID  `json:"nextArtworkId"`
	NextNftID     domain.NftID      `json:"nextNftId"`
}

// Snapshot copies the full engine state.
func (e *Engine) Snapshot() State {
	return State{
		Artists:       e.artists.All(),
		Artworks:      e.artworks.All(),
		Nfts:          e.nfts.All(),
		NextArtworkID: e.NextArtworkID(),
		NextNftID:     e.NextNftID(),
	}
}
