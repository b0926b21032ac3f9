package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/artcollab/internal/domain"
	"github.com/zjrosen/artcollab/internal/repository"
)

func TestUndo_RevertsEachTransition(t *testing.T) {
	tests := []struct {
		name  string
		setup func(e *Engine)
		apply func(e *Engine) error
	}{
		{
			name:  "register",
			setup: func(e *Engine) {},
			apply: func(e *Engine) error { return e.Register("artist2", "Two") },
		},
		{
			name:  "create",
			setup: func(e *Engine) {},
			apply: func(e *Engine) error {
				_, err := e.CreateArtwork("artist1", "Other", "")
				return err
			},
		},
		{
			name:  "contribute",
			setup: func(e *Engine) {},
			apply: func(e *Engine) error { return e.AddContribution("artist1", 1, 5) },
		},
		{
			name:  "finalize",
			setup: func(e *Engine) {},
			apply: func(e *Engine) error { return e.FinalizeArtwork("artist1", 1) },
		},
		{
			name:  "mint",
			setup: func(e *Engine) { require.NoError(t, e.FinalizeArtwork("artist1", 1)) },
			apply: func(e *Engine) error {
				_, err := e.MintNft("artist1", 1, 10)
				return err
			},
		},
		{
			name: "buy",
			setup: func(e *Engine) {
				require.NoError(t, e.FinalizeArtwork("artist1", 1))
				_, err := e.MintNft("artist1", 1, 10)
				require.NoError(t, err)
			},
			apply: func(e *Engine) error { return e.BuyNft("artist3", 1) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			require.NoError(t, e.Register("artist1", "One"))
			_, err := e.CreateArtwork("artist1", "T", "D")
			require.NoError(t, err)
			tt.setup(e)
			e.TakeEvents()
			before := e.Snapshot()

			require.NoError(t, tt.apply(e))
			require.NotEqual(t, before, e.Snapshot())

			require.NoError(t, e.Undo())
			assert.Equal(t, before, e.Snapshot())
			assert.Empty(t, e.TakeEvents())
		})
	}
}

func TestUndo_CreateReleasesID(t *testing.T) {
	e := New()
	require.NoError(t, e.Register("artist1", "One"))
	_, err := e.CreateArtwork("artist1", "Lost", "")
	require.NoError(t, err)
	require.NoError(t, e.Undo())

	id, err := e.CreateArtwork("artist1", "Kept", "")
	require.NoError(t, err)
	assert.Equal(t, domain.ArtworkID(1), id)
}

func TestUndo_OnlyOneLevel(t *testing.T) {
	e := New()
	require.NoError(t, e.Register("artist1", "One"))
	require.NoError(t, e.Undo())
	assert.False(t, e.IsRegistered("artist1"))
	assert.ErrorIs(t, e.Undo(), ErrNothingToUndo)
}

func TestUndo_ClearedByRefusal(t *testing.T) {
	e := New()
	require.NoError(t, e.Register("artist1", "One"))
	requireKind(t, e.Register("artist1", "Again"), domain.KindAlreadyExists)

	assert.ErrorIs(t, e.Undo(), ErrNothingToUndo)
	assert.True(t, e.IsRegistered("artist1"))
}

// flakyArtworks fails Save while failing is set.
type flakyArtworks struct {
	*repository.MemoryArtworkRepository
	failing bool
}

func (r *flakyArtworks) Save(a *domain.Artwork) error {
	if r.failing {
		return errors.New("artwork store unavailable")
	}
	return r.MemoryArtworkRepository.Save(a)
}

func TestMint_ArtworkSaveFailureLeavesNoToken(t *testing.T) {
	artworks := &flakyArtworks{MemoryArtworkRepository: repository.NewMemoryArtworkRepository()}
	e := New(WithArtworkRepository(artworks))
	require.NoError(t, e.Register("artist1", "One"))
	id, err := e.CreateArtwork("artist1", "T", "")
	require.NoError(t, err)
	require.NoError(t, e.FinalizeArtwork("artist1", id))

	artworks.failing = true
	_, err = e.MintNft("artist1", id, 10)
	require.Error(t, err)
	_, isDomain := domain.AsError(err)
	assert.False(t, isDomain)

	assert.Empty(t, e.Nfts())
	assert.Equal(t, domain.NftID(1), e.NextNftID())

	artworks.failing = false
	nftID, err := e.MintNft("artist1", id, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.NftID(1), nftID)
}

// The engine treats the empty id like any other opaque caller; rejecting
// blank callers is left to command validation.
func TestEmptyCallerID(t *testing.T) {
	e := New()

	_, err := e.CreateArtwork("", "T", "")
	requireKind(t, err, domain.KindUnauthorized)
	assert.Equal(t, domain.ArtworkID(1), e.NextArtworkID())

	require.NoError(t, e.Register("", "Anonymous"))
	assert.True(t, e.IsRegistered(""))
	requireKind(t, e.Register("", "Again"), domain.KindAlreadyExists)

	id, err := e.CreateArtwork("", "T", "")
	require.NoError(t, err)
	art, err := e.Artwork(id)
	require.NoError(t, err)
	assert.Equal(t, []domain.ArtistID{""}, art.Collaborators)
}
