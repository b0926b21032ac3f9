package engine

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/zjrosen/artcollab/internal/domain"
)

var callers = []domain.ArtistID{"artist1", "artist2", "artist3", "collector"}

// applyRandomOp performs one randomly drawn operation and returns its error.
func applyRandomOp(t *rapid.T, e *Engine) (string, error) {
	caller := rapid.SampledFrom(callers).Draw(t, "caller")
	artworkID := domain.ArtworkID(rapid.Uint64Range(0, uint64(e.NextArtworkID())).Draw(t, "artworkID"))
	nftID := domain.NftID(rapid.Uint64Range(0, uint64(e.NextNftID())).Draw(t, "nftID"))

	switch op := rapid.IntRange(0, 5).Draw(t, "op"); op {
	case 0:
		return "register", e.Register(caller, rapid.StringMatching(`[A-Za-z ]{0,12}`).Draw(t, "name"))
	case 1:
		_, err := e.CreateArtwork(caller, "title", "desc")
		return "create", err
	case 2:
		amount := rapid.Uint64Range(0, 1_000_000).Draw(t, "amount")
		return "contribute", e.AddContribution(caller, artworkID, amount)
	case 3:
		return "finalize", e.FinalizeArtwork(caller, artworkID)
	case 4:
		_, err := e.MintNft(caller, artworkID, rapid.Uint64().Draw(t, "price"))
		return "mint", err
	default:
		return "buy", e.BuyNft(caller, nftID)
	}
}

func TestProperty_ArtworkInvariantsHold(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := New()
		n := rapid.IntRange(1, 80).Draw(t, "numOps")

		for i := 0; i < n; i++ {
			_, _ = applyRandomOp(t, e)

			for _, art := range e.Artworks() {
				if !art.CheckInvariants() {
					t.Fatalf("artwork %d violates invariants: %+v", art.ID, art)
				}
			}
		}
	})
}

func TestProperty_FailedOperationsDoNotMutate(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := New()
		n := rapid.IntRange(1, 60).Draw(t, "numOps")

		for i := 0; i < n; i++ {
			before := e.Snapshot()
			name, err := applyRandomOp(t, e)
			evs := e.TakeEvents()

			if err == nil {
				if len(evs) != 1 {
					t.Fatalf("%s succeeded with %d events", name, len(evs))
				}
				continue
			}
			if _, ok := domain.AsError(err); !ok {
				t.Fatalf("%s returned non-domain error %v", name, err)
			}
			if len(evs) != 0 {
				t.Fatalf("%s failed but emitted events", name)
			}
			if after := e.Snapshot(); !reflect.DeepEqual(before, after) {
				t.Fatalf("%s failed with %v but mutated state", name, err)
			}
		}
	})
}

func TestProperty_FinalizedArtworksAreFrozen(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := New()
		frozen := map[domain.ArtworkID]*domain.Artwork{}
		n := rapid.IntRange(1, 80).Draw(t, "numOps")

		for i := 0; i < n; i++ {
			_, _ = applyRandomOp(t, e)

			for _, art := range e.Artworks() {
				prev, seen := frozen[art.ID]
				if !seen {
					if art.IsFinalized {
						frozen[art.ID] = art
					}
					continue
				}
				if !art.IsFinalized {
					t.Fatalf("artwork %d was un-finalized", art.ID)
				}
				if !reflect.DeepEqual(prev.Collaborators, art.Collaborators) ||
					!reflect.DeepEqual(prev.Contributions, art.Contributions) ||
					prev.TotalContributions != art.TotalContributions {
					t.Fatalf("finalized artwork %d changed", art.ID)
				}
			}
		}
	})
}

func TestProperty_IDsMonotonicAndOneNftPerArtwork(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := New()
		lastArt, lastNft := e.NextArtworkID(), e.NextNftID()
		n := rapid.IntRange(1, 80).Draw(t, "numOps")

		for i := 0; i < n; i++ {
			_, _ = applyRandomOp(t, e)

			if e.NextArtworkID() < lastArt || e.NextNftID() < lastNft {
				t.Fatalf("counter went backwards")
			}
			lastArt, lastNft = e.NextArtworkID(), e.NextNftID()

			perArtwork := map[domain.ArtworkID]int{}
			for _, token := range e.Nfts() {
				perArtwork[token.ArtworkID]++
				art, err := e.Artwork(token.ArtworkID)
				if err != nil {
					t.Fatalf("nft %d references missing artwork", token.ID)
				}
				if !art.IsFinalized || art.NftID == nil || *art.NftID != token.ID {
					t.Fatalf("nft %d not linked from artwork %d", token.ID, art.ID)
				}
			}
			for id, count := range perArtwork {
				if count > 1 {
					t.Fatalf("artwork %d has %d nfts", id, count)
				}
			}
		}
	})
}
