package engine

import (
	"errors"

	"github.com/zjrosen/artcollab/internal/domain"
	"github.com/zjrosen/artcollab/internal/log"
)

// MintNft mints the single token for a finalized artwork, owned by caller.
// Any caller may mint.
func (e *Engine) MintNft(caller domain.ArtistID, artworkID domain.ArtworkID, price uint64) (domain.NftID, error) {
	e.begin()
	art, err := e.artworks.Get(artworkID)
	if err != nil {
		return 0, domain.NotFound(domain.ReasonArtworkNotFound, "artwork "+artworkID.String())
	}
	if !art.IsFinalized {
		return 0, domain.Unauthorized(domain.ReasonNotFinalized, "artwork "+artworkID.String())
	}
	if art.HasNft() {
		return 0, domain.AlreadyExists(domain.ReasonAlreadyMinted, "artwork "+artworkID.String())
	}

	last := e.lastNftID
	id := e.NextNftID()
	token := &domain.NFT{ID: id, ArtworkID: artworkID, Owner: caller, Price: price}
	prev := art.Clone()
	art.NftID = &id

	// Token first: an artwork must never point at a missing token.
	if err := e.nfts.Save(token); err != nil {
		return 0, err
	}
	if err := e.artworks.Save(art); err != nil {
		return 0, errors.Join(err, e.nfts.Delete(id))
	}
	e.lastNftID = id
	e.commit(func() error {
		e.lastNftID = last
		return errors.Join(e.artworks.Save(prev), e.nfts.Delete(id))
	})

	e.emit(domain.NftMinted{NftID: id, ArtworkID: artworkID, Owner: caller, Price: price})
	log.Debug(log.CatEngine, "nft minted", "nft_id", id, "artwork_id", artworkID, "owner", caller)
	return id, nil
}

// BuyNft records caller as the token's owner. No value changes hands here;
// an OwnershipTransferRequested event is emitted for settlement.
func (e *Engine) BuyNft(caller domain.ArtistID, id domain.NftID) error {
	e.begin()
	token, err := e.nfts.Get(id)
	if err != nil {
		return domain.NotFound(domain.ReasonNftNotFound, "nft "+id.String())
	}

	prev := *token
	previous := token.Owner
	token.Owner = caller
	if err := e.nfts.Save(token); err != nil {
		return err
	}
	e.commit(func() error { return e.nfts.Save(&prev) })

	e.emit(domain.OwnershipTransferRequested{
		NftID:         id,
		ArtworkID:     token.ArtworkID,
		PreviousOwner: previous,
		NewOwner:      caller,
		Price:         token.Price,
	})
	log.Debug(log.CatEngine, "nft ownership recorded", "nft_id", id, "from", previous, "to", caller)
	return nil
}
