package engine

import (
	"math"

	"github.com/zjrosen/artcollab/internal/domain"
	"github.com/zjrosen/artcollab/internal/log"
)

// CreateArtwork records a new artwork owned by creator and returns its id.
// Fails with Unauthorized if creator is not registered.
func (e *Engine) CreateArtwork(creator domain.ArtistID, title, description string) (domain.ArtworkID, error) {
	e.begin()
	if !e.artists.Exists(creator) {
		return 0, domain.Unauthorized(domain.ReasonNotRegistered, "artist "+creator.String())
	}

	last := e.lastArtworkID
	id := e.NextArtworkID()
	if err := e.artworks.Save(domain.NewArtwork(id, creator, title, description)); err != nil {
		return 0, err
	}
	e.lastArtworkID = id
	e.commit(func() error {
		e.lastArtworkID = last
		return e.artworks.Delete(id)
	})

	e.emit(domain.ArtworkCreated{ArtworkID: id, Creator: creator, Title: title})
	log.Debug(log.CatEngine, "artwork created", "artwork_id", id, "creator", creator)
	return id, nil
}

// AddContribution appends caller with amount to the artwork's collaborators.
// A caller may contribute more than once; each call adds a new entry.
func (e *Engine) AddContribution(caller domain.ArtistID, id domain.ArtworkID, amount uint64) error {
	e.begin()
	if !e.artists.Exists(caller) {
		return domain.Unauthorized(domain.ReasonNotRegistered, "artist "+caller.String())
	}

	art, err := e.artworks.Get(id)
	if err != nil {
		return domain.NotFound(domain.ReasonArtworkNotFound, "artwork "+id.String())
	}
	if art.IsFinalized {
		return domain.Unauthorized(domain.ReasonAlreadyFinalized, "artwork "+id.String())
	}
	if amount > math.MaxUint64-art.TotalContributions {
		return domain.Unauthorized(domain.ReasonContributionOverflow, "artwork "+id.String())
	}

	prev := art.Clone()
	art.Collaborators = append(art.Collaborators, caller)
	art.Contributions = append(art.Contributions, amount)
	art.TotalContributions += amount
	if err := e.artworks.Save(art); err != nil {
		return err
	}
	e.commit(func() error { return e.artworks.Save(prev) })

	e.emit(domain.ContributionAdded{ArtworkID: id, Artist: caller, Amount: amount, Total: art.TotalContributions})
	log.Debug(log.CatEngine, "contribution added",
		"artwork_id", id,
		"artist", caller,
		"amount", amount,
		"total", art.TotalContributions,
	)
	return nil
}

// FinalizeArtwork freezes the artwork's contributions. Only the creator may
// finalize, and only once.
func (e *Engine) FinalizeArtwork(caller domain.ArtistID, id domain.ArtworkID) error {
	e.begin()
	art, err := e.artworks.Get(id)
	if err != nil {
		return domain.NotFound(domain.ReasonArtworkNotFound, "artwork "+id.String())
	}
	if art.Creator != caller {
		return domain.Unauthorized(domain.ReasonNotCreator, "artwork "+id.String())
	}
	if art.IsFinalized {
		return domain.Unauthorized(domain.ReasonAlreadyFinalized, "artwork "+id.String())
	}

	prev := art.Clone()
	art.IsFinalized = true
	if err := e.artworks.Save(art); err != nil {
		return err
	}
	e.commit(func() error { return e.artworks.Save(prev) })

	e.emit(domain.ArtworkFinalized{ArtworkID: id, Creator: caller})
	log.Debug(log.CatEngine, "artwork finalized", "artwork_id", id)
	return nil
}
