package engine

import (
	"github.com/zjrosen/artcollab/internal/domain"
	"github.com/zjrosen/artcollab/internal/log"
)

// Register adds caller to the identity registry under name.
// Fails with AlreadyExists if caller is already registered.
func (e *Engine) Register(caller domain.ArtistID, name string) error {
	e.begin()
	if e.artists.Exists(caller) {
		return domain.AlreadyExists(domain.ReasonArtistExists, "artist "+caller.String())
	}

	artist := &domain.Artist{ID: caller, Name: name, Registered: true}
	if err := e.artists.Save(artist); err != nil {
		return err
	}

	e.commit(func() error { return e.artists.Delete(caller) })

	e.emit(domain.ArtistRegistered{Artist: caller, Name: name})
	log.Debug(log.CatEngine, "artist registered", "artist", caller)
	return nil
}

// IsRegistered reports whether caller has registered.
func (e *Engine) IsRegistered(caller domain.ArtistID) bool {
	return e.artists.Exists(caller)
}
