package handler

import (
	"context"

	"github.com/zjrosen/artcollab/internal/command"
	"github.com/zjrosen/artcollab/internal/engine"
)

// QueryHandler answers every read-only command. It never emits events.
type QueryHandler struct {
	eng *engine.Engine
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(eng *engine.Engine) *QueryHandler {
	return &QueryHandler{eng: eng}
}

// Handle dispatches on the concrete query type.
func (h *QueryHandler) Handle(_ context.Context, cmd command.Command) (*command.CommandResult, error) {
	switch q := cmd.(type) {
	case *command.IsRegisteredQuery:
		return finish(h.eng, h.eng.IsRegistered(q.Artist), nil)
	case *command.GetArtistQuery:
		a, err := h.eng.Artist(q.Artist)
		return finish(h.eng, a, err)
	case *command.GetArtworkQuery:
		a, err := h.eng.Artwork(q.ArtworkID)
		return finish(h.eng, a, err)
	case *command.GetNftQuery:
		n, err := h.eng.Nft(q.NftID)
		return finish(h.eng, n, err)
	case *command.ListArtworksQuery:
		return finish(h.eng, h.eng.Artworks(), nil)
	case *command.ListNftsQuery:
		return finish(h.eng, h.eng.Nfts(), nil)
	default:
		return nil, unexpected(cmd)
	}
}
