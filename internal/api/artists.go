package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/zjrosen/artcollab/internal/domain"
)

// RegisterArtistRequest is the body of POST /v1/artists.
type RegisterArtistRequest struct {
	Name string `json:"name"`
}

// RegisterArtist registers the caller.
// POST /v1/artists
func (h *Handler) RegisterArtist(c *gin.Context) {
	var req RegisterArtistRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	caller := callerOf(c)
	h.execute(c, func(ctx context.Context) (domain.Result, error) {
		return h.client.Register(ctx, caller, req.Name)
	})
}

// GetArtist returns an artist profile.
// GET /v1/artists/:id
func (h *Handler) GetArtist(c *gin.Context) {
	r, err := h.client.Artist(c.Request.Context(), domain.ArtistID(c.Param("id")))
	respond(c, r, err)
}

// IsRegistered reports whether an artist has registered.
// GET /v1/artists/:id/registered
func (h *Handler) IsRegistered(c *gin.Context) {
	r, err := h.client.IsRegistered(c.Request.Context(), domain.ArtistID(c.Param("id")))
	respond(c, r, err)
}

// bindOptionalJSON decodes the body when there is one.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(dst)
}
