package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/zjrosen/artcollab/internal/domain"
)

// CreateArtworkRequest is the body of POST /v1/artworks.
type CreateArtworkRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ContributionRequest is the body of POST /v1/artworks/:id/contributions.
type ContributionRequest struct {
	Amount *uint64 `json:"amount" binding:"required"`
}

// MintRequest is the body of POST /v1/artworks/:id/nft.
type MintRequest struct {
	Price *uint64 `json:"price" binding:"required"`
}

// artworkParam parses :id, aborting with 400 when it is not an artwork id.
func artworkParam(c *gin.Context) (domain.ArtworkID, bool) {
	id, err := domain.ParseArtworkID(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid artwork id")
		return 0, false
	}
	return id, true
}

// CreateArtwork opens a new artwork created by the caller.
// POST /v1/artworks
func (h *Handler) CreateArtwork(c *gin.Context) {
	var req CreateArtworkRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	caller := callerOf(c)
	h.execute(c, func(ctx context.Context) (domain.Result, error) {
		return h.client.CreateArtwork(ctx, caller, req.Title, req.Description)
	})
}

// AddContribution records a contribution by the caller.
// POST /v1/artworks/:id/contributions
func (h *Handler) AddContribution(c *gin.Context) {
	id, ok := artworkParam(c)
	if !ok {
		return
	}
	var req ContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	caller := callerOf(c)
	h.execute(c, func(ctx context.Context) (domain.Result, error) {
		return h.client.AddContribution(ctx, caller, id, *req.Amount)
	})
}

// FinalizeArtwork closes an artwork to contributions.
// POST /v1/artworks/:id/finalize
func (h *Handler) FinalizeArtwork(c *gin.Context) {
	id, ok := artworkParam(c)
	if !ok {
		return
	}
	caller := callerOf(c)
	h.execute(c, func(ctx context.Context) (domain.Result, error) {
		return h.client.FinalizeArtwork(ctx, caller, id)
	})
}

// MintNft mints the artwork's token.
// POST /v1/artworks/:id/nft
func (h *Handler) MintNft(c *gin.Context) {
	id, ok := artworkParam(c)
	if !ok {
		return
	}
	var req MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	caller := callerOf(c)
	h.execute(c, func(ctx context.Context) (domain.Result, error) {
		return h.client.MintNft(ctx, caller, id, *req.Price)
	})
}

// GetArtwork returns one artwork.
// GET /v1/artworks/:id
func (h *Handler) GetArtwork(c *gin.Context) {
	id, ok := artworkParam(c)
	if !ok {
		return
	}
	r, err := h.client.Artwork(c.Request.Context(), id)
	respond(c, r, err)
}

// ListArtworks returns every artwork ordered by id.
// GET /v1/artworks
func (h *Handler) ListArtworks(c *gin.Context) {
	r, err := h.client.Artworks(c.Request.Context())
	respond(c, r, err)
}
