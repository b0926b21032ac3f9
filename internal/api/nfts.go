package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/zjrosen/artcollab/internal/domain"
)

func nftParam(c *gin.Context) (domain.NftID, bool) {
	id, err := domain.ParseNftID(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid nft id")
		return 0, false
	}
	return id, true
}

// BuyNft records the caller as the token's new owner.
// POST /v1/nfts/:id/buy
func (h *Handler) BuyNft(c *gin.Context) {
	id, ok := nftParam(c)
	if !ok {
		return
	}
	caller := callerOf(c)
	h.execute(c, func(ctx context.Context) (domain.Result, error) {
		return h.client.BuyNft(ctx, caller, id)
	})
}

// GetNft returns one token.
// GET /v1/nfts/:id
func (h *Handler) GetNft(c *gin.Context) {
	id, ok := nftParam(c)
	if !ok {
		return
	}
	r, err := h.client.Nft(c.Request.Context(), id)
	respond(c, r, err)
}

// ListNfts returns every token ordered by id.
// GET /v1/nfts
func (h *Handler) ListNfts(c *gin.Context) {
	r, err := h.client.Nfts(c.Request.Context())
	respond(c, r, err)
}
