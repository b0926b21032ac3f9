package core

import (
	"context"

	"github.com/zjrosen/artcollab/internal/command"
	"github.com/zjrosen/artcollab/internal/domain"
	"github.com/zjrosen/artcollab/internal/tracing"
)

// Client issues typed registry operations through the processor.
// Every call returns the wire Result; the error is only for infrastructure failures.
type Client struct {
	infra  *Infrastructure
	source command.CommandSource
}

// Client returns a client whose commands are tagged with source.
func (i *Infrastructure) Client(source command.CommandSource) *Client {
	return &Client{infra: i, source: source}
}

func (c *Client) do(ctx context.Context, cmd command.Command) (domain.Result, error) {
	if traceID := tracing.TraceIDFromContext(ctx); traceID != "" {
		if t, ok := cmd.(interface{ SetTraceID(string) }); ok {
			t.SetTraceID(traceID)
		}
	}
	return c.infra.Execute(ctx, cmd)
}

// Register adds caller to the identity registry under name.
func (c *Client) Register(ctx context.Context, caller domain.ArtistID, name string) (domain.Result, error) {
	return c.do(ctx, command.NewRegisterArtistCommand(c.source, caller, name))
}

// IsRegistered reports whether artist has registered.
func (c *Client) IsRegistered(ctx context.Context, artist domain.ArtistID) (domain.Result, error) {
	return c.do(ctx, command.NewIsRegisteredQuery(c.source, artist))
}

// CreateArtwork opens a new artwork with caller as creator.
func (c *Client) CreateArtwork(ctx context.Context, caller domain.ArtistID, title, description string) (domain.Result, error) {
	return c.do(ctx, command.NewCreateArtworkCommand(c.source, caller, title, description))
}

func (c *Client) AddContribution(ctx context.Context, caller domain.ArtistID, id domain.ArtworkID, amount uint64) (domain.Result, error) {
	return c.do(ctx, command.NewAddContributionCommand(c.source, caller, id, amount))
}

func (c *Client) FinalizeArtwork(ctx context.Context, caller domain.ArtistID, id domain.ArtworkID) (domain.Result, error) {
	return c.do(ctx, command.NewFinalizeArtworkCommand(c.source, caller, id))
}

// MintNft mints the single NFT of a finalized artwork.
func (c *Client) MintNft(ctx context.Context, caller domain.ArtistID, artworkID domain.ArtworkID, price uint64) (domain.Result, error) {
	return c.do(ctx, command.NewMintNftCommand(c.source, caller, artworkID, price))
}

// BuyNft requests an ownership transfer of id to caller.
func (c *Client) BuyNft(ctx context.Context, caller domain.ArtistID, id domain.NftID) (domain.Result, error) {
	return c.do(ctx, command.NewBuyNftCommand(c.source, caller, id))
}

func (c *Client) Artist(ctx context.Context, id domain.ArtistID) (domain.Result, error) {
	return c.do(ctx, command.NewGetArtistQuery(c.source, id))
}

func (c *Client) Artwork(ctx context.Context, id domain.ArtworkID) (domain.Result, error) {
	return c.do(ctx, command.NewGetArtworkQuery(c.source, id))
}

func (c *Client) Nft(ctx context.Context, id domain.NftID) (domain.Result, error) {
	return c.do(ctx, command.NewGetNftQuery(c.source, id))
}

// Artworks lists every artwork ordered by id.
func (c *Client) Artworks(ctx context.Context) (domain.Result, error) {
	return c.do(ctx, command.NewListArtworksQuery(c.source))
}

// Nfts lists every NFT ordered by id.
func (c *Client) Nfts(ctx context.Context) (domain.Result, error) {
	return c.do(ctx, command.NewListNftsQuery(c.source))
}
