// Package settlement forwards ownership-transfer requests to whatever
// executes payment. No value moves inside the registry itself.
package settlement

import (
	"context"

	"github.com/zjrosen/artcollab/internal/domain"
	"github.com/zjrosen/artcollab/internal/log"
)

// Settler executes (or schedules) the value transfer for a sale.
type Settler interface {
	Settle(ctx context.Context, req domain.OwnershipTransferRequested) error
}

// SettlerFunc adapts a function to Settler.
type SettlerFunc func(ctx context.Context, req domain.OwnershipTransferRequested) error

// Settle calls f(ctx, req).
func (f SettlerFunc) Settle(ctx context.Context, req domain.OwnershipTransferRequested) error {
	return f(ctx, req)
}

// LogSettler records each request in the log and reports success.
type LogSettler struct{}

// Settle logs req.
func (LogSettler) Settle(_ context.Context, req domain.OwnershipTransferRequested) error {
	log.Info(log.CatSettle, "ownership transfer requested",
		"nft_id", req.NftID,
		"artwork_id", req.ArtworkID,
		"from", req.PreviousOwner,
		"to", req.NewOwner,
		"price", req.Price,
	)
	return nil
}
