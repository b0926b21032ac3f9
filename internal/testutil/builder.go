package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/artcollab/internal/command"
	"github.com/zjrosen/artcollab/internal/domain"
	"github.com/zjrosen/artcollab/internal/infrastructure/sqlite"
)

// Builder accumulates mutations and appends them to a journal in order.
// Nothing is checked against registry rules, so a builder can also seed
// journals that fail replay.
type Builder struct {
	t         *testing.T
	journal   *sqlite.Journal
	mutations []command.Mutation
}

// NewBuilder creates a builder for the given journal.
func NewBuilder(t *testing.T, j *sqlite.Journal) *Builder {
	t.Helper()
	return &Builder{t: t, journal: j}
}

// Register adds a register_artist entry.
func (b *Builder) Register(caller domain.ArtistID, name string, opts ...EntryOption) *Builder {
	e := b.entry(opts)
	return b.With(e.apply(command.NewRegisterArtistCommand(e.source, caller, name)))
}

// CreateArtwork adds a create_artwork entry.
func (b *Builder) CreateArtwork(caller domain.ArtistID, title string, opts ...EntryOption) *Builder {
	e := b.entry(opts)
	return b.With(e.apply(command.NewCreateArtworkCommand(e.source, caller, title, "")))
}

// Contribute adds an add_contribution entry.
func (b *Builder) Contribute(caller domain.ArtistID, id domain.ArtworkID, amount uint64, opts ...EntryOption) *Builder {
	e := b.entry(opts)
	return b.With(e.apply(command.NewAddContributionCommand(e.source, caller, id, amount)))
}

// Finalize adds a finalize_artwork entry.
func (b *Builder) Finalize(caller domain.ArtistID, id domain.ArtworkID, opts ...EntryOption) *Builder {
	e := b.entry(opts)
	return b.With(e.apply(command.NewFinalizeArtworkCommand(e.source, caller, id)))
}

// Mint adds a mint_nft entry.
func (b *Builder) Mint(caller domain.ArtistID, id domain.ArtworkID, price uint64, opts ...EntryOption) *Builder {
	e := b.entry(opts)
	return b.With(e.apply(command.NewMintNftCommand(e.source, caller, id, price)))
}

// Buy adds a buy_nft entry.
func (b *Builder) Buy(caller domain.ArtistID, id domain.NftID, opts ...EntryOption) *Builder {
	e := b.entry(opts)
	return b.With(e.apply(command.NewBuyNftCommand(e.source, caller, id)))
}

// With adds an already constructed mutation.
func (b *Builder) With(m command.Mutation) *Builder {
	b.mutations = append(b.mutations, m)
	return b
}

// Mutations returns the accumulated mutations without journaling them.
func (b *Builder) Mutations() []command.Mutation {
	return b.mutations
}

// Build appends every accumulated mutation and returns the journal.
func (b *Builder) Build() *sqlite.Journal {
	b.t.Helper()
	ctx := context.Background()
	for _, m := range b.mutations {
		_, err := b.journal.Append(ctx, m)
		require.NoError(b.t, err)
	}
	return b.journal
}

func (b *Builder) entry(opts []EntryOption) entryData {
	e := defaultEntry()
	for _, opt := range opts {
		opt(&e)
	}
	return e
}
