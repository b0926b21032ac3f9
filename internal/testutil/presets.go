package testutil

// WithGallery adds a complete collaboration: alice creates artwork 1, alice
// adds 60 and bob 40 on top of the creator's 100, alice finalizes and mints it
// at price 500, carol buys NFT 1. Replaying it leaves three artists, one
// finalized artwork totalling 200 and one NFT owned by carol.
func (b *Builder) WithGallery() *Builder {
	return b.
		Register("alice", "Alice").
		Register("bob", "Bob").
		Register("carol", "Carol").
		CreateArtwork("alice", "Dawn").
		Contribute("alice", 1, 60).
		Contribute("bob", 1, 40).
		Finalize("alice", 1).
		Mint("alice", 1, 500).
		Buy("carol", 1)
}

// WithBrokenReplay adds entries whose second mutation is refused on replay:
// the artwork creator was never registered.
func (b *Builder) WithBrokenReplay() *Builder {
	return b.
		Register("alice", "Alice").
		CreateArtwork("ghost", "Nope").
		Register("bob", "Bob")
}
