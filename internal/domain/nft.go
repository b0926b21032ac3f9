package domain

// NFT is the single token minted against a finalized artwork.
type NFT struct {
	ID        NftID     `json:"id"`
	ArtworkID ArtworkID `json:"artworkId"`
	Owner     ArtistID  `json:"owner"`
	Price     uint64    `json:"price"`
}

// Clone returns a copy of the token record.
func (n *NFT) Clone() *NFT {
	if n == nil {
		return nil
	}
	c := *n
	return &c
}
