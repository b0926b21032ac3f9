package domain

// Events emitted by the engine after a successful transition.

// ArtistRegistered is emitted by register.
type ArtistRegistered struct {
	Artist ArtistID `json:"artist"`
	Name   string   `json:"name"`
}

// ArtworkCreated is emitted by createArtwork.
type ArtworkCreated struct {
	ArtworkID ArtworkID `json:"artworkId"`
	Creator   ArtistID  `json:"creator"`
	Title     string    `json:"title"`
}

// ContributionAdded is emitted by addContribution.
type ContributionAdded struct {
	ArtworkID ArtworkID `json:"artworkId"`
	Artist    ArtistID  `json:"artist"`
	Amount    uint64    `json:"amount"`
	Total     uint64    `json:"total"`
}

// ArtworkFinalized is emitted by finalizeArtwork.
type ArtworkFinalized struct {
	ArtworkID ArtworkID `json:"artworkId"`
	Creator   ArtistID  `json:"creator"`
}

// NftMinted is emitted by mintNft.
type NftMinted struct {
	NftID     NftID     `json:"nftId"`
	ArtworkID ArtworkID `json:"artworkId"`
	Owner     ArtistID  `json:"owner"`
	Price     uint64    `json:"price"`
}

// OwnershipTransferRequested is emitted by buyNft. The engine has already
// recorded the new owner; settling value between the parties is left to
// whoever consumes this event.
type OwnershipTransferRequested struct {
	NftID         NftID     `json:"nftId"`
	ArtworkID     ArtworkID `json:"artworkId"`
	PreviousOwner ArtistID  `json:"previousOwner"`
	NewOwner      ArtistID  `json:"newOwner"`
	Price         uint64    `json:"price"`
}

// EventName returns a stable name for a domain event value, or "" for
// values that are not domain events.
func EventName(ev any) string {
	switch ev.(type) {
	case ArtistRegistered:
		return "artist_registered"
	case ArtworkCreated:
		return "artwork_created"
	case ContributionAdded:
		return "contribution_added"
	case ArtworkFinalized:
		return "artwork_finalized"
	case NftMinted:
		return "nft_minted"
	case OwnershipTransferRequested:
		return "ownership_transfer_requested"
	default:
		return ""
	}
}
