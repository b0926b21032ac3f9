package domain

// InitialContribution is the weight credited to the creator when an artwork is created.
const InitialContribution uint64 = 100

// Artwork is a collaborative work with index-aligned collaborator and contribution lists.
type Artwork struct {
	ID                 ArtworkID  `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Creator            ArtistID   `json:"creator"`
	Collaborators      []ArtistID `json:"collaborators"`
	Contributions      []uint64   `json:"contributions"`
	TotalContributions uint64     `json:"totalContributions"`
	IsFinalized        bool       `json:"isFinalized"`
	NftID              *NftID     `json:"nftId"`
}

// NewArtwork returns a fresh, unfinalized artwork crediting creator with
// InitialContribution.
func NewArtwork(id ArtworkID, creator ArtistID, title, description string) *Artwork {
	return &Artwork{
		ID:                 id,
		Title:              title,
		Description:        description,
		Creator:            creator,
		Collaborators:      []ArtistID{creator},
		Contributions:      []uint64{InitialContribution},
		TotalContributions: InitialContribution,
	}
}

// HasNft reports whether a token has been minted for the artwork.
func (a *Artwork) HasNft() bool {
	return a.NftID != nil
}

// Clone returns a deep copy. Stores hand out clones so callers can never
// mutate engine-owned state.
func (a *Artwork) Clone() *Artwork {
	if a == nil {
		return nil
	}
	c := *a
	c.Collaborators = append([]ArtistID(nil), a.Collaborators...)
	c.Contributions = append([]uint64(nil), a.Contributions...)
	if a.NftID != nil {
		id := *a.NftID
		c.NftID = &id
	}
	return &c
}

// CheckInvariants verifies the length and sum relations between the
// collaborator, contribution and total fields.
func (a *Artwork) CheckInvariants() bool {
	if len(a.Collaborators) != len(a.Contributions) {
		return false
	}
	if len(a.Collaborators) == 0 || a.Collaborators[0] != a.Creator {
		return false
	}
	var sum uint64
	for _, c := range a.Contributions {
		sum += c
	}
	return sum == a.TotalContributions
}
