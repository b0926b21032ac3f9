package domain

// Artist is a registered identity. Never mutated after registration.
type Artist struct {
	ID         ArtistID `json:"id"`
	Name       string   `json:"name"`
	Registered bool     `json:"registered"`
}
