package domain

import (
	"strconv"
	"strings"
)

// ArtistID is the opaque caller identity that keys the artist registry.
type ArtistID string

// String returns the raw identifier.
func (id ArtistID) String() string { return string(id) }

// IsZero reports whether the identifier is empty or whitespace.
func (id ArtistID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

// ArtworkID identifies an artwork. Assigned from 1 upward.
type ArtworkID uint64

func (id ArtworkID) String() string { return strconv.FormatUint(uint64(id), 10) }

// ParseArtworkID parses a decimal artwork id.
func ParseArtworkID(s string) (ArtworkID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	return ArtworkID(v), nil
}

// NftID identifies a minted token. Assigned from 1 upward.
type NftID uint64

func (id NftID) String() string { return strconv.FormatUint(uint64(id), 10) }

// ParseNftID parses a decimal NFT id.
func ParseNftID(s string) (NftID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	return NftID(v), nil
}
