// Package domain defines the entities, identifiers, errors and events of the
// collaborative art registry.
//
// Artists register once. Artworks collect weighted contributions until their
// creator finalizes them, after which a single NFT can be minted against the
// artwork and traded by recording new owners.
package domain
