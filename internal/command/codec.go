package command

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/zjrosen/artcollab/internal/domain"
)

// Mutation is a state-changing command with an acting caller.
type Mutation interface {
	Command
	CallerID() domain.ArtistID
}

var (
	_ Mutation = (*RegisterArtistCommand)(nil)
	_ Mutation = (*CreateArtworkCommand)(nil)
	_ Mutation = (*AddContributionCommand)(nil)
	_ Mutation = (*FinalizeArtworkCommand)(nil)
	_ Mutation = (*MintNftCommand)(nil)
	_ Mutation = (*BuyNftCommand)(nil)
)

// Encode serializes a mutation's payload fields to JSON.
func Encode(m Mutation) ([]byte, error) {
	if !m.Type().IsMutation() {
		return nil, fmt.Errorf("encode %s: not a mutation", m.Type())
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", m.Type(), err)
	}
	return data, nil
}

// Decode rebuilds a mutation from its type and JSON payload, restoring the
// original id and creation time.
func Decode(cmdType CommandType, id string, createdAt time.Time, payload []byte, source CommandSource) (Mutation, error) {
	var m Mutation
	switch cmdType {
	case CmdRegisterArtist:
		m = NewRegisterArtistCommand(source, "", "")
	case CmdCreateArtwork:
		m = NewCreateArtworkCommand(source, "", "", "")
	case CmdAddContribution:
		m = NewAddContributionCommand(source, "", 0, 0)
	case CmdFinalizeArtwork:
		m = NewFinalizeArtworkCommand(source, "", 0)
	case CmdMintNft:
		m = NewMintNftCommand(source, "", 0, 0)
	case CmdBuyNft:
		m = NewBuyNftCommand(source, "", 0)
	default:
		return nil, fmt.Errorf("decode: unknown mutation type %q", cmdType)
	}

	if err := json.Unmarshal(payload, m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", cmdType, err)
	}

	if b, ok := m.(interface {
		SetID(string)
		SetCreatedAt(time.Time)
	}); ok {
		if id != "" {
			b.SetID(id)
		}
		if !createdAt.IsZero() {
			b.SetCreatedAt(createdAt)
		}
	}
	return m, nil
}
