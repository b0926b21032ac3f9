// Package presentation renders journal data for the command line.
package presentation

import (
	"encoding/json"
	"time"

	"github.com/zjrosen/artcollab/internal/engine"
	"github.com/zjrosen/artcollab/internal/infrastructure/sqlite"
)

// JournalEntryDTO is one journaled mutation as printed by `journal list`.
type JournalEntryDTO struct {
	Seq         int64           `json:"seq"`
	CommandID   string          `json:"command_id"`
	CommandType string          `json:"command_type"`
	CallerID    string          `json:"caller_id"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"created_at"`
}

// FromJournalEntry converts a stored entry to a DTO.
func FromJournalEntry(e sqlite.Entry) JournalEntryDTO {
	payload := e.Payload
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	return JournalEntryDTO{
		Seq:         e.Seq,
		CommandID:   e.CommandID,
		CommandType: e.CommandType.String(),
		CallerID:    e.CallerID.String(),
		Payload:     payload,
		CreatedAt:   e.CreatedAt.UTC(),
	}
}

// FromJournalEntries converts a page of entries, never returning nil.
func FromJournalEntries(entries []sqlite.Entry) []JournalEntryDTO {
	dtos := make([]JournalEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = FromJournalEntry(e)
	}
	return dtos
}

// VerifyReportDTO summarizes a journal replay into a scratch engine.
type VerifyReportDTO struct {
	OK            bool   `json:"ok"`
	Entries       int64  `json:"entries"`
	Replayed      int    `json:"replayed"`
	Artists       int    `json:"artists"`
	Artworks      int    `json:"artworks"`
	Nfts          int    `json:"nfts"`
	NextArtworkID uint64 `json:"next_artwork_id"`
	NextNftID     uint64 `json:"next_nft_id"`
	// FirstFailure describes the entry that stopped the replay.
	FirstFailure string `json:"first_failure,omitempty"`
}

// NewVerifyReport builds a report from the replayed state and the replay error.
func NewVerifyReport(entries int64, replayed int, state engine.State, replayErr error) VerifyReportDTO {
	r := VerifyReportDTO{
		OK:            replayErr == nil,
		Entries:       entries,
		Replayed:      replayed,
		Artists:       len(state.Artists),
		Artworks:      len(state.Artworks),
		Nfts:          len(state.Nfts),
		NextArtworkID: uint64(state.NextArtworkID),
		NextNftID:     uint64(state.NextNftID),
	}
	if replayErr != nil {
		r.FirstFailure = replayErr.Error()
	}
	return r
}
