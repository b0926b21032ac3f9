package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zjrosen/artcollab/internal/command"
	"github.com/zjrosen/artcollab/internal/domain"
	"github.com/zjrosen/artcollab/internal/log"
)

const entryColumns = `seq, command_id, command_type, caller_id, payload, created_at`

// replayPageSize bounds how many entries Replay holds in memory at once.
const replayPageSize = 500

// Entry is one journaled mutation.
type Entry struct {
	Seq         int64
	CommandID   string
	CommandType command.CommandType
	CallerID    domain.ArtistID
	Payload     json.RawMessage
	CreatedAt   time.Time
}

// Decode rebuilds the mutation, tagged as a replay.
func (e Entry) Decode() (command.Mutation, error) {
	return command.Decode(e.CommandType, e.CommandID, e.CreatedAt, e.Payload, command.SourceReplay)
}

// entryModel mirrors a journal_entries row.
type entryModel struct {
	Seq         int64
	CommandID   string
	CommandType string
	CallerID    string
	Payload     string
	CreatedAt   int64 // Unix milliseconds
}

func (m *entryModel) toEntry() Entry {
	return Entry{
		Seq:         m.Seq,
		CommandID:   m.CommandID,
		CommandType: command.CommandType(m.CommandType),
		CallerID:    domain.ArtistID(m.CallerID),
		Payload:     json.RawMessage(m.Payload),
		CreatedAt:   time.UnixMilli(m.CreatedAt),
	}
}

func scanEntry(scanner interface{ Scan(...any) error }) (*entryModel, error) {
	var m entryModel
	err := scanner.Scan(&m.Seq, &m.CommandID, &m.CommandType, &m.CallerID, &m.Payload, &m.CreatedAt)
	return &m, err
}

// Journal is the append-only log of successful mutations.
type Journal struct {
	db *sql.DB
}

func newJournal(db *sql.DB) *Journal {
	return &Journal{db: db}
}

// Append records m and returns its sequence number.
func (j *Journal) Append(ctx context.Context, m command.Mutation) (int64, error) {
	payload, err := command.Encode(m)
	if err != nil {
		return 0, err
	}

	res, err := j.db.ExecContext(ctx,
		`INSERT INTO journal_entries (command_id, command_type, caller_id, payload, created_at) VALUES (?, ?, ?, ?, ?)`,
		m.ID(), m.Type().String(), m.CallerID().String(), string(payload), m.CreatedAt().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert journal entry: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("journal sequence: %w", err)
	}

	log.Debug(log.CatJournal, "entry appended", "seq", seq, "command_type", m.Type().String(), "command_id", m.ID())
	return seq, nil
}

// List returns up to limit entries with seq > afterSeq in ascending order.
// A non-positive limit returns every remaining entry.
func (j *Journal) List(ctx context.Context, afterSeq int64, limit int) ([]Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE seq > ? ORDER BY seq`
	args := []any{afterSeq}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entries = append(entries, m.toEntry())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal entries: %w", err)
	}
	return entries, nil
}

// Count returns the number of journaled entries.
func (j *Journal) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM journal_entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count journal entries: %w", err)
	}
	return n, nil
}

// Replay calls fn with every entry and its decoded mutation in sequence order.
// It stops at the first error from decoding or from fn.
func (j *Journal) Replay(ctx context.Context, fn func(Entry, command.Mutation) error) (int, error) {
	var after int64
	replayed := 0
	for {
		page, err := j.List(ctx, after, replayPageSize)
		if err != nil {
			return replayed, err
		}
		if len(page) == 0 {
			return replayed, nil
		}
		for _, e := range page {
			if err := ctx.Err(); err != nil {
				return replayed, err
			}
			m, err := e.Decode()
			if err != nil {
				return replayed, fmt.Errorf("entry %d: %w", e.Seq, err)
			}
			if err := fn(e, m); err != nil {
				return replayed, fmt.Errorf("entry %d: %w", e.Seq, err)
			}
			replayed++
			after = e.Seq
		}
	}
}
