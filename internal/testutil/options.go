package testutil

import (
	"time"

	"github.com/zjrosen/artcollab/internal/command"
)

// entryData holds overrides applied to a mutation before it is journaled.
type entryData struct {
	source    command.CommandSource
	id        string
	createdAt time.Time
}

func defaultEntry() entryData {
	return entryData{source: command.SourceAPI}
}

// EntryOption configures a journaled mutation during builder setup.
type EntryOption func(*entryData)

// Source overrides the command source (default SourceAPI).
func Source(s command.CommandSource) EntryOption {
	return func(e *entryData) { e.source = s }
}

// CommandID pins the command id instead of a generated UUID.
func CommandID(id string) EntryOption {
	return func(e *entryData) { e.id = id }
}

// At sets the command creation time.
func At(t time.Time) EntryOption {
	return func(e *entryData) { e.createdAt = t }
}

type stampable interface {
	SetID(string)
	SetCreatedAt(time.Time)
}

func (e entryData) apply(m command.Mutation) command.Mutation {
	s, ok := m.(stampable)
	if !ok {
		return m
	}
	if e.id != "" {
		s.SetID(e.id)
	}
	if !e.createdAt.IsZero() {
		s.SetCreatedAt(e.createdAt)
	}
	return m
}
