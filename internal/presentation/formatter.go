package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatJSON writes v as indented JSON.
func (f *Formatter) FormatJSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatEntries prints entries as an aligned table, one row per entry.
func (f *Formatter) FormatEntries(entries []JournalEntryDTO) error {
	tw := tabwriter.NewWriter(f.writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tTYPE\tCALLER\tCREATED\tPAYLOAD")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			e.Seq, e.CommandType, e.CallerID, e.CreatedAt.Format("2006-01-02T15:04:05Z"), e.Payload)
	}
	return tw.Flush()
}

// FormatVerifyReport prints a one-screen replay summary.
func (f *Formatter) FormatVerifyReport(r VerifyReportDTO) error {
	status := "ok"
	if !r.OK {
		status = "FAILED"
	}
	_, err := fmt.Fprintf(f.writer,
		"journal %s: replayed %d of %d entries\nartists: %d\nartworks: %d (next id %d)\nnfts: %d (next id %d)\n",
		status, r.Replayed, r.Entries, r.Artists, r.Artworks, r.NextArtworkID, r.Nfts, r.NextNftID)
	if err != nil {
		return err
	}
	if r.FirstFailure != "" {
		_, err = fmt.Fprintf(f.writer, "first failure: %s\n", r.FirstFailure)
	}
	return err
}
