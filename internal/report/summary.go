package report

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/bibaboba/internal/model"
)

// Participant is the per-person part of a summary.
type Participant struct {
	ID     string
	Name   string
	Tokens int
	Cached bool
}

// Summary describes one comparison run.
type Summary struct {
	First          Participant
	Second         Participant
	Threshold      int
	DifferenceSize int
	Distinct       int
}

// RenderSummary prints token and difference statistics.
func RenderSummary(w io.Writer, s Summary) error {
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	for _, p := range []Participant{s.First, s.Second} {
		source := "tokenized"
		if p.Cached {
			source = "cached"
		}
		if _, err := fmt.Fprintf(w, "%s (%s): %s tokens, %s\n",
			p.Name, p.ID, humanize.Comma(int64(p.Tokens)), source); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Threshold: %d\n", s.Threshold); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Difference: %s words, %s distinct\n",
		humanize.Comma(int64(s.DifferenceSize)), humanize.Comma(int64(s.Distinct)))
	return err
}

// RenderTokenCounts prints the token count of each participant.
func RenderTokenCounts(w io.Writer, participants []Participant) error {
	rows := make([][]string, 0, len(participants))
	for _, p := range participants {
		rows = append(rows, []string{p.Name, p.ID, humanize.Comma(int64(p.Tokens))})
	}
	for _, line := range formatTable([]string{"Name", "ID", "Tokens"}, rows, map[int]bool{2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCacheList prints cache entries with relative ages measured from now.
func RenderCacheList(w io.Writer, entries []model.CacheSummary, now time.Time, pretty bool) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "Cache is empty.")
		return err
	}
	headers := []string{"ID", "Name", "Tokens", "Cached", "Policy"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Key,
			e.Name,
			humanize.Comma(int64(e.TokenCount)),
			humanize.RelTime(e.CachedAt, now, "ago", "from now"),
			e.Policy,
		})
	}
	rightAlign := map[int]bool{2: true}
	if pretty {
		_, err := fmt.Fprintln(w, renderPretty(headers, rows, rightAlign))
		return err
	}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
