// Package report renders vocabulary rankings and cache listings.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/bibaboba/internal/model"
)

// Format selects the ranking output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatTSV   Format = "tsv"
	FormatJSON  Format = "json"
)

// ParseFormat validates a format name. Empty means table.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatTSV:
		return FormatTSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("format: unsupported value %q (want table, tsv or json)", value)
	}
}

// Ranking is the ranked vocabulary of one participant against another.
type Ranking struct {
	// ID is the companion id of the characterized participant.
	ID        string
	Name      string
	Against   string
	Threshold int
	Words     []model.RankedWord
}

// Title is the heading printed above a ranking table.
func (r Ranking) Title() string {
	return fmt.Sprintf("%s vs %s", r.Name, r.Against)
}

// Options controls ranking output.
type Options struct {
	Format Format
	// Pretty draws box tables. Only used by FormatTable.
	Pretty bool
}

var rankingHeaders = []string{"Word", "Count", "Quotient"}

// RankingRows converts ranked words to table cells.
func RankingRows(words []model.RankedWord) [][]string {
	rows := make([][]string, 0, len(words))
	for _, w := range words {
		rows = append(rows, []string{
			w.Word,
			strconv.Itoa(w.Count),
			strconv.FormatFloat(w.Quotient, 'f', 4, 64),
		})
	}
	return rows
}

// Render writes rankings in the requested format.
func Render(w io.Writer, rankings []Ranking, opts Options) error {
	switch opts.Format {
	case "", FormatTable:
		return renderTables(w, rankings, opts.Pretty)
	case FormatTSV:
		return renderTSV(w, rankings)
	case FormatJSON:
		return renderJSON(w, rankings)
	default:
		return fmt.Errorf("format: unsupported value %q", opts.Format)
	}
}

func renderTables(w io.Writer, rankings []Ranking, pretty bool) error {
	rightAlign := map[int]bool{1: true, 2: true}
	for i, r := range rankings {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, r.Title()); err != nil {
			return err
		}
		if len(r.Words) == 0 {
			if _, err := fmt.Fprintln(w, "No characteristic words found."); err != nil {
				return err
			}
			continue
		}
		rows := RankingRows(r.Words)
		if pretty {
			if _, err := fmt.Fprintln(w, renderPretty(rankingHeaders, rows, rightAlign)); err != nil {
				return err
			}
			continue
		}
		for _, line := range formatTable(rankingHeaders, rows, rightAlign) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func renderTSV(w io.Writer, rankings []Ranking) error {
	multi := len(rankings) > 1
	header := rankingHeaders
	if multi {
		header = append([]string{"ID", "Name"}, rankingHeaders...)
	}
	if _, err := fmt.Fprintln(w, strings.Join(header, "\t")); err != nil {
		return err
	}
	for _, r := range rankings {
		for _, row := range RankingRows(r.Words) {
			if multi {
				row = append([]string{r.ID, r.Name}, row...)
			}
			if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
				return err
			}
		}
	}
	return nil
}

type jsonWord struct {
	Word     string  `json:"word"`
	Count    int     `json:"count"`
	Quotient float64 `json:"quotient"`
}

type jsonRanking struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Against   string     `json:"against"`
	Threshold int        `json:"threshold"`
	Words     []jsonWord `json:"words"`
}

func renderJSON(w io.Writer, rankings []Ranking) error {
	out := make([]jsonRanking, 0, len(rankings))
	for _, r := range rankings {
		words := make([]jsonWord, 0, len(r.Words))
		for _, rw := range r.Words {
			words = append(words, jsonWord{Word: rw.Word, Count: rw.Count, Quotient: rw.Quotient})
		}
		out = append(out, jsonRanking{
			ID:        r.ID,
			Name:      r.Name,
			Against:   r.Against,
			Threshold: r.Threshold,
			Words:     words,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
