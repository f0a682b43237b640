package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/bibaboba/internal/model"
)

var pizzaRanking = Ranking{
	ID:        "user1",
	Name:      "Biba",
	Against:   "Boba",
	Threshold: 1,
	Words: []model.RankedWord{
		{Word: "pizza", Count: 2, Quotient: 2.0 / 3.0},
		{Word: "is", Count: 1, Quotient: 1.0 / 3.0},
	},
}

func TestParseFormat(t *testing.T) {
	for in, expected := range map[string]Format{"": FormatTable, "TSV": FormatTSV, " json ": FormatJSON} {
		got, err := ParseFormat(in)
		if err != nil || got != expected {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("csv"); err == nil {
		t.Fatalf("expected error for csv")
	}
}

func TestRenderPlainTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, []Ranking{pizzaRanking}, Options{Format: FormatTable}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	expected := "Biba vs Boba\n" +
		"Word  Count Quotient\n" +
		"pizza     2   0.6667\n" +
		"is        1   0.3333\n"
	if buf.String() != expected {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestRenderEmptyRanking(t *testing.T) {
	var buf bytes.Buffer
	empty := Ranking{Name: "A", Against: "B"}
	if err := Render(&buf, []Ranking{empty}, Options{Pretty: true}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No characteristic words found.") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestRenderTSV(t *testing.T) {
	var buf bytes.Buffer
	reverse := Ranking{ID: "user2", Name: "Boba", Against: "Biba", Words: []model.RankedWord{{Word: "pasta", Count: 1, Quotient: 1}}}
	if err := Render(&buf, []Ranking{pizzaRanking, reverse}, Options{Format: FormatTSV}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %q", lines)
	}
	if lines[0] != "ID\tName\tWord\tCount\tQuotient" || lines[3] != "user2\tBoba\tpasta\t1\t1.0000" {
		t.Fatalf("unexpected tsv: %q", lines)
	}
}

func TestRenderTSVSeparatesSameNames(t *testing.T) {
	var buf bytes.Buffer
	first := Ranking{ID: "user1", Name: "Alex", Against: "Alex", Words: []model.RankedWord{{Word: "pizza", Count: 1, Quotient: 1}}}
	second := Ranking{ID: "user2", Name: "Alex", Against: "Alex", Words: []model.RankedWord{{Word: "pizza", Count: 1, Quotient: 1}}}
	if err := Render(&buf, []Ranking{first, second}, Options{Format: FormatTSV}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 || lines[1] == lines[2] {
		t.Fatalf("expected distinguishable rows, got %q", lines)
	}
	if lines[1] != "user1\tAlex\tpizza\t1\t1.0000" || lines[2] != "user2\tAlex\tpizza\t1\t1.0000" {
		t.Fatalf("unexpected tsv: %q", lines)
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, []Ranking{pizzaRanking}, Options{Format: FormatJSON}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	var decoded []struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Threshold int    `json:"threshold"`
		Words     []struct {
			Word  string `json:"word"`
			Count int    `json:"count"`
		} `json:"words"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(decoded) != 1 || decoded[0].ID != "user1" || decoded[0].Name != "Biba" || decoded[0].Words[0].Word != "pizza" {
		t.Fatalf("unexpected decoded output: %+v", decoded)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	err := RenderSummary(&buf, Summary{
		First:          Participant{ID: "user1", Name: "Biba", Tokens: 12345, Cached: true},
		Second:         Participant{ID: "user2", Name: "Boba", Tokens: 3},
		Threshold:      3,
		DifferenceSize: 1500,
		Distinct:       42,
	})
	if err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Biba (user1): 12,345 tokens, cached", "Boba (user2): 3 tokens, tokenized", "Difference: 1,500 words, 42 distinct"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderCacheList(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	entries := []model.CacheSummary{
		{Key: "user1", Name: "Biba", Policy: "p1", TokenCount: 2048, CachedAt: now.Add(-2 * time.Hour)},
	}
	var buf bytes.Buffer
	if err := RenderCacheList(&buf, entries, now, false); err != nil {
		t.Fatalf("RenderCacheList failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "2,048") || !strings.Contains(out, "2 hours ago") {
		t.Fatalf("unexpected cache list:\n%s", out)
	}

	buf.Reset()
	if err := RenderCacheList(&buf, nil, now, false); err != nil || buf.String() != "Cache is empty.\n" {
		t.Fatalf("unexpected empty output %q, %v", buf.String(), err)
	}
}
