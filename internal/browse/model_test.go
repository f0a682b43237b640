package browse

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/bibaboba/internal/model"
	"github.com/verte-zerg/bibaboba/internal/vocab"
)

func testTabs() []Tab {
	first := []string{"pizza", "pizza", "is", "great", "a", "b", "c", "d", "e", "f", "g"}
	second := []string{"pasta"}
	return []Tab{
		{Title: "Biba vs Boba", Rank: func(limit int) []model.RankedWord { return vocab.Rank(first, limit) }},
		{Title: "Boba vs Biba", Rank: func(limit int) []model.RankedWord { return vocab.Rank(second, limit) }},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLimitKeys(t *testing.T) {
	m := NewModel(testTabs(), 2, "")
	if len(m.Rows()) != 2 || m.Rows()[0].Word != "pizza" {
		t.Fatalf("unexpected initial rows: %+v", m.Rows())
	}
	m.Update(keyRunes("="))
	if m.Limit() != 5 || len(m.Rows()) != 5 {
		t.Fatalf("expected limit 5, got %d with %d rows", m.Limit(), len(m.Rows()))
	}
	m.Update(keyRunes("="))
	if m.Limit() != 10 || len(m.Rows()) != 10 {
		t.Fatalf("expected limit 10, got %d with %d rows", m.Limit(), len(m.Rows()))
	}
	m.Update(keyRunes("-"))
	m.Update(keyRunes("-"))
	if m.Limit() != 1 || len(m.Rows()) != 1 {
		t.Fatalf("expected limit 1, got %d", m.Limit())
	}
	m.Update(keyRunes("-"))
	if m.Limit() != 1 {
		t.Fatalf("limit must not drop below 1, got %d", m.Limit())
	}
}

func TestTabSwitchReranks(t *testing.T) {
	m := NewModel(testTabs(), 10, "")
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.ActiveTab() != 1 || len(m.Rows()) != 1 || m.Rows()[0].Word != "pasta" {
		t.Fatalf("unexpected second tab state: tab=%d rows=%+v", m.ActiveTab(), m.Rows())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.ActiveTab() != 0 {
		t.Fatalf("expected wrap to first tab, got %d", m.ActiveTab())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.ActiveTab() != 1 {
		t.Fatalf("expected wrap to last tab, got %d", m.ActiveTab())
	}
}

func TestQuit(t *testing.T) {
	m := NewModel(testTabs(), 3, "")
	_, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestViewRendersTabsAndRows(t *testing.T) {
	m := NewModel(testTabs(), 3, "threshold 3")
	if m.View() != "" {
		t.Fatalf("expected empty view before size is known")
	}
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	view := m.View()
	for _, want := range []string{"Biba vs Boba", "Boba vs Biba", "Top 3", "threshold 3", "pizza", "Quit: q"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	if lines := strings.Split(view, "\n"); len(lines) != 20 {
		t.Fatalf("expected 20 lines, got %d", len(lines))
	}
}

func TestEmptyRanking(t *testing.T) {
	tabs := []Tab{{Title: "A vs B", Rank: func(int) []model.RankedWord { return nil }}}
	m := NewModel(tabs, 10, "")
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 10})
	if !strings.Contains(m.View(), "No characteristic words found.") {
		t.Fatalf("expected empty message")
	}
}

func TestLimitSteps(t *testing.T) {
	cases := []struct{ in, next, prev int }{
		{1, 5, 1},
		{5, 10, 1},
		{7, 10, 5},
		{10, 15, 5},
		{maxLimit, maxLimit, maxLimit - 5},
	}
	for _, c := range cases {
		if got := nextLimit(c.in); got != c.next {
			t.Fatalf("nextLimit(%d) = %d, want %d", c.in, got, c.next)
		}
		if got := prevLimit(c.in); got != c.prev {
			t.Fatalf("prevLimit(%d) = %d, want %d", c.in, got, c.prev)
		}
	}
}
