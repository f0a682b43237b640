// Package browse provides the Bubble Tea vocabulary browser.
package browse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/bibaboba/internal/model"
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

const maxLimit = 1000

// Tab is one ranking direction. Rank is called again whenever the limit changes.
type Tab struct {
	Title string
	Rank  func(limit int) []model.RankedWord
}

// Model implements the Bubble Tea vocabulary browser.
type Model struct {
	tabs      []Tab
	activeTab int
	limit     int
	info      string

	rows  []model.RankedWord
	table table.Model

	width  int
	height int
}

// NewModel constructs a browser over tabs starting at limit rows.
// info is shown under the tabs.
func NewModel(tabs []Tab, limit int, info string) *Model {
	if limit < 1 {
		limit = 1
	}
	m := &Model{
		tabs:  tabs,
		limit: limit,
		info:  info,
	}
	m.table = table.New(
		table.WithColumns(columnsFor(0)),
		table.WithFocused(true),
		table.WithHeight(1),
	)
	m.table.SetStyles(tableStyles())
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h", "shift+tab":
			m.moveTab(-1)
			return m, nil
		case "right", "l", "tab":
			m.moveTab(1)
			return m, nil
		case "=", "+":
			m.limit = nextLimit(m.limit)
			m.refresh()
			return m, nil
		case "-":
			m.limit = prevLimit(m.limit)
			m.refresh()
			return m, nil
		case "g", "home":
			m.table.GotoTop()
			return m, nil
		case "G", "end":
			m.table.GotoBottom()
			return m, nil
		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderHelp(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// Limit returns the current number of ranked rows.
func (m *Model) Limit() int {
	return m.limit
}

// ActiveTab returns the index of the visible tab.
func (m *Model) ActiveTab() int {
	return m.activeTab
}

// Rows returns the rows of the visible ranking.
func (m *Model) Rows() []model.RankedWord {
	return append([]model.RankedWord{}, m.rows...)
}

func (m *Model) refresh() {
	m.rows = nil
	if m.activeTab < len(m.tabs) && m.tabs[m.activeTab].Rank != nil {
		m.rows = m.tabs[m.activeTab].Rank(m.limit)
	}
	wordWidth := 0
	rows := make([]table.Row, 0, len(m.rows))
	for i, rw := range m.rows {
		if w := lipgloss.Width(rw.Word); w > wordWidth {
			wordWidth = w
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			rw.Word,
			strconv.Itoa(rw.Count),
			fmt.Sprintf("%.2f%%", rw.Quotient*100),
		})
	}
	m.table.SetColumns(columnsFor(wordWidth))
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	m.refresh()
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.table.SetWidth(m.width)
	// One line is taken by the header row.
	m.table.SetHeight(maxInt(1, bodyHeight-1))
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab.Title))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab.Title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	summary := fmt.Sprintf("Top %d", m.limit)
	if m.info != "" {
		summary += "  " + m.info
	}
	return tabs + "\n" + headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderBody() string {
	if len(m.rows) == 0 {
		return "No characteristic words found."
	}
	return tableMutedStyle.Render(m.table.View())
}

func (m *Model) renderHelp() string {
	help := "Nav: left/right  Scroll: up/down/pgup/pgdn  Limit: -/=  Quit: q"
	return headerStyle.Render(truncateLine(help, m.width))
}

func columnsFor(wordWidth int) []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Word", Width: maxInt(12, wordWidth)},
		{Title: "Count", Width: 7},
		{Title: "Quotient", Width: 9},
	}
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func nextLimit(n int) int {
	if n < 5 {
		return 5
	}
	next := ((n / 5) + 1) * 5
	if next > maxLimit {
		return maxLimit
	}
	return next
}

func prevLimit(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}
