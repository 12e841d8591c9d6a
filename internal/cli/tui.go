package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/polynav/polynav/pkg/neighborhood"
	"github.com/polynav/polynav/pkg/session"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listFocusStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	listClusterStyle  = lipgloss.NewStyle().Italic(true).Foreground(colorGray)
)

// ExploreModel is the bubbletea model for the interactive explorer. It
// owns the live session value and replaces it wholesale on every
// operation, so undo and redo are plain snapshot swaps.
type ExploreModel struct {
	Session session.Session

	sub    *neighborhood.Subgraph
	items  []neighborhood.Item
	cursor int
	offset int
	height int
	status string
}

// NewExploreModel creates an explorer model over a started session.
func NewExploreModel(s session.Session) ExploreModel {
	m := ExploreModel{Session: s, height: 15}
	m.refresh()
	return m
}

// refresh rebuilds the induced subgraph after a session transition and
// clamps the cursor into the new item list.
func (m *ExploreModel) refresh() {
	m.sub = m.Session.Subgraph()
	m.items = m.sub.Items()
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

func (m ExploreModel) selected() (neighborhood.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return neighborhood.Item{}, false
	}
	return m.items[m.cursor], true
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}

		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}

		case "enter":
			it, ok := m.selected()
			if !ok {
				break
			}
			if it.IsCluster() {
				m.Session = m.Session.ExpandCluster(it.ID)
				m.status = fmt.Sprintf("expanded cluster under %s", it.ID)
			} else {
				m.Session = m.Session.Focus(it.ID)
				m.cursor, m.offset = 0, 0
				m.status = fmt.Sprintf("focused %s", it.ID)
			}
			m.refresh()

		case "e", " ":
			it, ok := m.selected()
			if !ok || !it.IsCluster() {
				break
			}
			m.Session = m.Session.ExpandCluster(it.ID)
			m.status = fmt.Sprintf("expanded cluster under %s", it.ID)
			m.refresh()

		case "x", "backspace":
			it, ok := m.selected()
			if !ok {
				break
			}
			before := m.Session.Displayed.Len()
			m.Session = m.Session.Remove(it)
			pruned := before - m.Session.Displayed.Len() - 1
			if pruned < 0 {
				pruned = 0
			}
			m.status = fmt.Sprintf("removed %s (pruned %d)", it.String(), pruned)
			m.refresh()

		case "u":
			if m.Session.History.CanUndo() {
				m.Session = m.Session.Undo()
				m.status = "undo"
				m.refresh()
			}

		case "r":
			if m.Session.History.CanRedo() {
				m.Session = m.Session.Redo()
				m.status = "redo"
				m.refresh()
			}
		}

	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m ExploreModel) View() string {
	var b strings.Builder

	title := m.Session.FocusID
	if n := m.sub.Node(neighborhood.Real(m.Session.FocusID)); n != nil && n.Title != "" {
		title = fmt.Sprintf("%s (%s)", n.Title, m.Session.FocusID)
	}
	b.WriteString(StyleTitle.Render("Exploring " + title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ focus/expand  x remove  u undo  r redo  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.items) {
		end = len(m.items)
	}

	for i := m.offset; i < end; i++ {
		it := m.items[i]
		n := m.sub.Node(it)

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		var line string
		switch {
		case it.IsCluster():
			line = fmt.Sprintf("%s+%d more under %s", cursor, n.Count, it.ID)
		default:
			stats := fmt.Sprintf("depth %d · %d children · %d descendants",
				n.Depth, n.ChildCount, n.DescendantCount)
			line = fmt.Sprintf("%s%-40s %s", cursor, truncate(n.Title, 40), listDimStyle.Render(stats))
		}

		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case it.IsCluster():
			b.WriteString(listClusterStyle.Render(line))
		case !it.IsCluster() && it.ID == m.Session.FocusID:
			b.WriteString(listFocusStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	h := m.Session.History
	footer := fmt.Sprintf("  [%d/%d] history   %d nodes, %d edges",
		h.Pointer()+1, h.Len(), m.sub.Len(), len(m.sub.Edges()))
	b.WriteString(listDimStyle.Render(footer))
	if m.status != "" {
		b.WriteString(listDimStyle.Render("   " + m.status))
	}
	b.WriteString("\n")

	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
