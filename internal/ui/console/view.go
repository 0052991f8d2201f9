package console

import (
	"strings"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/nickheyer/Mikoshi/internal/perf"
)

type cellKind int

const (
	cellNormal cellKind = iota
	cellSelected
	cellCursor
)

// View renders the visible window.
func (m *Model) View() tea.View {
	defer perf.Time("view")()

	colors := m.state.Settings().Colors
	view := tea.View{
		AltScreen:       true,
		MouseMode:       tea.MouseModeCellMotion,
		BackgroundColor: colors.Background,
		ForegroundColor: colors.Text,
	}
	if m.quitting {
		view.SetContent("")
		return view
	}
	view.SetContent(m.render())
	return view
}

func (m *Model) render() string {
	vp := m.state.Viewport()
	width := max(vp.Width, 1)
	content := m.state.VisibleContent()
	inputRow := -1
	if !m.state.IsScrolled() && len(content) > 0 {
		inputRow = len(content) - 1
	}

	rows := make([]string, 0, vp.VisibleLines)
	for i, line := range content {
		base := m.styles.Output
		cursor := -1
		if i == inputRow {
			base = m.styles.Input
			cursor = utf8.RuneCountInString(m.state.Settings().Prompt) + m.state.Cursor()
		}
		rows = append(rows, m.renderRow(ansi.Strip(line.Text), i, width, base, cursor))
	}
	blank := m.styles.Screen.Render(strings.Repeat(" ", width))
	for len(rows) < vp.VisibleLines {
		rows = append(rows, blank)
	}
	return strings.Join(rows, "\n")
}

// renderRow styles one row cell by cell and pads it to width. cursor is the
// code-point column of the block cursor, or -1.
func (m *Model) renderRow(text string, row, width int, base lipgloss.Style, cursor int) string {
	var b strings.Builder
	var run strings.Builder
	kind := cellNormal
	used := 0

	flush := func() {
		if run.Len() == 0 {
			return
		}
		switch kind {
		case cellSelected:
			b.WriteString(m.styles.Selection.Render(run.String()))
		case cellCursor:
			b.WriteString(m.styles.Cursor.Render(run.String()))
		default:
			b.WriteString(base.Render(run.String()))
		}
		run.Reset()
	}

	col := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if used+w > width {
			break
		}
		k := cellNormal
		switch {
		case col == cursor:
			k = cellCursor
		case m.state.IsSelected(row, col):
			k = cellSelected
		}
		if k != kind {
			flush()
			kind = k
		}
		run.WriteRune(r)
		used += w
		col++
	}
	flush()

	if cursor >= col && cursor >= 0 && used < width {
		b.WriteString(m.styles.Cursor.Render(" "))
		used++
	}
	if used < width {
		b.WriteString(base.Render(strings.Repeat(" ", width-used)))
	}
	return b.String()
}

// columnAt maps a screen cell on row y to a code-point column, accounting for
// wide characters.
func (m *Model) columnAt(y, x int) int {
	content := m.state.VisibleContent()
	if y < 0 || y >= len(content) || x <= 0 {
		return 0
	}
	used := 0
	col := 0
	for _, r := range content[y].Text {
		w := runewidth.RuneWidth(r)
		if used+w > x {
			return col
		}
		used += w
		col++
	}
	return col
}
