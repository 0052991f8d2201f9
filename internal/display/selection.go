package display

import "strings"

// Position addresses a code point in the currently visible content: Line is an
// index into VisibleContent, Column a code-point index within that line.
type Position struct {
	Line   int
	Column int
}

// Before reports whether p sorts strictly before q in (line, column) order.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

// Selection is a drag from Start to End in either direction.
type Selection struct {
	Start Position
	End   Position
}

// Normalize returns the endpoints in document order.
func (s Selection) Normalize() (Position, Position) {
	if s.End.Before(s.Start) {
		return s.End, s.Start
	}
	return s.Start, s.End
}

// Empty reports whether the selection covers no characters.
func (s Selection) Empty() bool { return s.Start == s.End }

// StartSelection begins a zero-width selection. Out-of-range lines are
// ignored; the column is clamped to the line's length.
func (s *State) StartSelection(line, col int) {
	content := s.VisibleContent()
	if line < 0 || line >= len(content) {
		return
	}
	pos := Position{Line: line, Column: clampColumn(content[line].Text, col)}
	s.selection = &Selection{Start: pos, End: pos}
}

// UpdateSelection moves the free end of the active selection, clamping both
// coordinates to the visible content.
func (s *State) UpdateSelection(line, col int) {
	if s.selection == nil {
		return
	}
	content := s.VisibleContent()
	if len(content) == 0 {
		return
	}
	line = min(max(line, 0), len(content)-1)
	s.selection.End = Position{Line: line, Column: clampColumn(content[line].Text, col)}
}

// ClearSelection drops any active selection.
func (s *State) ClearSelection() {
	s.selection = nil
}

// Selection returns the active selection, if any.
func (s *State) Selection() (Selection, bool) {
	if s.selection == nil {
		return Selection{}, false
	}
	return *s.selection, true
}

// HasSelection reports whether a selection is active.
func (s *State) HasSelection() bool { return s.selection != nil }

// SelectedText returns the selected text with rows joined by '\n'.
func (s *State) SelectedText() string {
	if s.selection == nil {
		return ""
	}
	return textInRange(s.VisibleContent(), *s.selection)
}

// IsSelected reports whether the code point at (line, col) is inside the
// active selection. Renderers use it to highlight cells.
func (s *State) IsSelected(line, col int) bool {
	if s.selection == nil {
		return false
	}
	start, end := s.selection.Normalize()
	if line < start.Line || line > end.Line {
		return false
	}
	if line == start.Line && col < start.Column {
		return false
	}
	if line == end.Line && col >= end.Column {
		return false
	}
	return true
}

func textInRange(content []Line, sel Selection) string {
	start, end := sel.Normalize()
	var rows []string
	for i := start.Line; i <= end.Line && i < len(content); i++ {
		if i < 0 {
			continue
		}
		runes := []rune(content[i].Text)
		from, to := 0, len(runes)
		if i == start.Line {
			from = min(start.Column, len(runes))
		}
		if i == end.Line {
			to = min(end.Column, len(runes))
		}
		if from > to {
			from = to
		}
		rows = append(rows, string(runes[from:to]))
	}
	return strings.Join(rows, "\n")
}

func clampColumn(text string, col int) int {
	n := len([]rune(text))
	return min(max(col, 0), n)
}
