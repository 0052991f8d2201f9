package display

// maxOffset is the furthest the view may scroll back: the oldest line sits at
// the top of the scrollback rows, which are one fewer than VisibleLines
// because the last row belongs to the input line.
func (s *State) maxOffset() int {
	return max(0, s.scrollback.Len()-(s.viewport.VisibleLines-1))
}

// ScrollUp moves the view n lines back into history.
func (s *State) ScrollUp(n int) {
	if n < 0 {
		s.ScrollDown(-n)
		return
	}
	s.viewport.Offset = min(s.viewport.Offset+n, s.maxOffset())
	s.ClearSelection()
}

// ScrollDown moves the view n lines toward the live tail.
func (s *State) ScrollDown(n int) {
	if n < 0 {
		s.ScrollUp(-n)
		return
	}
	s.viewport.Offset = max(s.viewport.Offset-n, 0)
	s.ClearSelection()
}

// ScrollToBottom pins the view to the live tail.
func (s *State) ScrollToBottom() {
	s.viewport.Offset = 0
	s.ClearSelection()
}

// ScrollToTop shows the oldest retained lines.
func (s *State) ScrollToTop() {
	s.viewport.Offset = s.maxOffset()
	s.ClearSelection()
}

func (s *State) pageSize() int {
	return max(s.viewport.VisibleLines-1, 1)
}

// PageUp scrolls back by one screen of scrollback rows.
func (s *State) PageUp() { s.ScrollUp(s.pageSize()) }

// PageDown scrolls forward by one screen of scrollback rows.
func (s *State) PageDown() { s.ScrollDown(s.pageSize()) }

// IsScrolled reports whether the view is off the live tail.
func (s *State) IsScrolled() bool { return s.viewport.Offset > 0 }

// visibleRange returns the scrollback window [start, end) on screen.
func (s *State) visibleRange() (int, int) {
	end := max(s.scrollback.Len()-s.viewport.Offset, 0)
	start := max(end-(s.viewport.VisibleLines-1), 0)
	return start, end
}

// VisibleContent returns one Line per on-screen row. The prompt and input
// line are appended only while the view is pinned to the live tail.
func (s *State) VisibleContent() []Line {
	start, end := s.visibleRange()
	out := make([]Line, 0, end-start+1)
	for _, text := range s.scrollback.Slice(start, end) {
		out = append(out, Line{Text: text, Color: s.settings.Colors.Text})
	}
	if s.viewport.Offset == 0 {
		out = append(out, Line{
			Text:  s.settings.Prompt + string(s.input),
			Color: s.settings.Colors.Input,
		})
	}
	return out
}
