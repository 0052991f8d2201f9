package display

import "unicode/utf8"

// Navigation is the history browsing cursor: either live (editing a fresh
// line) or browsing a specific history entry. Only State can produce a
// browsing value, so a held index is always valid for the history it came from.
type Navigation struct {
	browsing bool
	index    int
}

// Live reports whether no history entry is being browsed.
func (n Navigation) Live() bool { return !n.browsing }

// Index returns the browsed history index, or false when live.
func (n Navigation) Index() (int, bool) {
	if !n.browsing {
		return 0, false
	}
	return n.index, true
}

func browsingAt(i int) Navigation { return Navigation{browsing: true, index: i} }

// AddInput inserts text at the cursor and leaves history browsing.
func (s *State) AddInput(text string) {
	s.nav = Navigation{}
	s.ClearSelection()
	if text == "" {
		return
	}
	runes := []rune(text)
	tail := append([]rune(nil), s.input[s.cursor:]...)
	s.input = append(append(s.input[:s.cursor], runes...), tail...)
	s.cursor += len(runes)
}

// HandleBackspace removes the code point before the cursor.
func (s *State) HandleBackspace() {
	if s.cursor == 0 {
		return
	}
	s.input = append(s.input[:s.cursor-1], s.input[s.cursor:]...)
	s.cursor--
	s.nav = Navigation{}
	s.ClearSelection()
}

// CommitInput takes the current input line, records it in history when
// non-empty, and echoes prompt+input into scrollback. It returns the text.
func (s *State) CommitInput() string {
	input := string(s.input)
	s.input = s.input[:0]
	s.cursor = 0

	if input != "" {
		s.history.Push(input)
	}
	s.AddOutput(s.settings.Prompt + input + "\n")
	s.nav = Navigation{}
	s.ClearSelection()
	return input
}

// HandleKeyUp moves one entry back in history, replacing the input line.
func (s *State) HandleKeyUp() {
	n := s.history.Len()
	if n == 0 {
		return
	}
	idx := n - 1
	if i, ok := s.nav.Index(); ok {
		idx = max(i-1, 0)
	}
	s.nav = browsingAt(idx)
	s.loadHistory(idx)
}

// HandleKeyDown moves one entry forward in history. Moving past the newest
// entry clears the input line and returns to live editing.
func (s *State) HandleKeyDown() {
	i, ok := s.nav.Index()
	if !ok {
		return
	}
	if i+1 >= s.history.Len() {
		s.input = s.input[:0]
		s.cursor = 0
		s.nav = Navigation{}
		s.ClearSelection()
		return
	}
	s.nav = browsingAt(i + 1)
	s.loadHistory(i + 1)
}

func (s *State) loadHistory(i int) {
	entry := s.history.At(i)
	s.input = []rune(entry)
	s.cursor = utf8.RuneCountInString(entry)
	s.ClearSelection()
}
