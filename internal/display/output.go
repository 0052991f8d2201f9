package display

import "strings"

// Sequences that wipe the display when they appear anywhere in a chunk.
// Nothing else in the stream is interpreted.
var clearScreenSequences = []string{
	"\x1b[H\x1b[2J",
	"\x0c",
}

func containsClearScreen(text string) bool {
	for _, seq := range clearScreenSequences {
		if strings.Contains(text, seq) {
			return true
		}
	}
	return false
}

// AddOutput appends child output to scrollback. A chunk containing a clear
// screen sequence wipes scrollback instead and is otherwise discarded.
//
// While pinned to the live tail the view keeps following new output. When the
// user has scrolled back the offset grows with the appended lines so the rows
// on screen stay put.
func (s *State) AddOutput(text string) {
	if containsClearScreen(text) {
		s.Clear()
		return
	}

	added := 0
	for _, line := range splitLines(text) {
		s.scrollback.Push(line)
		added++
	}
	// An empty chunk changes nothing, not even a pinned view's selection.
	if added == 0 {
		return
	}

	if s.viewport.Offset == 0 {
		s.ClearSelection()
		return
	}
	want := s.viewport.Offset + added
	s.viewport.Offset = min(want, s.maxOffset())
	if s.viewport.Offset != want {
		s.ClearSelection()
	}
}

// Clear wipes scrollback, returns to the live tail and drops the selection.
// The input line and history are kept.
func (s *State) Clear() {
	s.scrollback.Clear()
	s.viewport.Offset = 0
	s.ClearSelection()
}

// splitLines breaks text on '\n', dropping one trailing '\r' per line. A
// trailing newline does not produce an empty final line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	parts := strings.Split(text, "\n")
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return parts
}
