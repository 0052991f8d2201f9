// Package display holds the terminal's display model: scrollback, the live
// input line, command history, the scrolled viewport and the text selection.
//
// State is not safe for concurrent use. It is owned by the foreground loop and
// never performs I/O.
package display

import "image/color"

const (
	// MaxScrollbackLines bounds the scrollback; older lines are evicted first.
	MaxScrollbackLines = 1000
	// MaxCommandHistory bounds the committed-input history.
	MaxCommandHistory = 100
)

// Line is one renderable row.
type Line struct {
	Text  string
	Color color.Color
}

// Viewport describes which slice of scrollback is on screen. Offset counts
// lines scrolled back from the live tail.
type Viewport struct {
	Offset       int
	VisibleLines int
	LineHeight   int
	Width        int
	Height       int
}

// State is the display model of one terminal window.
type State struct {
	scrollback *ring[string]
	history    *ring[string]
	nav        Navigation

	input  []rune
	cursor int

	settings  Settings
	viewport  Viewport
	selection *Selection
}

// New creates an empty State sized for a width x height area whose rows are
// lineHeight tall.
func New(width, height, lineHeight int, settings Settings) *State {
	s := &State{
		scrollback: newRing[string](MaxScrollbackLines),
		history:    newRing[string](MaxCommandHistory),
		settings:   settings.withDefaults(),
	}
	s.viewport = layout(width, height, lineHeight)
	return s
}

func layout(width, height, lineHeight int) Viewport {
	if lineHeight < 1 {
		lineHeight = 1
	}
	visible := height / lineHeight
	if visible < 1 {
		visible = 1
	}
	return Viewport{
		VisibleLines: visible,
		LineHeight:   lineHeight,
		Width:        width,
		Height:       height,
	}
}

// Resize recomputes the viewport geometry in place. Scrollback, history and
// the input line survive; the offset is re-clamped and the selection dropped
// because row indices no longer mean the same thing.
func (s *State) Resize(width, height, lineHeight int) {
	offset := s.viewport.Offset
	s.viewport = layout(width, height, lineHeight)
	s.viewport.Offset = min(offset, s.maxOffset())
	s.ClearSelection()
}

// Viewport returns a copy of the current viewport.
func (s *State) Viewport() Viewport { return s.viewport }

// Settings returns the immutable settings.
func (s *State) Settings() Settings { return s.settings }

// CurrentInput returns the uncommitted input line.
func (s *State) CurrentInput() string { return string(s.input) }

// Cursor returns the cursor position within the input line, in code points.
func (s *State) Cursor() int { return s.cursor }

// ScrollbackLen returns the number of lines held in scrollback.
func (s *State) ScrollbackLen() int { return s.scrollback.Len() }

// Scrollback returns a copy of all scrollback lines, oldest first.
func (s *State) Scrollback() []string { return s.scrollback.Slice(0, s.scrollback.Len()) }

// History returns a copy of the command history, oldest first.
func (s *State) History() []string { return s.history.Slice(0, s.history.Len()) }

// Navigation reports whether the user is browsing history.
func (s *State) Navigation() Navigation { return s.nav }
