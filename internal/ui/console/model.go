// Package console is the foreground loop: it turns keyboard, mouse and window
// events into display.State edits and shell input, and renders the visible
// window every frame.
package console

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/nickheyer/Mikoshi/internal/config"
	"github.com/nickheyer/Mikoshi/internal/display"
	"github.com/nickheyer/Mikoshi/internal/keymap"
	"github.com/nickheyer/Mikoshi/internal/logging"
	"github.com/nickheyer/Mikoshi/internal/perf"
	"github.com/nickheyer/Mikoshi/internal/shell"
	"github.com/nickheyer/Mikoshi/internal/ui/common"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Session is the part of shell.Session the console drives.
type Session interface {
	WriteInput(p []byte) error
	GetOutput() []byte
	ShouldExit() bool
}

// Clipboard copies and pastes text.
type Clipboard interface {
	Copy(text string) error
	Paste() (string, error)
}

type systemClipboard struct{}

func (systemClipboard) Copy(text string) error  { return common.CopyToClipboard(text) }
func (systemClipboard) Paste() (string, error) { return common.ReadClipboard() }

// Options configures a Model.
type Options struct {
	Settings      display.Settings
	KeyMap        keymap.KeyMap
	InputMode     config.InputMode
	FrameInterval time.Duration
	WheelLines    int
	Clipboard     Clipboard
}

// OptionsFromConfig derives console options from the loaded config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Settings:      cfg.Settings(),
		KeyMap:        keymap.New(cfg.KeyMap),
		InputMode:     cfg.InputMode,
		FrameInterval: cfg.FrameInterval,
		WheelLines:    cfg.WheelLines,
	}
}

// KeyMapReloadedMsg swaps the active bindings, typically after the config
// file changed on disk.
type KeyMapReloadedMsg struct {
	KeyMap keymap.KeyMap
}

type frameMsg time.Time

// Model is the bubbletea model for a single shell window.
type Model struct {
	session Session
	state   *display.State
	keys    keymap.KeyMap
	styles  common.Styles
	clip    Clipboard

	mode  config.InputMode
	frame time.Duration
	wheel int

	dragging bool
	quitting bool
}

// New creates a console bound to session.
func New(session Session, opts Options) *Model {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = 16 * time.Millisecond
	}
	if opts.WheelLines <= 0 {
		opts.WheelLines = 3
	}
	if opts.InputMode == "" {
		opts.InputMode = config.InputModeLine
	}
	if opts.Clipboard == nil {
		opts.Clipboard = systemClipboard{}
	}
	state := display.New(defaultWidth, defaultHeight, 1, opts.Settings)
	return &Model{
		session: session,
		state:   state,
		keys:    opts.KeyMap,
		styles:  common.NewStyles(state.Settings()),
		clip:    opts.Clipboard,
		mode:    opts.InputMode,
		frame:   opts.FrameInterval,
		wheel:   opts.WheelLines,
	}
}

// State exposes the display state.
func (m *Model) State() *display.State { return m.state }

// Init starts the frame loop.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return common.SafeTick(m.frame, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Update handles one event.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.drainOutput()
		if m.session.ShouldExit() {
			logging.Info("shell input closed, leaving console")
			m.quitting = true
			return m, tea.Quit
		}
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.state.Resize(msg.Width, msg.Height, 1)

	case tea.KeyPressMsg:
		m.handleKey(msg)

	case tea.PasteMsg:
		m.insertText(msg.Content)

	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			m.dragging = true
			m.state.StartSelection(msg.Y, m.columnAt(msg.Y, msg.X))
		}

	case tea.MouseMotionMsg:
		if m.dragging {
			m.state.UpdateSelection(msg.Y, m.columnAt(msg.Y, msg.X))
		}

	case tea.MouseReleaseMsg:
		if m.dragging {
			m.dragging = false
			m.copySelection()
		}

	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			m.state.ScrollUp(m.wheel)
		case tea.MouseWheelDown:
			m.state.ScrollDown(m.wheel)
		}

	case KeyMapReloadedMsg:
		m.keys = msg.KeyMap

	case common.ErrorMsg:
		logging.Warn("%s: %v", msg.Context, msg.Err)
		if msg.Context == "tick" {
			return m, m.tick()
		}
	}
	return m, nil
}

// drainOutput moves everything the shell produced since the last frame into
// scrollback. A chunk that is not valid UTF-8 is dropped whole.
func (m *Model) drainOutput() {
	data := m.session.GetOutput()
	if len(data) == 0 {
		return
	}
	if !utf8.Valid(data) {
		logging.Warn("dropping %d bytes of shell output that are not valid UTF-8", len(data))
		perf.Count("output_dropped_bytes", int64(len(data)))
		return
	}
	defer perf.Time("add_output")()
	perf.Count("output_bytes", int64(len(data)))
	m.state.AddOutput(string(data))
}

func (m *Model) handleKey(msg tea.KeyPressMsg) {
	switch {
	case key.Matches(msg, m.keys.Copy):
		m.copySelection()
	case key.Matches(msg, m.keys.Paste):
		text, err := m.clip.Paste()
		if err != nil {
			logging.Warn("paste failed: %v", err)
			return
		}
		m.insertText(text)
	case key.Matches(msg, m.keys.Clear):
		m.state.Clear()
	case key.Matches(msg, m.keys.Interrupt):
		m.send([]byte{0x03})
	case key.Matches(msg, m.keys.EOF):
		m.send([]byte{0x04})

	case key.Matches(msg, m.keys.ScrollUp):
		m.state.ScrollUp(1)
	case key.Matches(msg, m.keys.ScrollDown):
		m.state.ScrollDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.state.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.state.PageDown()
	case key.Matches(msg, m.keys.ScrollTop):
		m.state.ScrollToTop()
	case key.Matches(msg, m.keys.ScrollBottom):
		m.state.ScrollToBottom()

	case key.Matches(msg, m.keys.Commit):
		m.commit()
	case key.Matches(msg, m.keys.Backspace):
		m.state.HandleBackspace()
		if m.mode == config.InputModeChar {
			m.send([]byte{0x7f})
		}
	// In char mode the child already holds every typed byte, so a recalled
	// line would diverge from what it runs. Recall is line mode only.
	case key.Matches(msg, m.keys.HistoryUp):
		if m.mode == config.InputModeLine {
			m.state.HandleKeyUp()
		}
	case key.Matches(msg, m.keys.HistoryDown):
		if m.mode == config.InputModeLine {
			m.state.HandleKeyDown()
		}

	default:
		k := msg.Key()
		if k.Text != "" && k.Mod&(tea.ModCtrl|tea.ModAlt|tea.ModMeta|tea.ModSuper|tea.ModHyper) == 0 {
			m.insertText(k.Text)
			return
		}
		if m.mode == config.InputModeChar {
			if b := common.KeyToBytes(msg); len(b) > 0 {
				m.send(b)
			}
		}
	}
}

// insertText types text into the input line. Embedded newlines commit the
// line typed so far.
func (m *Model) insertText(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	for i, part := range parts {
		if part != "" {
			m.state.AddInput(part)
			if m.mode == config.InputModeChar {
				m.send([]byte(part))
			}
		}
		if i < len(parts)-1 {
			m.commit()
		}
	}
}

func (m *Model) commit() {
	line := m.state.CommitInput()
	if m.mode == config.InputModeChar {
		m.send([]byte{'\n'})
		return
	}
	m.send([]byte(line + "\n"))
}

func (m *Model) send(p []byte) {
	err := m.session.WriteInput(p)
	switch {
	case err == nil:
	case errors.Is(err, shell.ErrSessionClosed):
		logging.Debug("dropping %d input bytes: %v", len(p), err)
	default:
		logging.Warn("write to shell failed: %v", err)
	}
}

func (m *Model) copySelection() {
	text := m.state.SelectedText()
	if text == "" {
		return
	}
	if err := m.clip.Copy(text); err != nil {
		logging.Warn("copy to clipboard failed: %v", err)
	}
}
