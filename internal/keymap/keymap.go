package keymap

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/nickheyer/Mikoshi/internal/config"
)

// Action identifies a configurable keybinding.
type Action string

const (
	ActionCommit      Action = "commit"
	ActionBackspace   Action = "backspace"
	ActionHistoryUp   Action = "history_up"
	ActionHistoryDown Action = "history_down"

	ActionScrollUp     Action = "scroll_up"
	ActionScrollDown   Action = "scroll_down"
	ActionPageUp       Action = "page_up"
	ActionPageDown     Action = "page_down"
	ActionScrollTop    Action = "scroll_top"
	ActionScrollBottom Action = "scroll_bottom"

	ActionCopy  Action = "copy"
	ActionPaste Action = "paste"
	ActionClear Action = "clear"

	ActionInterrupt Action = "interrupt"
	ActionEOF       Action = "eof"
)

type bindingDef struct {
	action Action
	keys   []string
	desc   string
}

// KeyMap defines all keybindings for the console.
type KeyMap struct {
	Commit      key.Binding
	Backspace   key.Binding
	HistoryUp   key.Binding
	HistoryDown key.Binding

	ScrollUp     key.Binding
	ScrollDown   key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	ScrollTop    key.Binding
	ScrollBottom key.Binding

	Copy  key.Binding
	Paste key.Binding
	Clear key.Binding

	Interrupt key.Binding
	EOF       key.Binding
}

var defaultBindings = []bindingDef{
	{ActionCommit, []string{"enter"}, "run line"},
	{ActionBackspace, []string{"backspace"}, "delete char"},
	{ActionHistoryUp, []string{"up"}, "older command"},
	{ActionHistoryDown, []string{"down"}, "newer command"},
	{ActionScrollUp, []string{"ctrl+up"}, "scroll up"},
	{ActionScrollDown, []string{"ctrl+down"}, "scroll down"},
	{ActionPageUp, []string{"pgup"}, "page up"},
	{ActionPageDown, []string{"pgdown"}, "page down"},
	{ActionScrollTop, []string{"shift+home"}, "oldest output"},
	{ActionScrollBottom, []string{"shift+end"}, "newest output"},
	{ActionCopy, []string{"ctrl+shift+c"}, "copy selection"},
	{ActionPaste, []string{"ctrl+v"}, "paste"},
	{ActionClear, []string{"ctrl+l"}, "clear screen"},
	{ActionInterrupt, []string{"ctrl+c"}, "interrupt"},
	{ActionEOF, []string{"ctrl+d"}, "end of input"},
}

// New builds a keymap from defaults, applying any user overrides.
func New(cfg config.KeyMapConfig) KeyMap {
	b := make(map[Action]key.Binding, len(defaultBindings))
	for _, def := range defaultBindings {
		b[def.action] = bindingFromDef(cfg, def)
	}
	return KeyMap{
		Commit:      b[ActionCommit],
		Backspace:   b[ActionBackspace],
		HistoryUp:   b[ActionHistoryUp],
		HistoryDown: b[ActionHistoryDown],

		ScrollUp:     b[ActionScrollUp],
		ScrollDown:   b[ActionScrollDown],
		PageUp:       b[ActionPageUp],
		PageDown:     b[ActionPageDown],
		ScrollTop:    b[ActionScrollTop],
		ScrollBottom: b[ActionScrollBottom],

		Copy:  b[ActionCopy],
		Paste: b[ActionPaste],
		Clear: b[ActionClear],

		Interrupt: b[ActionInterrupt],
		EOF:       b[ActionEOF],
	}
}

// Actions lists every configurable action in display order.
func Actions() []Action {
	out := make([]Action, len(defaultBindings))
	for i, def := range defaultBindings {
		out[i] = def.action
	}
	return out
}

func bindingFromDef(cfg config.KeyMapConfig, def bindingDef) key.Binding {
	keys, ok := cfg.BindingFor(string(def.action))
	if !ok {
		keys = def.keys
	}
	helpKey := strings.Join(keys, "/")
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKey, def.desc),
	)
}

// PrimaryKey returns the first key in the binding, if present.
func PrimaryKey(binding key.Binding) string {
	keys := binding.Keys()
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

// ShortHelp returns the bindings shown in the one-line hint.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Copy, km.Paste, km.Clear, km.Interrupt, km.EOF}
}
