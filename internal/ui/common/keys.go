package common

import (
	tea "charm.land/bubbletea/v2"

	"github.com/nickheyer/Mikoshi/internal/logging"
)

// KeyToBytes converts a key press into the bytes a line-oriented shell reads
// from a pipe. Keys that only make sense to a full terminal (arrows, function
// keys) yield nil.
func KeyToBytes(msg tea.KeyPressMsg) []byte {
	key := msg.Key()
	logging.Debug("KeyToBytes: code=%d mod=%d str=%q", key.Code, key.Mod, msg.String())

	if key.Mod&tea.ModCtrl != 0 && key.Code >= 'a' && key.Code <= 'z' {
		switch key.Code {
		case 'i':
			return []byte{'\t'}
		case 'j', 'm':
			return []byte{'\n'}
		}
		return []byte{byte(key.Code-'a') + 1}
	}

	switch key.Code {
	case tea.KeyEnter:
		return []byte{'\n'}
	case tea.KeyBackspace:
		return []byte{0x7f}
	case tea.KeyTab:
		return []byte{'\t'}
	case tea.KeySpace:
		return []byte{' '}
	case tea.KeyUp, tea.KeyDown, tea.KeyLeft, tea.KeyRight,
		tea.KeyHome, tea.KeyEnd, tea.KeyDelete, tea.KeyPgUp, tea.KeyPgDown,
		tea.KeyEscape:
		return nil
	}

	if key.Mod&(tea.ModAlt|tea.ModCtrl|tea.ModMeta|tea.ModSuper|tea.ModHyper) != 0 {
		return nil
	}
	if key.Text != "" {
		return []byte(key.Text)
	}
	if s := msg.String(); len(s) == 1 {
		return []byte(s)
	}
	return nil
}
