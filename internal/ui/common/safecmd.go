package common

import (
	"fmt"
	"runtime/debug"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/nickheyer/Mikoshi/internal/logging"
)

// ErrorMsg reports a failure recovered inside a command.
type ErrorMsg struct {
	Err     error
	Context string
}

// SafeCmd wraps a command with panic recovery.
func SafeCmd(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				logging.Error("panic in command: %v\n%s", r, debug.Stack())
				msg = ErrorMsg{Err: fmt.Errorf("command panic: %v", r), Context: "command"}
			}
		}()
		return cmd()
	}
}

// SafeTick wraps tea.Tick with panic recovery in the callback.
func SafeTick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	if fn == nil {
		return nil
	}
	return tea.Tick(d, func(t time.Time) (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				logging.Error("panic in tick: %v\n%s", r, debug.Stack())
				msg = ErrorMsg{Err: fmt.Errorf("tick panic: %v", r), Context: "tick"}
			}
		}()
		return fn(t)
	})
}
