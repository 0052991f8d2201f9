package shell

import (
	"io"
	"sync/atomic"
	"unicode"
	"unicode/utf8"

	"github.com/nickheyer/Mikoshi/internal/logging"
)

const (
	ctrlC     = 0x03
	ctrlD     = 0x04
	backspace = 0x08
	del       = 0x7f
)

// dispatcher owns the child's stdin. Interrupt and end-of-transmission bytes
// are acted on here and never reach the child.
type dispatcher struct {
	w         io.Writer
	pid       int
	interrupt func(pid int) error
	exit      *atomic.Bool
}

func (d *dispatcher) run(in <-chan []byte, stop <-chan struct{}) {
	for !d.exit.Load() {
		select {
		case <-stop:
			return
		case chunk, ok := <-in:
			if !ok {
				return
			}
			if !d.dispatch(chunk) {
				return
			}
		}
	}
}

// dispatch handles one queued chunk and reports whether the writer should
// keep running.
func (d *dispatcher) dispatch(chunk []byte) bool {
	start := 0
	for i, b := range chunk {
		switch b {
		case ctrlC:
			if !d.write(chunk[start:i]) {
				return false
			}
			start = i + 1
			if err := d.interrupt(d.pid); err != nil {
				logging.Warn("interrupt pid %d: %v", d.pid, err)
			}
		case ctrlD:
			if !d.write(chunk[start:i]) {
				return false
			}
			d.exit.Store(true)
			logging.Info("end of transmission received, stopping input")
			return false
		}
	}
	return d.write(chunk[start:])
}

func (d *dispatcher) write(p []byte) bool {
	if len(p) == 0 {
		return true
	}
	if _, err := d.w.Write(p); err != nil {
		logging.Warn("write to shell stdin failed: %v", err)
		return false
	}
	return true
}

// filterInput keeps printable text, whitespace, backspace/delete and the
// interrupt and end-of-transmission bytes. Everything else, including
// malformed UTF-8, is dropped.
func filterInput(p []byte) []byte {
	out := make([]byte, 0, len(p))
	for len(p) > 0 {
		r, size := utf8.DecodeRune(p)
		switch {
		case r == utf8.RuneError && size <= 1:
		case r == ctrlC, r == ctrlD, r == backspace, r == del:
			out = append(out, p[:size]...)
		case unicode.IsSpace(r), unicode.IsPrint(r):
			out = append(out, p[:size]...)
		}
		p = p[size:]
	}
	return out
}
