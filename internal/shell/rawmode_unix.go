//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package shell

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"golang.org/x/sys/unix"

	"github.com/nickheyer/Mikoshi/internal/logging"
)

// enterRawMode disables echo, canonical input, signal generation and input
// translation on f. Output processing is left alone so "\n" still returns the
// carriage. The returned func restores the saved settings.
func enterRawMode(f *os.File) (func() error, error) {
	noop := func() error { return nil }
	if f == nil {
		return noop, nil
	}
	fd := f.Fd()
	if !term.IsTerminal(fd) {
		logging.Debug("host %s is not a terminal, leaving it untouched", f.Name())
		return noop, nil
	}

	saved, err := term.GetState(fd)
	if err != nil {
		return nil, fmt.Errorf("read terminal state: %w", err)
	}

	tio, err := unix.IoctlGetTermios(int(fd), ioctlReadTermios)
	if err != nil {
		return nil, fmt.Errorf("read termios: %w", err)
	}
	tio.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	tio.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	tio.Cc[unix.VMIN] = 1
	tio.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(int(fd), ioctlWriteTermios, tio); err != nil {
		return nil, fmt.Errorf("write termios: %w", err)
	}

	return func() error {
		return term.Restore(fd, saved)
	}, nil
}
