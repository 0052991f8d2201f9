package shell

import (
	"bufio"
	"errors"
	"io"
	"os"
	"sync/atomic"

	"github.com/nickheyer/Mikoshi/internal/logging"
)

// readLines forwards r to out one line at a time, terminator included. A
// partial line left at EOF is forwarded before returning. Read errors end the
// loop quietly; they do not raise the exit flag.
func readLines(r io.Reader, out chan<- []byte, stop <-chan struct{}, exit *atomic.Bool) {
	defer close(out)

	br := bufio.NewReader(r)
	for !exit.Load() {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			select {
			case out <- line:
			case <-stop:
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
				logging.Debug("shell output reader stopped: %v", err)
			}
			return
		}
	}
}
