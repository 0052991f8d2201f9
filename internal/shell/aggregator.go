package shell

import (
	"sync"
	"sync/atomic"
)

// outputBuffer accumulates child output until the foreground drains it.
type outputBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (b *outputBuffer) append(p []byte) {
	b.mu.Lock()
	b.buf = append(b.buf, p...)
	b.mu.Unlock()
}

// drain hands the accumulated bytes to the caller and leaves the buffer empty.
func (b *outputBuffer) drain() []byte {
	b.mu.Lock()
	out := b.buf
	b.buf = nil
	b.mu.Unlock()
	return out
}

// aggregate appends chunks to buf in arrival order until in is closed, stop
// fires, or the exit flag is set.
func aggregate(in <-chan []byte, buf *outputBuffer, stop <-chan struct{}, exit *atomic.Bool) {
	for !exit.Load() {
		select {
		case <-stop:
			return
		case chunk, ok := <-in:
			if !ok {
				return
			}
			buf.append(chunk)
		}
	}
}
