package display

// ring is a fixed-capacity FIFO. Pushing onto a full ring evicts the oldest
// element. Index 0 is always the oldest element still held.
type ring[T any] struct {
	buf  []T
	head int
	size int
}

func newRing[T any](capacity int) *ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &ring[T]{buf: make([]T, capacity)}
}

func (r *ring[T]) Len() int { return r.size }

func (r *ring[T]) Cap() int { return len(r.buf) }

// Push appends v and reports whether an old element was evicted to make room.
func (r *ring[T]) Push(v T) bool {
	if r.size < len(r.buf) {
		r.buf[(r.head+r.size)%len(r.buf)] = v
		r.size++
		return false
	}
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
	return true
}

// At returns the i-th oldest element. It panics when i is out of range.
func (r *ring[T]) At(i int) T {
	if i < 0 || i >= r.size {
		panic("display: ring index out of range")
	}
	return r.buf[(r.head+i)%len(r.buf)]
}

// Slice copies elements [start, end) into a new slice.
func (r *ring[T]) Slice(start, end int) []T {
	if start < 0 {
		start = 0
	}
	if end > r.size {
		end = r.size
	}
	if start >= end {
		return nil
	}
	out := make([]T, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, r.At(i))
	}
	return out
}

func (r *ring[T]) Clear() {
	var zero T
	for i := range r.buf {
		r.buf[i] = zero
	}
	r.head = 0
	r.size = 0
}
