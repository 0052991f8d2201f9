package shell

import (
	"bytes"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type interruptRecorder struct {
	pids []int
	err  error
}

func (r *interruptRecorder) interrupt(pid int) error {
	r.pids = append(r.pids, pid)
	return r.err
}

func TestDispatch_InterruptIsNotForwarded(t *testing.T) {
	var buf bytes.Buffer
	var exit atomic.Bool
	rec := &interruptRecorder{}
	d := &dispatcher{w: &buf, pid: 42, interrupt: rec.interrupt, exit: &exit}

	if !d.dispatch([]byte("ab\x03cd")) {
		t.Fatalf("dispatch stopped on interrupt")
	}
	if buf.String() != "abcd" {
		t.Fatalf("unexpected stdin bytes %q", buf.String())
	}
	if len(rec.pids) != 1 || rec.pids[0] != 42 {
		t.Fatalf("expected one interrupt for pid 42, got %v", rec.pids)
	}
	if exit.Load() {
		t.Fatalf("interrupt must not set the exit flag")
	}
}

func TestDispatch_InterruptFailureKeepsRunning(t *testing.T) {
	var buf bytes.Buffer
	var exit atomic.Bool
	rec := &interruptRecorder{err: errors.New("no such process")}
	d := &dispatcher{w: &buf, pid: 7, interrupt: rec.interrupt, exit: &exit}

	if !d.dispatch([]byte("\x03x")) {
		t.Fatalf("dispatch stopped after failed interrupt")
	}
	if buf.String() != "x" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestDispatch_EndOfTransmissionStops(t *testing.T) {
	var buf bytes.Buffer
	var exit atomic.Bool
	rec := &interruptRecorder{}
	d := &dispatcher{w: &buf, pid: 1, interrupt: rec.interrupt, exit: &exit}

	if d.dispatch([]byte("x\x04y")) {
		t.Fatalf("dispatch should stop at end-of-transmission")
	}
	if buf.String() != "x" {
		t.Fatalf("bytes after EOT must not be written, got %q", buf.String())
	}
	if !exit.Load() {
		t.Fatalf("exit flag not set")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestDispatch_WriteFailureStops(t *testing.T) {
	var exit atomic.Bool
	d := &dispatcher{w: failingWriter{}, interrupt: func(int) error { return nil }, exit: &exit}
	if d.dispatch([]byte("data")) {
		t.Fatalf("dispatch should stop after a failed write")
	}
	if exit.Load() {
		t.Fatalf("write failure must not set the exit flag")
	}
}

func TestDispatcherRun_StopsOnStopSignal(t *testing.T) {
	var buf bytes.Buffer
	var exit atomic.Bool
	d := &dispatcher{w: &buf, interrupt: func(int) error { return nil }, exit: &exit}

	in := make(chan []byte)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		d.run(in, stop)
		close(done)
	}()
	in <- []byte("one")
	close(stop)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("run did not return after stop")
	}
	if buf.String() != "one" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestFilterInput(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want string
	}{
		{"printable", []byte("ls -la"), "ls -la"},
		{"whitespace", []byte("a\tb\nc\r"), "a\tb\nc\r"},
		{"multibyte", []byte("héllo →"), "héllo →"},
		{"control bytes kept", []byte{0x03, 0x04, 0x08, 0x7f}, "\x03\x04\x08\x7f"},
		{"escape dropped", []byte("\x1b[Ax"), "[Ax"},
		{"other controls dropped", []byte{0x01, 'a', 0x07}, "a"},
		{"malformed utf8 dropped", []byte{'a', 0xc3, 'b', 0xff}, "ab"},
		{"empty", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := string(filterInput(tc.in)); got != tc.want {
				t.Fatalf("filterInput(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestReadLines_SplitsAndForwardsTail(t *testing.T) {
	out := make(chan []byte, 8)
	var exit atomic.Bool
	readLines(strings.NewReader("a\nbb\npartial"), out, make(chan struct{}), &exit)

	var got []string
	for chunk := range out {
		got = append(got, string(chunk))
	}
	want := []string{"a\n", "bb\n", "partial"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReadLines_StopsWhenExitFlagSet(t *testing.T) {
	out := make(chan []byte, 8)
	var exit atomic.Bool
	exit.Store(true)
	readLines(strings.NewReader("never\n"), out, make(chan struct{}), &exit)

	if _, ok := <-out; ok {
		t.Fatalf("expected no chunks once exit is set")
	}
}

func TestAggregate_KeepsArrivalOrder(t *testing.T) {
	in := make(chan []byte)
	var buf outputBuffer
	var exit atomic.Bool
	done := make(chan struct{})
	go func() {
		aggregate(in, &buf, make(chan struct{}), &exit)
		close(done)
	}()

	for _, c := range []string{"one\n", "two\n", "three"} {
		in <- []byte(c)
	}
	close(in)
	<-done

	if got := string(buf.drain()); got != "one\ntwo\nthree" {
		t.Fatalf("got %q", got)
	}
	if got := buf.drain(); len(got) != 0 {
		t.Fatalf("second drain should be empty, got %q", got)
	}
}
