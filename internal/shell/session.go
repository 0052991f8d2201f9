// Package shell runs the child shell behind a terminal window and moves bytes
// between it and the foreground loop.
//
// Three goroutines serve each Session: a writer that feeds the child's stdin,
// a reader that splits the child's output into lines, and an aggregator that
// collects those lines into a buffer drained by GetOutput. The foreground
// never blocks on the child: WriteInput only enqueues and GetOutput only
// swaps a buffer.
//
// No pseudo-terminal is allocated. The child sees plain pipes, so programs
// that insist on a controlling terminal (job control, password prompts,
// full-screen editors) behave as they would under a pipeline.
package shell

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nickheyer/Mikoshi/internal/logging"
	"github.com/nickheyer/Mikoshi/internal/process"
	"github.com/nickheyer/Mikoshi/internal/safego"
)

const (
	// DefaultShell is launched when Options.Shell is empty.
	DefaultShell = "bash"
	// DefaultTerm is exported to the child as TERM.
	DefaultTerm = "xterm-256color"

	defaultInputQueue = 256
	workerJoinTimeout = 2 * time.Second
)

// Options configures Spawn.
type Options struct {
	Shell string
	Args  []string
	Dir   string
	// Env is appended to the inherited environment.
	Env  []string
	Term string
	// Host is the terminal the user types into. When it is a terminal it is
	// switched to raw mode for the life of the session. Nil leaves the host
	// untouched.
	Host *os.File
	// InputQueueSize bounds the number of pending WriteInput chunks.
	InputQueueSize int
}

func (o Options) withDefaults() Options {
	if o.Shell == "" {
		o.Shell = DefaultShell
	}
	if o.Term == "" {
		o.Term = DefaultTerm
	}
	if o.InputQueueSize <= 0 {
		o.InputQueueSize = defaultInputQueue
	}
	return o
}

// Session is one running child shell.
type Session struct {
	cmd    *exec.Cmd
	stdin  *os.File
	stdout *os.File

	inputCh chan []byte
	output  outputBuffer
	exit    atomic.Bool
	stop    chan struct{}

	writerDone     <-chan struct{}
	readerDone     <-chan struct{}
	aggregatorDone <-chan struct{}

	restoreHost func() error

	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
	done      chan struct{}
}

// Spawn starts the shell and its three worker goroutines.
func Spawn(opts Options) (*Session, error) {
	opts = opts.withDefaults()

	cmd := exec.Command(opts.Shell, opts.Args...)
	cmd.Dir = opts.Dir
	cmd.Env = append(os.Environ(), opts.Env...)
	cmd.Env = append(cmd.Env, "TERM="+opts.Term)
	process.SetProcessGroup(cmd)

	stdinR, stdinW, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("create stdin pipe: %w", err)
	}
	outR, outW, err := os.Pipe()
	if err != nil {
		stdinR.Close()
		stdinW.Close()
		return nil, fmt.Errorf("create output pipe: %w", err)
	}
	cmd.Stdin = stdinR
	cmd.Stdout = outW
	cmd.Stderr = outW

	closePipes := func() {
		stdinR.Close()
		stdinW.Close()
		outR.Close()
		outW.Close()
	}

	restore, err := enterRawMode(opts.Host)
	if err != nil {
		closePipes()
		return nil, fmt.Errorf("configure host terminal: %w", err)
	}

	if err := cmd.Start(); err != nil {
		closePipes()
		if rerr := restore(); rerr != nil {
			logging.Warn("restore host terminal: %v", rerr)
		}
		return nil, fmt.Errorf("spawn %s: %w", opts.Shell, err)
	}
	// The child holds its own copies of these ends.
	stdinR.Close()
	outW.Close()

	s := &Session{
		cmd:         cmd,
		stdin:       stdinW,
		stdout:      outR,
		inputCh:     make(chan []byte, opts.InputQueueSize),
		stop:        make(chan struct{}),
		restoreHost: restore,
		done:        make(chan struct{}),
	}

	outputCh := make(chan []byte)
	w := &dispatcher{
		w:         stdinW,
		pid:       cmd.Process.Pid,
		interrupt: process.Interrupt,
		exit:      &s.exit,
	}
	s.writerDone = safego.Spawn("shell-writer", func() { w.run(s.inputCh, s.stop) })
	s.readerDone = safego.Spawn("shell-reader", func() { readLines(outR, outputCh, s.stop, &s.exit) })
	s.aggregatorDone = safego.Spawn("shell-aggregator", func() { aggregate(outputCh, &s.output, s.stop, &s.exit) })

	logging.Info("spawned %s (pid %d) with TERM=%s", opts.Shell, cmd.Process.Pid, opts.Term)
	return s, nil
}

// Pid returns the child's process id.
func (s *Session) Pid() int {
	if s.cmd == nil || s.cmd.Process == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

// WriteInput filters p and queues it for the child without blocking.
func (s *Session) WriteInput(p []byte) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrSessionClosed
	}
	select {
	case <-s.writerDone:
		return ErrSessionClosed
	default:
	}

	data := filterInput(p)
	if len(data) == 0 {
		return nil
	}
	select {
	case s.inputCh <- data:
		return nil
	default:
		return ErrInputBacklog
	}
}

// GetOutput returns everything the child wrote since the previous call.
func (s *Session) GetOutput() []byte {
	return s.output.drain()
}

// ShouldExit reports whether end-of-transmission has been sent. A child that
// exits on its own does not set this.
func (s *Session) ShouldExit() bool {
	return s.exit.Load()
}

// Done is closed once Close has finished tearing the session down.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close restores the host terminal, kills the child's process group and waits
// for it. It is safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		close(s.stop)

		if err := s.restoreHost(); err != nil {
			logging.Warn("restore host terminal: %v", err)
		}

		pid := s.Pid()
		if err := process.KillProcessGroup(pid, process.KillOptions{Force: true}); err != nil {
			logging.Warn("kill shell process group %d: %v", pid, err)
			_ = s.cmd.Process.Kill()
		}
		// A grandchild outside the group could keep the write end open;
		// closing our ends unblocks the reader and writer regardless.
		_ = s.stdin.Close()
		_ = s.stdout.Close()

		if err := s.cmd.Wait(); err != nil {
			logging.Debug("shell pid %d exited: %v", pid, err)
		}
		s.joinWorkers(workerJoinTimeout)
		close(s.done)
	})
	return nil
}

func (s *Session) joinWorkers(timeout time.Duration) {
	deadline := time.After(timeout)
	for name, ch := range map[string]<-chan struct{}{
		"writer":     s.writerDone,
		"reader":     s.readerDone,
		"aggregator": s.aggregatorDone,
	} {
		select {
		case <-ch:
		case <-deadline:
			logging.Warn("shell %s goroutine did not stop within %v", name, timeout)
			return
		}
	}
}
