//go:build !windows

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"

	tea "charm.land/bubbletea/v2"

	"github.com/nickheyer/Mikoshi/internal/config"
	"github.com/nickheyer/Mikoshi/internal/keymap"
	"github.com/nickheyer/Mikoshi/internal/logging"
	"github.com/nickheyer/Mikoshi/internal/perf"
	"github.com/nickheyer/Mikoshi/internal/safego"
	"github.com/nickheyer/Mikoshi/internal/shell"
	"github.com/nickheyer/Mikoshi/internal/ui/console"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("mikoshi %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}
	if err := cfg.Paths.EnsureDirectories(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create %s: %v\n", cfg.Paths.Home, err)
	}
	if err := logging.Initialize(cfg.Paths.LogsRoot, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logging: %v\n", err)
	}
	defer logging.Close()

	logging.Info("Starting mikoshi %s", version)
	startSignalDebug()

	sess, err := shell.Spawn(shell.Options{
		Shell: cfg.Shell,
		Args:  cfg.ShellArgs,
		Env:   cfg.Env,
		Host:  os.Stdin,
	})
	if err != nil {
		logging.Error("Failed to start shell: %v", err)
		fmt.Fprintf(os.Stderr, "Error starting shell: %v\n", err)
		return 1
	}
	defer sess.Close()

	filter := &mouseFilter{}
	p := tea.NewProgram(
		console.New(sess, console.OptionsFromConfig(cfg)),
		tea.WithFilter(filter.filter),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watchConfig(ctx, cfg.Paths.ConfigPath, p.Send)

	if _, err := p.Run(); err != nil {
		logging.Error("Console exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "Error running console: %v\n", err)
		return 1
	}
	perf.Flush("shutdown")
	logging.Info("mikoshi shutdown complete")
	return 0
}

// watchConfig pushes keymap changes into the running program.
func watchConfig(ctx context.Context, path string, send func(tea.Msg)) {
	safego.Go("config-watcher", func() {
		err := config.Watch(ctx, path, func(cfg *config.Config, err error) {
			if err != nil {
				return
			}
			send(console.KeyMapReloadedMsg{KeyMap: keymap.New(cfg.KeyMap)})
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Warn("config watcher stopped: %v", err)
		}
	})
}

// startSignalDebug registers a SIGUSR1 handler for goroutine dumps in dev
// builds or when MIKOSHI_DEBUG_SIGNALS is set.
func startSignalDebug() {
	if version != "dev" && strings.TrimSpace(os.Getenv("MIKOSHI_DEBUG_SIGNALS")) == "" {
		return
	}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGUSR1)
	safego.Go("signal-debug", func() {
		for range ch {
			var buf bytes.Buffer
			if err := pprof.Lookup("goroutine").WriteTo(&buf, 2); err != nil {
				logging.Warn("Failed to write goroutine dump: %v", err)
				continue
			}
			logging.Warn("GOROUTINE DUMP\n%s", buf.String())
		}
	})
}
