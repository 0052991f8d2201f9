package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathsEnsureDirectories(t *testing.T) {
	tmp := t.TempDir()
	paths := PathsUnder(filepath.Join(tmp, "mikoshi"))

	if err := paths.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories() error = %v", err)
	}

	for _, dir := range []string{paths.Home, paths.LogsRoot} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %s to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %s to be a directory", dir)
		}
	}
	if _, err := os.Stat(paths.ConfigPath); !os.IsNotExist(err) {
		t.Fatalf("config file should not be created, stat err = %v", err)
	}
}

func TestPathsUnder(t *testing.T) {
	p := PathsUnder("/x/.mikoshi")
	if p.ConfigPath != filepath.Join("/x/.mikoshi", "config.json") {
		t.Fatalf("unexpected config path %q", p.ConfigPath)
	}
	if p.LogsRoot != filepath.Join("/x/.mikoshi", "logs") {
		t.Fatalf("unexpected logs root %q", p.LogsRoot)
	}
}
