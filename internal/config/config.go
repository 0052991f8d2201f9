package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/nickheyer/Mikoshi/internal/display"
	"github.com/nickheyer/Mikoshi/internal/logging"
)

// KeyMapConfig holds user overrides for keybindings.
type KeyMapConfig struct {
	Bindings map[string][]string `json:"bindings,omitempty"`
}

// BindingFor returns the configured keys for an action, if present.
func (k KeyMapConfig) BindingFor(action string) ([]string, bool) {
	if len(k.Bindings) == 0 {
		return nil, false
	}
	if keys, ok := k.Bindings[action]; ok {
		return keys, true
	}
	if keys, ok := k.Bindings[strings.ToLower(action)]; ok {
		return keys, true
	}
	return nil, false
}

// InputMode selects how typed keys reach the shell.
type InputMode string

const (
	// InputModeLine edits locally and sends the whole line on commit.
	InputModeLine InputMode = "line"
	// InputModeChar forwards every keystroke as it is typed.
	InputModeChar InputMode = "char"
)

// ColorConfig holds palette overrides as hex strings ("#rrggbb" or "#rgb").
type ColorConfig struct {
	Text       string `json:"text,omitempty"`
	Background string `json:"background,omitempty"`
	Selection  string `json:"selection,omitempty"`
	Cursor     string `json:"cursor,omitempty"`
	Input      string `json:"input,omitempty"`
}

// Config holds the application configuration
type Config struct {
	Paths         *Paths
	Shell         string
	ShellArgs     []string
	Env           []string
	Prompt        string
	Colors        ColorConfig
	FontSize      int
	InputMode     InputMode
	FrameInterval time.Duration
	WheelLines    int
	LogLevel      logging.Level
	KeyMap        KeyMapConfig
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	defaults := display.DefaultSettings()

	return &Config{
		Paths:         paths,
		Shell:         "bash",
		Prompt:        defaults.Prompt,
		FontSize:      defaults.FontSize,
		InputMode:     InputModeLine,
		FrameInterval: 16 * time.Millisecond,
		WheelLines:    3,
		LogLevel:      logging.LevelInfo,
		KeyMap:        KeyMapConfig{},
	}, nil
}

// Load loads config overrides from ~/.mikoshi/config.json if present.
func Load() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return LoadFrom(paths.ConfigPath)
}

// LoadFrom applies overrides from the JSON file at path on top of the
// defaults. A missing file is not an error.
func LoadFrom(path string) (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	cfg.Paths.ConfigPath = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var user struct {
		Shell           *string      `json:"shell"`
		ShellArgs       []string     `json:"shell_args"`
		Env             []string     `json:"env"`
		Prompt          *string      `json:"prompt"`
		Colors          ColorConfig  `json:"colors"`
		FontSize        *int         `json:"font_size"`
		InputMode       *string      `json:"input_mode"`
		FrameIntervalMs *int         `json:"frame_interval_ms"`
		WheelLines      *int         `json:"wheel_lines"`
		LogLevel        *string      `json:"log_level"`
		KeyMap          KeyMapConfig `json:"keymap,omitempty"`
	}
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if user.Shell != nil && *user.Shell != "" {
		cfg.Shell = *user.Shell
	}
	if user.ShellArgs != nil {
		cfg.ShellArgs = user.ShellArgs
	}
	if user.Env != nil {
		cfg.Env = user.Env
	}
	if user.Prompt != nil {
		cfg.Prompt = *user.Prompt
	}
	if user.FontSize != nil && *user.FontSize > 0 {
		cfg.FontSize = *user.FontSize
	}
	if user.InputMode != nil {
		mode := InputMode(strings.ToLower(*user.InputMode))
		if mode != InputModeLine && mode != InputModeChar {
			return nil, fmt.Errorf("parse %s: unknown input_mode %q", path, *user.InputMode)
		}
		cfg.InputMode = mode
	}
	if user.FrameIntervalMs != nil && *user.FrameIntervalMs > 0 {
		cfg.FrameInterval = time.Duration(*user.FrameIntervalMs) * time.Millisecond
	}
	if user.WheelLines != nil && *user.WheelLines > 0 {
		cfg.WheelLines = *user.WheelLines
	}
	if user.LogLevel != nil {
		cfg.LogLevel = logging.ParseLevel(*user.LogLevel)
	}
	cfg.Colors = user.Colors
	if _, err := cfg.Colors.palette(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(user.KeyMap.Bindings) > 0 {
		cfg.KeyMap = user.KeyMap
	}

	return cfg, nil
}

// Settings converts the display portion of the config.
func (c *Config) Settings() display.Settings {
	s := display.DefaultSettings()
	if c == nil {
		return s
	}
	if palette, err := c.Colors.palette(); err == nil {
		s.Colors = palette
	}
	if c.FontSize > 0 {
		s.FontSize = c.FontSize
	}
	s.Prompt = c.Prompt
	return s
}

// palette resolves the overrides against the default colors.
func (cc ColorConfig) palette() (display.Colors, error) {
	colors := display.DefaultColors()
	for _, f := range []struct {
		name string
		hex  string
		dst  *color.Color
	}{
		{"text", cc.Text, &colors.Text},
		{"background", cc.Background, &colors.Background},
		{"selection", cc.Selection, &colors.Selection},
		{"cursor", cc.Cursor, &colors.Cursor},
		{"input", cc.Input, &colors.Input},
	} {
		if f.hex == "" {
			continue
		}
		if _, err := colorful.Hex(f.hex); err != nil {
			return colors, fmt.Errorf("color %s: invalid hex value %q: %w", f.name, f.hex, err)
		}
		*f.dst = lipgloss.Color(f.hex)
	}
	return colors, nil
}
