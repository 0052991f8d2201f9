package display

import "image/color"

// Colors is the palette a renderer uses for each kind of row.
type Colors struct {
	Text       color.Color
	Background color.Color
	Selection  color.Color
	Cursor     color.Color
	Input      color.Color
}

// Settings are fixed for the lifetime of a State.
type Settings struct {
	FontSize int
	Colors   Colors
	Prompt   string
}

// DefaultColors returns the stock green-on-navy palette.
func DefaultColors() Colors {
	return Colors{
		Text:       color.RGBA{R: 0, G: 255, B: 170, A: 255},
		Background: color.RGBA{R: 10, G: 10, B: 30, A: 255},
		Selection:  color.RGBA{R: 70, G: 70, B: 150, A: 255},
		Cursor:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Input:      color.RGBA{R: 200, G: 200, B: 255, A: 255},
	}
}

// DefaultSettings returns the settings used when no configuration is given.
func DefaultSettings() Settings {
	return Settings{
		FontSize: 16,
		Colors:   DefaultColors(),
		Prompt:   "$ ",
	}
}

// withDefaults fills unset colors so renderers never see a nil color.
func (s Settings) withDefaults() Settings {
	d := DefaultColors()
	if s.Colors.Text == nil {
		s.Colors.Text = d.Text
	}
	if s.Colors.Background == nil {
		s.Colors.Background = d.Background
	}
	if s.Colors.Selection == nil {
		s.Colors.Selection = d.Selection
	}
	if s.Colors.Cursor == nil {
		s.Colors.Cursor = d.Cursor
	}
	if s.Colors.Input == nil {
		s.Colors.Input = d.Input
	}
	if s.FontSize <= 0 {
		s.FontSize = 16
	}
	return s
}
