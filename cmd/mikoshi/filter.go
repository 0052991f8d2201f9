package main

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

const mouseThrottle = 15 * time.Millisecond

// mouseFilter drops redundant mouse traffic before it reaches the model.
// Motion at a new cell always passes so drag selection stays accurate.
type mouseFilter struct {
	lastMotion time.Time
	lastWheel  time.Time
	lastX      int
	lastY      int
	now        func() time.Time
}

func (f *mouseFilter) clock() time.Time {
	if f.now != nil {
		return f.now()
	}
	return time.Now()
}

func (f *mouseFilter) filter(_ tea.Model, msg tea.Msg) tea.Msg {
	switch msg := msg.(type) {
	case tea.MouseMotionMsg:
		now := f.clock()
		if msg.X != f.lastX || msg.Y != f.lastY {
			f.lastX, f.lastY = msg.X, msg.Y
			f.lastMotion = now
			return msg
		}
		if now.Sub(f.lastMotion) < mouseThrottle {
			return nil
		}
		f.lastMotion = now
	case tea.MouseWheelMsg:
		now := f.clock()
		if now.Sub(f.lastWheel) < mouseThrottle {
			return nil
		}
		f.lastWheel = now
	}
	return msg
}
