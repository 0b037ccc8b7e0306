// Package frontend hosts the emulator core: a windowed video backend that
// shows the LCD and feeds key presses to the button devices, a headless
// backend for tests and scripted runs, and the TCP transport for the
// infrared link.
package frontend

import (
	core "example.com/h8-tiny/core_engine"
)

// Display drives the emulator loop and presents the LCD.
type Display interface {
	// Run blocks until the front-end is closed, the machine faults, or the
	// configured frame budget runs out.
	Run() error
}

// Config carries the shared front-end settings.
type Config struct {
	System *core.System

	// Window title; defaults to the preset title.
	Title string

	// Integer pixel scale for the windowed backend.
	Scale int

	// Frame limit for the headless backend; 0 means run until fault.
	MaxFrames int
}

// New picks a backend.
func New(cfg Config, headless bool) Display {
	if cfg.Title == "" && cfg.System.Preset() != nil {
		cfg.Title = cfg.System.Preset().Title
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 4
	}
	if headless {
		return &headlessDisplay{cfg: cfg}
	}
	return &ebitenDisplay{cfg: cfg}
}
