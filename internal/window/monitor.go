package window

import (
	"fmt"

	"github.com/1broseidon/winkit/internal/platform"
)

// VideoMode is an immutable display mode.
type VideoMode struct {
	Width       int `json:"width" yaml:"width"`
	Height      int `json:"height" yaml:"height"`
	RedBits     int `json:"red_bits" yaml:"red_bits"`
	GreenBits   int `json:"green_bits" yaml:"green_bits"`
	BlueBits    int `json:"blue_bits" yaml:"blue_bits"`
	RefreshRate int `json:"refresh_rate" yaml:"refresh_rate"`
}

func videoModeFrom(m platform.DisplayMode) VideoMode {
	return VideoMode{
		Width:       m.Width,
		Height:      m.Height,
		RedBits:     m.RedBits,
		GreenBits:   m.GreenBits,
		BlueBits:    m.BlueBits,
		RefreshRate: m.RefreshRate,
	}
}

// TrueColor reports whether every color channel has at least 8 bits.
func (m VideoMode) TrueColor() bool {
	return m.RedBits >= 8 && m.GreenBits >= 8 && m.BlueBits >= 8
}

func (m VideoMode) String() string {
	return fmt.Sprintf("%dx%d@%dHz (%d,%d,%d)", m.Width, m.Height, m.RefreshRate, m.RedBits, m.GreenBits, m.BlueBits)
}

// Monitor is a display known to a Manager.
type Monitor struct {
	backend platform.Backend
	handle  platform.MonitorHandle
	x, y    int
	current VideoMode
	modes   []VideoMode
}

func newMonitor(backend platform.Backend, handle platform.MonitorHandle) *Monitor {
	m := &Monitor{backend: backend, handle: handle}
	m.Refresh()
	return m
}

// Refresh re-queries the position and video modes of the monitor. Modes
// with fewer than 8 bits in any channel are dropped and the remainder are
// stored in the reverse of the backend's order, lowest resolution first.
func (m *Monitor) Refresh() {
	raw := m.backend.MonitorModes(m.handle)
	modes := make([]VideoMode, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		mode := videoModeFrom(raw[i])
		if mode.TrueColor() {
			modes = append(modes, mode)
		}
	}

	x, y := m.backend.MonitorPosition(m.handle)
	current, _ := m.backend.MonitorCurrentMode(m.handle)

	m.modes = modes
	m.x, m.y = x, y
	m.current = videoModeFrom(current)
}

// Handle returns the backend identifier of the monitor.
func (m *Monitor) Handle() platform.MonitorHandle { return m.handle }

// X returns the absolute x position of the monitor.
func (m *Monitor) X() int { return m.x }

// Y returns the absolute y position of the monitor.
func (m *Monitor) Y() int { return m.y }

// CurrentMode returns the mode the monitor is currently running.
func (m *Monitor) CurrentMode() VideoMode { return m.current }

// VideoModes returns a copy of the supported true-color modes.
func (m *Monitor) VideoModes() []VideoMode {
	return append([]VideoMode(nil), m.modes...)
}

func (m *Monitor) String() string {
	return fmt.Sprintf("Monitor[%d %d,%d %s]", m.handle, m.x, m.y, m.current)
}
