package window

import (
	"log/slog"
	"slices"

	"github.com/1broseidon/winkit/internal/platform"
)

// Options configures a Manager.
type Options struct {
	// Logger receives lifecycle and failure records. Defaults to slog.Default().
	Logger *slog.Logger
	// FullscreenHook runs before every fullscreen transition of windows that
	// have no hook of their own.
	FullscreenHook FullscreenHook
	// ClientAPI is passed to the backend for every window created.
	ClientAPI platform.ClientAPI
}

// Manager owns the backend lifecycle, the monitor registry and the live
// windows. It is single-threaded: every method must be called from the
// goroutine that created it, locked to its OS thread when the backend
// requires it.
type Manager struct {
	backend platform.Backend
	logger  *slog.Logger
	hook    FullscreenHook
	api     platform.ClientAPI

	monitors     map[platform.MonitorHandle]*Monitor
	monitorOrder []platform.MonitorHandle
	windows      []*Window
	freed        bool
}

// NewManager initializes backend and enumerates the attached monitors.
func NewManager(backend platform.Backend, opts Options) (*Manager, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if pending := backend.LastError(); pending != "" {
		return nil, &BackendInitError{Reason: "error pending before init: " + pending}
	}
	if err := backend.Init(); err != nil {
		backend.Terminate()
		return nil, &BackendInitError{Reason: "failed to initialize backend", Err: err}
	}

	m := &Manager{
		backend:  backend,
		logger:   logger,
		hook:     opts.FullscreenHook,
		api:      opts.ClientAPI,
		monitors: make(map[platform.MonitorHandle]*Monitor),
	}

	backend.SetMonitorCallback(m.handleMonitorEvent)
	for _, handle := range backend.Monitors() {
		m.addMonitor(handle)
	}

	return m, nil
}

func (m *Manager) handleMonitorEvent(handle platform.MonitorHandle, event platform.MonitorEvent) {
	switch event {
	case platform.MonitorConnected:
		mon := m.addMonitor(handle)
		m.logger.Debug("monitor connected", "monitor", mon)
	case platform.MonitorDisconnected:
		mon, ok := m.monitors[handle]
		if !ok {
			return
		}
		delete(m.monitors, handle)
		m.monitorOrder = slices.DeleteFunc(m.monitorOrder, func(h platform.MonitorHandle) bool { return h == handle })
		m.logger.Debug("monitor disconnected", "monitor", mon)
	}
}

func (m *Manager) addMonitor(handle platform.MonitorHandle) *Monitor {
	mon := newMonitor(m.backend, handle)
	if _, exists := m.monitors[handle]; !exists {
		m.monitorOrder = append(m.monitorOrder, handle)
	}
	m.monitors[handle] = mon
	return mon
}

// Backend returns the backend the manager drives.
func (m *Manager) Backend() platform.Backend { return m.backend }

// LastError returns the backend's most recent error description.
func (m *Manager) LastError() string { return m.backend.LastError() }

// Update polls events, swaps every live window, then polls again so events
// posted while swapping are handled in the same frame.
func (m *Manager) Update() {
	if m.freed {
		return
	}
	m.backend.PollEvents()
	for _, w := range slices.Clone(m.windows) {
		if w.handle != 0 {
			w.SwapBuffers()
		}
	}
	m.backend.PollEvents()
}

// CreateWindow allocates an unrealized window. Call Realize to open it.
func (m *Manager) CreateWindow(width, height int, fullscreen bool) *Window {
	w := newWindow(m, width, height, fullscreen)
	if m.freed {
		w.freed = true
		w.closeRequested = true
		return w
	}
	m.windows = append(m.windows, w)
	m.logger.Debug("created window", "window", w)
	return w
}

// CreateAndRealize creates a window and opens it with title.
func (m *Manager) CreateAndRealize(title string, width, height int, fullscreen bool, share *Window) (*Window, error) {
	if m.freed {
		return nil, ErrManagerFreed
	}
	w := m.CreateWindow(width, height, fullscreen)
	if err := w.Realize(title, share); err != nil {
		w.Free()
		return nil, err
	}
	return w, nil
}

// Windows returns the windows owned by the manager in creation order.
func (m *Manager) Windows() []*Window { return slices.Clone(m.windows) }

func (m *Manager) removeWindow(w *Window) {
	m.windows = slices.DeleteFunc(m.windows, func(o *Window) bool { return o == w })
}

// Monitor returns the monitor with the given handle, or nil.
func (m *Manager) Monitor(handle platform.MonitorHandle) *Monitor {
	return m.monitors[handle]
}

// Monitors returns the known monitors in registration order.
func (m *Manager) Monitors() []*Monitor {
	out := make([]*Monitor, 0, len(m.monitorOrder))
	for _, h := range m.monitorOrder {
		out = append(out, m.monitors[h])
	}
	return out
}

// PrimaryMonitor returns the primary monitor, or nil when it is unknown.
func (m *Manager) PrimaryMonitor() *Monitor {
	return m.monitors[m.backend.PrimaryMonitor()]
}

// FindBestMonitor returns the monitor a window should use for fullscreen
// and centering. A realized window attached to a known monitor gets that
// monitor. Otherwise the monitor covering the largest part of the window
// wins; on equal area the primary monitor is preferred. Returns nil when no
// monitors are registered.
func (m *Manager) FindBestMonitor(w *Window) *Monitor {
	if w.handle != 0 {
		if attached := m.backend.WindowMonitor(w.handle); attached != 0 {
			if mon, ok := m.monitors[attached]; ok {
				return mon
			}
		}
	}

	bounds := Rect{X: w.x, Y: w.y, Width: w.physicalWidth, Height: w.physicalHeight}
	primary := m.backend.PrimaryMonitor()
	bestArea := -1
	var best *Monitor

	for _, h := range m.monitorOrder {
		mon := m.monitors[h]
		mode := mon.CurrentMode()
		area := OverlapArea(bounds, Rect{X: mon.X(), Y: mon.Y(), Width: mode.Width, Height: mode.Height})

		if area > bestArea {
			best = mon
			bestArea = area
		} else if area == bestArea && mon.Handle() == primary {
			best = mon
		}
	}

	return best
}

// Free destroys every window, then shuts the backend down. Calling Free
// more than once is a no-op.
func (m *Manager) Free() {
	if m.freed {
		return
	}
	m.backend.SetMonitorCallback(nil)
	for _, w := range slices.Clone(m.windows) {
		w.Free()
	}
	m.freed = true
	m.backend.Terminate()
}
