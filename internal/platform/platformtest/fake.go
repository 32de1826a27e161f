// Package platformtest provides a scripted in-memory platform.Backend.
package platformtest

import (
	"errors"
	"fmt"

	"github.com/1broseidon/winkit/internal/input"
	"github.com/1broseidon/winkit/internal/platform"
)

// Monitor is a fake monitor.
type Monitor struct {
	Handle  platform.MonitorHandle
	X, Y    int
	Modes   []platform.DisplayMode
	Current platform.DisplayMode
}

// Window is the fake's record of a created window.
type Window struct {
	Handle           platform.WindowHandle
	Options          platform.WindowOptions
	X, Y             int
	Width, Height    int
	Title            string
	Monitor          platform.MonitorHandle
	Callbacks        *platform.WindowCallbacks
	ShouldClose      bool
	AttentionCount   int
	ContextCurrent   bool
	CursorX, CursorY float64
	CursorMode       platform.CursorMode
	Clipboard        string
	Destroyed        bool
}

// SwapCall records one SwapBuffers call and the interval active at the time.
type SwapCall struct {
	Window   platform.WindowHandle
	Interval int
}

// Fake implements platform.Backend entirely in memory. Geometry changes made
// through the Backend methods fire the matching window callbacks
// synchronously, the way native backends do.
type Fake struct {
	// PendingError is reported by LastError before Init is called.
	PendingError string
	// InitErr makes Init fail.
	InitErr error
	// CreateErr makes the next CreateWindow call fail.
	CreateErr error
	// SetMonitorErr makes SetWindowMonitor fail.
	SetMonitorErr error
	// SetMonitorPanic makes SetWindowMonitor panic.
	SetMonitorPanic bool
	// CreateSize, when set, replaces the size requested by CreateWindow the
	// way a window manager may.
	CreateSize func(width, height int) (int, int)
	// FramebufferScale multiplies window sizes into framebuffer sizes.
	FramebufferScale int
	// OnSwap runs inside SwapBuffers, after the swap is recorded.
	OnSwap func(w platform.WindowHandle)

	Initialized    bool
	TerminateCount int
	PollCount      int
	Swaps          []SwapCall
	Destroyed      []platform.WindowHandle

	lastError   string
	monitors    []*Monitor
	primary     platform.MonitorHandle
	monitorCB   platform.MonitorCallback
	windows     map[platform.WindowHandle]*Window
	nextWindow  platform.WindowHandle
	nextMonitor platform.MonitorHandle
	interval    int
	queue       []func()
}

var _ platform.Backend = (*Fake)(nil)

// New returns an empty fake backend.
func New() *Fake {
	return &Fake{
		FramebufferScale: 1,
		windows:          make(map[platform.WindowHandle]*Window),
		nextWindow:       100,
		nextMonitor:      1,
	}
}

// Mode is a shorthand for a 24-bit display mode.
func Mode(width, height, refresh int) platform.DisplayMode {
	return platform.DisplayMode{Width: width, Height: height, RedBits: 8, GreenBits: 8, BlueBits: 8, RefreshRate: refresh}
}

// AddMonitor registers a monitor without firing the monitor callback. The
// first monitor added becomes primary.
func (f *Fake) AddMonitor(x, y int, current platform.DisplayMode, modes ...platform.DisplayMode) platform.MonitorHandle {
	h := f.nextMonitor
	f.nextMonitor++
	if len(modes) == 0 {
		modes = []platform.DisplayMode{current}
	}
	f.monitors = append(f.monitors, &Monitor{Handle: h, X: x, Y: y, Modes: modes, Current: current})
	if f.primary == 0 {
		f.primary = h
	}
	return h
}

// ConnectMonitor adds a monitor and fires the monitor callback.
func (f *Fake) ConnectMonitor(x, y int, current platform.DisplayMode, modes ...platform.DisplayMode) platform.MonitorHandle {
	h := f.AddMonitor(x, y, current, modes...)
	if f.monitorCB != nil {
		f.monitorCB(h, platform.MonitorConnected)
	}
	return h
}

// DisconnectMonitor removes a monitor and fires the monitor callback.
func (f *Fake) DisconnectMonitor(h platform.MonitorHandle) {
	for i, m := range f.monitors {
		if m.Handle == h {
			f.monitors = append(f.monitors[:i:i], f.monitors[i+1:]...)
			break
		}
	}
	if f.primary == h {
		f.primary = 0
		if len(f.monitors) > 0 {
			f.primary = f.monitors[0].Handle
		}
	}
	if f.monitorCB != nil {
		f.monitorCB(h, platform.MonitorDisconnected)
	}
}

// SetPrimary marks h as the primary monitor.
func (f *Fake) SetPrimary(h platform.MonitorHandle) { f.primary = h }

// MonitorByHandle returns the fake monitor record, or nil.
func (f *Fake) MonitorByHandle(h platform.MonitorHandle) *Monitor {
	for _, m := range f.monitors {
		if m.Handle == h {
			return m
		}
	}
	return nil
}

// Window returns the fake window record, or nil.
func (f *Fake) Window(h platform.WindowHandle) *Window { return f.windows[h] }

// HasMonitorCallback reports whether a monitor callback is installed.
func (f *Fake) HasMonitorCallback() bool { return f.monitorCB != nil }

// Enqueue schedules fn to run during the next PollEvents call.
func (f *Fake) Enqueue(fn func()) { f.queue = append(f.queue, fn) }

func (f *Fake) Init() error {
	if f.InitErr != nil {
		f.lastError = f.InitErr.Error()
		return f.InitErr
	}
	f.Initialized = true
	return nil
}

func (f *Fake) Terminate() {
	f.TerminateCount++
	f.Initialized = false
}

func (f *Fake) LastError() string {
	if !f.Initialized && f.PendingError != "" {
		return f.PendingError
	}
	return f.lastError
}

func (f *Fake) PollEvents() {
	f.PollCount++
	queue := f.queue
	f.queue = nil
	for _, fn := range queue {
		fn()
	}
}

func (f *Fake) Monitors() []platform.MonitorHandle {
	out := make([]platform.MonitorHandle, 0, len(f.monitors))
	for _, m := range f.monitors {
		out = append(out, m.Handle)
	}
	return out
}

func (f *Fake) PrimaryMonitor() platform.MonitorHandle { return f.primary }

func (f *Fake) MonitorPosition(h platform.MonitorHandle) (int, int) {
	if m := f.MonitorByHandle(h); m != nil {
		return m.X, m.Y
	}
	return 0, 0
}

func (f *Fake) MonitorModes(h platform.MonitorHandle) []platform.DisplayMode {
	if m := f.MonitorByHandle(h); m != nil {
		return append([]platform.DisplayMode(nil), m.Modes...)
	}
	return nil
}

func (f *Fake) MonitorCurrentMode(h platform.MonitorHandle) (platform.DisplayMode, bool) {
	if m := f.MonitorByHandle(h); m != nil {
		return m.Current, true
	}
	return platform.DisplayMode{}, false
}

func (f *Fake) SetMonitorCallback(cb platform.MonitorCallback) { f.monitorCB = cb }

func (f *Fake) CreateWindow(opts platform.WindowOptions) (platform.WindowHandle, error) {
	if f.CreateErr != nil {
		err := f.CreateErr
		f.CreateErr = nil
		f.lastError = err.Error()
		return 0, err
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		f.lastError = fmt.Sprintf("invalid window size %dx%d", opts.Width, opts.Height)
		return 0, errors.New(f.lastError)
	}
	h := f.nextWindow
	f.nextWindow++
	win := &Window{
		Handle:  h,
		Options: opts,
		Width:   opts.Width,
		Height:  opts.Height,
		Title:   opts.Title,
		Monitor: opts.Monitor,
	}
	if f.CreateSize != nil {
		win.Width, win.Height = f.CreateSize(opts.Width, opts.Height)
	}
	if m := f.MonitorByHandle(opts.Monitor); m != nil {
		win.X, win.Y = m.X, m.Y
	}
	f.windows[h] = win
	return h, nil
}

func (f *Fake) DestroyWindow(h platform.WindowHandle) {
	if win, ok := f.windows[h]; ok {
		win.Destroyed = true
		win.Callbacks = nil
		delete(f.windows, h)
		f.Destroyed = append(f.Destroyed, h)
	}
}

func (f *Fake) SetWindowCallbacks(h platform.WindowHandle, cb *platform.WindowCallbacks) {
	if win, ok := f.windows[h]; ok {
		win.Callbacks = cb
	}
}

func (f *Fake) MakeContextCurrent(h platform.WindowHandle) {
	for _, win := range f.windows {
		win.ContextCurrent = win.Handle == h
	}
}

func (f *Fake) WindowMonitor(h platform.WindowHandle) platform.MonitorHandle {
	if win, ok := f.windows[h]; ok {
		return win.Monitor
	}
	return 0
}

func (f *Fake) SetWindowMonitor(h platform.WindowHandle, m platform.MonitorHandle, x, y, width, height, refreshRate int) error {
	if f.SetMonitorPanic {
		panic("fake: SetWindowMonitor")
	}
	if f.SetMonitorErr != nil {
		f.lastError = f.SetMonitorErr.Error()
		return f.SetMonitorErr
	}
	win, ok := f.windows[h]
	if !ok {
		return fmt.Errorf("fake: unknown window %d", h)
	}
	win.Monitor = m
	if mon := f.MonitorByHandle(m); mon != nil {
		x, y = mon.X+x, mon.Y+y
	}
	f.move(win, x, y)
	f.resize(win, width, height)
	return nil
}

func (f *Fake) WindowPosition(h platform.WindowHandle) (int, int) {
	if win, ok := f.windows[h]; ok {
		return win.X, win.Y
	}
	return 0, 0
}

func (f *Fake) SetWindowPosition(h platform.WindowHandle, x, y int) {
	if win, ok := f.windows[h]; ok {
		f.move(win, x, y)
	}
}

func (f *Fake) WindowSize(h platform.WindowHandle) (int, int) {
	if win, ok := f.windows[h]; ok {
		return win.Width, win.Height
	}
	return 0, 0
}

func (f *Fake) SetWindowSize(h platform.WindowHandle, width, height int) {
	if win, ok := f.windows[h]; ok {
		f.resize(win, width, height)
	}
}

func (f *Fake) FramebufferSize(h platform.WindowHandle) (int, int) {
	if win, ok := f.windows[h]; ok {
		return win.Width * f.FramebufferScale, win.Height * f.FramebufferScale
	}
	return 0, 0
}

func (f *Fake) SetWindowTitle(h platform.WindowHandle, title string) {
	if win, ok := f.windows[h]; ok {
		win.Title = title
	}
}

func (f *Fake) SetShouldClose(h platform.WindowHandle, close bool) {
	if win, ok := f.windows[h]; ok {
		win.ShouldClose = close
	}
}

func (f *Fake) RequestAttention(h platform.WindowHandle) {
	if win, ok := f.windows[h]; ok {
		win.AttentionCount++
	}
}

func (f *Fake) SetCursorPosition(h platform.WindowHandle, x, y float64) {
	if win, ok := f.windows[h]; ok {
		win.CursorX, win.CursorY = x, y
	}
}

func (f *Fake) SetCursorMode(h platform.WindowHandle, mode platform.CursorMode) {
	if win, ok := f.windows[h]; ok {
		win.CursorMode = mode
	}
}

func (f *Fake) ClipboardString(h platform.WindowHandle) string {
	if win, ok := f.windows[h]; ok {
		return win.Clipboard
	}
	return ""
}

func (f *Fake) SwapInterval(interval int) { f.interval = interval }

func (f *Fake) SwapBuffers(h platform.WindowHandle) {
	f.Swaps = append(f.Swaps, SwapCall{Window: h, Interval: f.interval})
	if f.OnSwap != nil {
		f.OnSwap(h)
	}
}

func (f *Fake) move(win *Window, x, y int) {
	if win.X == x && win.Y == y {
		return
	}
	win.X, win.Y = x, y
	if cb := win.Callbacks; cb != nil && cb.Pos != nil {
		cb.Pos(x, y)
	}
}

func (f *Fake) resize(win *Window, width, height int) {
	if win.Width == width && win.Height == height {
		return
	}
	win.Width, win.Height = width, height
	if cb := win.Callbacks; cb != nil {
		if cb.Size != nil {
			cb.Size(width, height)
		}
		if cb.FramebufferSize != nil {
			cb.FramebufferSize(width*f.FramebufferScale, height*f.FramebufferScale)
		}
	}
}

// The Fire* helpers deliver raw events to a window's callbacks, as if the
// native system had produced them.

func (f *Fake) callbacks(h platform.WindowHandle) *platform.WindowCallbacks {
	if win, ok := f.windows[h]; ok && win.Callbacks != nil {
		return win.Callbacks
	}
	return &platform.WindowCallbacks{}
}

func (f *Fake) FireClose(h platform.WindowHandle) {
	if cb := f.callbacks(h); cb.Close != nil {
		cb.Close()
	}
}

// FireMove moves the window as the user would, then notifies.
func (f *Fake) FireMove(h platform.WindowHandle, x, y int) {
	if win, ok := f.windows[h]; ok {
		f.move(win, x, y)
	}
}

// FireResize resizes the window as the user would, then notifies.
func (f *Fake) FireResize(h platform.WindowHandle, width, height int) {
	if win, ok := f.windows[h]; ok {
		f.resize(win, width, height)
	}
}

func (f *Fake) FireFocus(h platform.WindowHandle, focused bool) {
	if cb := f.callbacks(h); cb.Focus != nil {
		cb.Focus(focused)
	}
}

func (f *Fake) FireDrop(h platform.WindowHandle, paths ...string) {
	if cb := f.callbacks(h); cb.Drop != nil {
		cb.Drop(paths)
	}
}

func (f *Fake) FireChar(h platform.WindowHandle, char rune, mods int) {
	if cb := f.callbacks(h); cb.CharMods != nil {
		cb.CharMods(char, mods)
	}
}

func (f *Fake) FireKey(h platform.WindowHandle, key input.Key, scanCode int, action input.Action, mods int) {
	if cb := f.callbacks(h); cb.Key != nil {
		cb.Key(key, scanCode, action, mods)
	}
}

func (f *Fake) FireCursorPos(h platform.WindowHandle, x, y float64) {
	if cb := f.callbacks(h); cb.CursorPos != nil {
		cb.CursorPos(x, y)
	}
}

func (f *Fake) FireCursorEnter(h platform.WindowHandle, entered bool) {
	if cb := f.callbacks(h); cb.CursorEnter != nil {
		cb.CursorEnter(entered)
	}
}

func (f *Fake) FireMouseButton(h platform.WindowHandle, button input.MouseButton, action input.Action, mods int) {
	if cb := f.callbacks(h); cb.MouseButton != nil {
		cb.MouseButton(button, action, mods)
	}
}

func (f *Fake) FireScroll(h platform.WindowHandle, dx, dy float64) {
	if cb := f.callbacks(h); cb.Scroll != nil {
		cb.Scroll(dx, dy)
	}
}
