//go:build linux

package platform

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/atotto/clipboard"

	"github.com/1broseidon/winkit/internal/input"
	"github.com/1broseidon/winkit/internal/x11"
)

// X11Backend drives windows directly over the X protocol. It creates no
// graphics context: MakeContextCurrent and SwapBuffers do nothing, and the
// framebuffer size always equals the window size.
type X11Backend struct {
	conn    *x11.Connection
	class   string
	lastErr string

	monitors     map[MonitorHandle]x11.Monitor
	monitorOrder []MonitorHandle
	monitorCB    MonitorCallback

	windows map[xproto.Window]*x11Window

	// pendingRelease holds a key release until the next event shows
	// whether it belongs to an auto-repeat pair.
	pendingRelease *xproto.KeyReleaseEvent
}

type x11Window struct {
	id        xproto.Window
	callbacks *WindowCallbacks

	// Last geometry reported through callbacks.
	x, y          int
	width, height int

	monitor     MonitorHandle
	shouldClose bool
	focused     bool

	cursorMode       CursorMode
	cursorX, cursorY float64
	keys             map[xproto.Keycode]bool
}

var _ Backend = (*X11Backend)(nil)

func init() {
	backends["x11"] = func(class string) Backend { return NewX11Backend(class) }
}

// NewX11Backend returns an uninitialized backend. class is set as WM_CLASS
// on every window.
func NewX11Backend(class string) *X11Backend {
	return &X11Backend{
		class:    class,
		monitors: make(map[MonitorHandle]x11.Monitor),
		windows:  make(map[xproto.Window]*x11Window),
	}
}

func (b *X11Backend) Init() error {
	if b.conn != nil {
		return nil
	}
	conn, err := x11.NewConnection()
	if err != nil {
		b.setError(err)
		return fmt.Errorf("failed to connect to X11: %w", err)
	}
	b.conn = conn
	b.lastErr = ""

	mons, err := conn.GetMonitors()
	if err != nil {
		b.setError(err)
		return nil
	}
	b.setMonitors(mons)
	return nil
}

func (b *X11Backend) Terminate() {
	if b.conn == nil {
		return
	}
	for id := range b.windows {
		b.conn.DestroyWindow(id)
	}
	clear(b.windows)
	b.conn.Close()
	b.conn = nil
	b.pendingRelease = nil
}

func (b *X11Backend) LastError() string { return b.lastErr }

func (b *X11Backend) setError(err error) {
	if err != nil {
		b.lastErr = err.Error()
	}
}

func (b *X11Backend) PollEvents() {
	if b.conn == nil {
		return
	}
	b.conn.Poll(b.handleEvent, func(err xgb.Error) { b.lastErr = err.Error() })
	b.flushRelease()
}

func (b *X11Backend) handleEvent(ev xgb.Event) {
	if b.pendingRelease != nil {
		release := *b.pendingRelease
		if press, ok := ev.(xproto.KeyPressEvent); ok &&
			press.Event == release.Event && press.Detail == release.Detail && press.Time == release.Time {
			b.pendingRelease = nil
			if w := b.windows[press.Event]; w != nil {
				b.keyPress(w, press)
			}
			return
		}
		b.flushRelease()
	}

	switch ev := ev.(type) {
	case randr.ScreenChangeNotifyEvent:
		b.refreshMonitors()
	case xproto.KeyPressEvent:
		if w := b.windows[ev.Event]; w != nil {
			b.keyPress(w, ev)
		}
	case xproto.KeyReleaseEvent:
		if b.windows[ev.Event] != nil {
			b.pendingRelease = &ev
		}
	case xproto.ButtonPressEvent:
		if w := b.windows[ev.Event]; w != nil {
			b.button(w, ev.Detail, ev.State, input.Press)
		}
	case xproto.ButtonReleaseEvent:
		if w := b.windows[ev.Event]; w != nil {
			b.button(w, ev.Detail, ev.State, input.Release)
		}
	case xproto.MotionNotifyEvent:
		if w := b.windows[ev.Event]; w != nil {
			b.motion(w, int(ev.EventX), int(ev.EventY))
		}
	case xproto.EnterNotifyEvent:
		if w := b.windows[ev.Event]; w != nil {
			if cb := w.callbacks; cb != nil && cb.CursorEnter != nil {
				cb.CursorEnter(true)
			}
			if w.cursorMode != CursorDisabled {
				w.cursorX, w.cursorY = float64(ev.EventX), float64(ev.EventY)
				if cb := w.callbacks; cb != nil && cb.CursorPos != nil {
					cb.CursorPos(w.cursorX, w.cursorY)
				}
			}
		}
	case xproto.LeaveNotifyEvent:
		if w := b.windows[ev.Event]; w != nil {
			if cb := w.callbacks; cb != nil && cb.CursorEnter != nil {
				cb.CursorEnter(false)
			}
		}
	case xproto.FocusInEvent:
		if w := b.windows[ev.Event]; w != nil && !grabTransition(ev.Mode) {
			b.focus(w, true)
		}
	case xproto.FocusOutEvent:
		if w := b.windows[ev.Event]; w != nil && !grabTransition(ev.Mode) {
			b.focus(w, false)
		}
	case xproto.ConfigureNotifyEvent:
		if w := b.windows[ev.Window]; w != nil {
			b.configure(w, int(ev.Width), int(ev.Height))
		}
	case xproto.ClientMessageEvent:
		if w := b.windows[ev.Window]; w != nil && b.conn.IsDeleteRequest(ev) {
			w.shouldClose = true
			if cb := w.callbacks; cb != nil && cb.Close != nil {
				cb.Close()
			}
		}
	}
}

// Focus changes caused by our own pointer grab are not real focus changes.
func grabTransition(mode byte) bool {
	return mode == xproto.NotifyModeGrab || mode == xproto.NotifyModeUngrab
}

func (b *X11Backend) flushRelease() {
	if b.pendingRelease == nil {
		return
	}
	ev := *b.pendingRelease
	b.pendingRelease = nil

	w := b.windows[ev.Event]
	if w == nil {
		return
	}
	delete(w.keys, ev.Detail)
	if cb := w.callbacks; cb != nil && cb.Key != nil {
		cb.Key(b.conn.Key(ev.Detail), int(ev.Detail), input.Release, x11.ModsFromState(ev.State))
	}
}

func (b *X11Backend) keyPress(w *x11Window, ev xproto.KeyPressEvent) {
	action := input.Press
	if w.keys[ev.Detail] {
		action = input.Repeat
	}
	w.keys[ev.Detail] = true

	mods := x11.ModsFromState(ev.State)
	if cb := w.callbacks; cb != nil && cb.Key != nil {
		cb.Key(b.conn.Key(ev.Detail), int(ev.Detail), action, mods)
	}
	if r, ok := b.conn.Rune(ev.State, ev.Detail); ok {
		if cb := w.callbacks; cb != nil && cb.CharMods != nil {
			cb.CharMods(r, mods)
		}
	}
}

func (b *X11Backend) button(w *x11Window, detail xproto.Button, state uint16, action input.Action) {
	cb := w.callbacks
	if cb == nil {
		return
	}
	if dx, dy, ok := scrollOffset(detail); ok {
		// Wheel buttons report a press and release per notch.
		if action == input.Press && cb.Scroll != nil {
			cb.Scroll(dx, dy)
		}
		return
	}
	if button, ok := mouseButton(detail); ok && cb.MouseButton != nil {
		cb.MouseButton(button, action, x11.ModsFromState(state))
	}
}

// scrollOffset maps wheel buttons 4 to 7 to scroll offsets.
func scrollOffset(detail xproto.Button) (dx, dy float64, ok bool) {
	switch detail {
	case 4:
		return 0, 1, true
	case 5:
		return 0, -1, true
	case 6:
		return 1, 0, true
	case 7:
		return -1, 0, true
	}
	return 0, 0, false
}

// mouseButton maps X buttons to input buttons. X numbers the middle button
// 2 and the right button 3; buttons after the wheel continue from 4.
func mouseButton(detail xproto.Button) (input.MouseButton, bool) {
	var button input.MouseButton
	switch detail {
	case 1:
		button = input.MouseButtonLeft
	case 2:
		button = input.MouseButtonMiddle
	case 3:
		button = input.MouseButtonRight
	default:
		button = input.MouseButton(int(detail) - 5)
	}
	if button < 0 || button > input.MouseButtonLast {
		return 0, false
	}
	return button, true
}

func (b *X11Backend) motion(w *x11Window, x, y int) {
	if w.cursorMode == CursorDisabled {
		cx, cy := w.width/2, w.height/2
		if x == cx && y == cy {
			// Our own warp back to the center.
			return
		}
		w.cursorX += float64(x - cx)
		w.cursorY += float64(y - cy)
		b.conn.WarpPointer(w.id, cx, cy)
	} else {
		w.cursorX, w.cursorY = float64(x), float64(y)
	}
	if cb := w.callbacks; cb != nil && cb.CursorPos != nil {
		cb.CursorPos(w.cursorX, w.cursorY)
	}
}

func (b *X11Backend) focus(w *x11Window, focused bool) {
	if w.focused == focused {
		return
	}
	w.focused = focused
	if w.cursorMode == CursorDisabled {
		if focused {
			b.setError(b.conn.GrabPointer(w.id))
		} else {
			b.conn.UngrabPointer()
		}
	}
	if cb := w.callbacks; cb != nil && cb.Focus != nil {
		cb.Focus(focused)
	}
}

func (b *X11Backend) configure(w *x11Window, width, height int) {
	// ConfigureNotify coordinates are relative to the window manager frame,
	// so ask the server for the root-relative position.
	x, y, err := b.conn.Translate(w.id, 0, 0)
	if err != nil {
		x, y = w.x, w.y
	}

	if width != w.width || height != w.height {
		w.width, w.height = width, height
		if cb := w.callbacks; cb != nil {
			if cb.Size != nil {
				cb.Size(width, height)
			}
			if cb.FramebufferSize != nil {
				cb.FramebufferSize(width, height)
			}
		}
	}
	// A callback above may have destroyed the window.
	if b.windows[w.id] != w {
		return
	}
	if x != w.x || y != w.y {
		w.x, w.y = x, y
		if cb := w.callbacks; cb != nil && cb.Pos != nil {
			cb.Pos(x, y)
		}
	}
}

func (b *X11Backend) refreshMonitors() {
	mons, err := b.conn.GetMonitors()
	if err != nil {
		b.setError(err)
		return
	}
	before := b.monitors
	b.setMonitors(mons)
	if b.monitorCB == nil {
		return
	}

	for handle := range before {
		if _, ok := b.monitors[handle]; !ok {
			for _, w := range b.windows {
				if w.monitor == handle {
					w.monitor = 0
				}
			}
			b.monitorCB(handle, MonitorDisconnected)
		}
	}
	for _, handle := range b.monitorOrder {
		if _, ok := before[handle]; !ok {
			b.monitorCB(handle, MonitorConnected)
		}
	}
}

func (b *X11Backend) setMonitors(mons []x11.Monitor) {
	next := make(map[MonitorHandle]x11.Monitor, len(mons))
	order := make([]MonitorHandle, 0, len(mons))
	for _, m := range mons {
		h := MonitorHandle(m.Output)
		next[h] = m
		order = append(order, h)
	}
	b.monitors = next
	b.monitorOrder = order
}

func (b *X11Backend) Monitors() []MonitorHandle {
	out := make([]MonitorHandle, len(b.monitorOrder))
	copy(out, b.monitorOrder)
	return out
}

func (b *X11Backend) PrimaryMonitor() MonitorHandle {
	for _, h := range b.monitorOrder {
		if b.monitors[h].Primary {
			return h
		}
	}
	if len(b.monitorOrder) > 0 {
		return b.monitorOrder[0]
	}
	return 0
}

func (b *X11Backend) MonitorPosition(m MonitorHandle) (int, int) {
	mon := b.monitors[m]
	return mon.X, mon.Y
}

func (b *X11Backend) MonitorModes(m MonitorHandle) []DisplayMode {
	mon, ok := b.monitors[m]
	if !ok {
		return nil
	}
	modes := make([]DisplayMode, 0, len(mon.Modes))
	for _, mode := range mon.Modes {
		modes = append(modes, b.displayMode(mode))
	}
	return modes
}

func (b *X11Backend) MonitorCurrentMode(m MonitorHandle) (DisplayMode, bool) {
	mon, ok := b.monitors[m]
	if !ok {
		return DisplayMode{}, false
	}
	return b.displayMode(mon.Current), true
}

func (b *X11Backend) displayMode(m x11.Mode) DisplayMode {
	red, green, blue := x11.SplitDepth(b.conn.Depth())
	return DisplayMode{
		Width:       m.Width,
		Height:      m.Height,
		RedBits:     red,
		GreenBits:   green,
		BlueBits:    blue,
		RefreshRate: m.Refresh,
	}
}

func (b *X11Backend) SetMonitorCallback(cb MonitorCallback) { b.monitorCB = cb }

func (b *X11Backend) CreateWindow(opts WindowOptions) (WindowHandle, error) {
	if b.conn == nil {
		err := errors.New("x11 backend is not initialized")
		b.setError(err)
		return 0, err
	}
	if opts.ClientAPI != "" && opts.ClientAPI != ClientAPINone {
		err := fmt.Errorf("x11 backend cannot create a %s context", opts.ClientAPI)
		b.setError(err)
		return 0, err
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		err := fmt.Errorf("invalid window size %dx%d", opts.Width, opts.Height)
		b.setError(err)
		return 0, err
	}

	x, y := 0, 0
	mon, fullscreen := b.monitors[opts.Monitor]
	if fullscreen {
		x, y = mon.X, mon.Y
	}

	id, err := b.conn.CreateWindow(x, y, opts.Width, opts.Height, opts.Title, b.class)
	if err != nil {
		b.setError(err)
		return 0, err
	}

	w := &x11Window{
		id:     id,
		x:      x,
		y:      y,
		width:  opts.Width,
		height: opts.Height,
		keys:   make(map[xproto.Keycode]bool),
	}
	b.windows[id] = w

	if fullscreen {
		w.monitor = opts.Monitor
		b.setError(b.conn.SetFullscreen(id, true))
	}
	b.setError(b.conn.FocusWindow(id))
	return WindowHandle(id), nil
}

func (b *X11Backend) window(h WindowHandle) *x11Window {
	if b.conn == nil {
		return nil
	}
	return b.windows[xproto.Window(h)]
}

func (b *X11Backend) DestroyWindow(h WindowHandle) {
	w := b.window(h)
	if w == nil {
		return
	}
	if w.cursorMode == CursorDisabled && w.focused {
		b.conn.UngrabPointer()
	}
	delete(b.windows, w.id)
	if b.pendingRelease != nil && b.pendingRelease.Event == w.id {
		b.pendingRelease = nil
	}
	b.conn.DestroyWindow(w.id)
}

func (b *X11Backend) SetWindowCallbacks(h WindowHandle, cb *WindowCallbacks) {
	if w := b.window(h); w != nil {
		w.callbacks = cb
	}
}

func (b *X11Backend) MakeContextCurrent(WindowHandle) {}

func (b *X11Backend) WindowMonitor(h WindowHandle) MonitorHandle {
	if w := b.window(h); w != nil {
		return w.monitor
	}
	return 0
}

func (b *X11Backend) SetWindowMonitor(h WindowHandle, m MonitorHandle, x, y, width, height, _ int) error {
	w := b.window(h)
	if w == nil {
		return fmt.Errorf("unknown window %d", h)
	}

	if m == 0 {
		if err := b.conn.SetFullscreen(w.id, false); err != nil {
			b.setError(err)
			return err
		}
		w.monitor = 0
		b.conn.MoveResizeWindow(w.id, x, y, width, height)
		return nil
	}

	mon, ok := b.monitors[m]
	if !ok {
		err := fmt.Errorf("unknown monitor %d", m)
		b.setError(err)
		return err
	}
	// The video mode is left alone; the window covers the monitor's
	// current mode.
	b.conn.MoveResizeWindow(w.id, mon.X, mon.Y, width, height)
	if err := b.conn.SetFullscreen(w.id, true); err != nil {
		b.setError(err)
		return err
	}
	w.monitor = m
	return nil
}

// WindowPosition asks the server for the current position and records it as
// reported.
func (b *X11Backend) WindowPosition(h WindowHandle) (int, int) {
	w := b.window(h)
	if w == nil {
		return 0, 0
	}
	b.conn.Sync()
	if x, y, _, _, err := b.conn.Geometry(w.id); err == nil {
		w.x, w.y = x, y
	}
	return w.x, w.y
}

func (b *X11Backend) SetWindowPosition(h WindowHandle, x, y int) {
	if w := b.window(h); w != nil {
		b.conn.MoveWindow(w.id, x, y)
	}
}

func (b *X11Backend) WindowSize(h WindowHandle) (int, int) {
	w := b.window(h)
	if w == nil {
		return 0, 0
	}
	if _, _, width, height, err := b.conn.Geometry(w.id); err == nil {
		w.width, w.height = width, height
	}
	return w.width, w.height
}

func (b *X11Backend) SetWindowSize(h WindowHandle, width, height int) {
	if w := b.window(h); w != nil {
		b.conn.ResizeWindow(w.id, width, height)
	}
}

func (b *X11Backend) FramebufferSize(h WindowHandle) (int, int) {
	return b.WindowSize(h)
}

func (b *X11Backend) SetWindowTitle(h WindowHandle, title string) {
	if w := b.window(h); w != nil {
		b.conn.SetTitle(w.id, title)
	}
}

func (b *X11Backend) SetShouldClose(h WindowHandle, close bool) {
	if w := b.window(h); w != nil {
		w.shouldClose = close
	}
}

func (b *X11Backend) RequestAttention(h WindowHandle) {
	if w := b.window(h); w != nil {
		b.setError(b.conn.RequestAttention(w.id))
	}
}

func (b *X11Backend) SetCursorPosition(h WindowHandle, x, y float64) {
	w := b.window(h)
	if w == nil {
		return
	}
	w.cursorX, w.cursorY = x, y
	if w.cursorMode != CursorDisabled {
		b.conn.WarpPointer(w.id, int(x), int(y))
	}
}

func (b *X11Backend) SetCursorMode(h WindowHandle, mode CursorMode) {
	w := b.window(h)
	if w == nil || w.cursorMode == mode {
		return
	}
	prev := w.cursorMode
	w.cursorMode = mode

	if prev == CursorDisabled {
		b.conn.UngrabPointer()
		b.conn.WarpPointer(w.id, int(w.cursorX), int(w.cursorY))
	}

	switch mode {
	case CursorNormal:
		b.setError(b.conn.SetCursorVisible(w.id, true))
	case CursorHidden:
		b.setError(b.conn.SetCursorVisible(w.id, false))
	case CursorDisabled:
		b.setError(b.conn.SetCursorVisible(w.id, false))
		if w.focused {
			b.setError(b.conn.GrabPointer(w.id))
		}
		b.conn.WarpPointer(w.id, w.width/2, w.height/2)
	}
}

// ClipboardString reads the CLIPBOARD selection through xclip or xsel.
func (b *X11Backend) ClipboardString(WindowHandle) string {
	text, err := clipboard.ReadAll()
	if err != nil {
		b.setError(err)
		return ""
	}
	return text
}

// SwapInterval and SwapBuffers have nothing to pace or present without a
// context.
func (b *X11Backend) SwapInterval(int) {}

func (b *X11Backend) SwapBuffers(WindowHandle) {}
