//go:build glfw

package platform

import (
	"errors"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/1broseidon/winkit/internal/input"
)

func init() {
	backends["glfw"] = func(string) Backend { return NewGLFWBackend() }
}

// GLFWBackend drives windows through GLFW and can create OpenGL contexts.
// GLFW must be used from the main thread; call runtime.LockOSThread from an
// init function in package main.
type GLFWBackend struct {
	initialized bool
	lastErr     string

	// go-gl allocates a new *glfw.Monitor on every call, so monitors are
	// keyed by the wrapper value, which holds the native pointer.
	monitors  *monitorRegistry[glfw.Monitor]
	monitorCB MonitorCallback

	windows    map[WindowHandle]*glfwWindow
	windowIDs  map[*glfw.Window]WindowHandle
	nextWindow WindowHandle
}

type glfwWindow struct {
	win     *glfw.Window
	context bool
}

var _ Backend = (*GLFWBackend)(nil)

func NewGLFWBackend() *GLFWBackend {
	return &GLFWBackend{
		monitors:  newMonitorRegistry[glfw.Monitor](),
		windows:   make(map[WindowHandle]*glfwWindow),
		windowIDs: make(map[*glfw.Window]WindowHandle),
	}
}

// guard turns a GLFW panic into an error recorded as the last error.
func (b *GLFWBackend) guard(err *error) {
	if r := recover(); r != nil {
		e, ok := r.(error)
		if !ok {
			e = fmt.Errorf("%v", r)
		}
		b.lastErr = e.Error()
		if err != nil {
			*err = e
		}
	}
}

func (b *GLFWBackend) Init() (err error) {
	if b.initialized {
		return nil
	}
	defer b.guard(&err)
	if err := glfw.Init(); err != nil {
		b.lastErr = err.Error()
		return err
	}
	b.initialized = true
	b.lastErr = ""

	for _, m := range glfw.GetMonitors() {
		b.monitorHandle(m)
	}
	glfw.SetMonitorCallback(b.onMonitor)
	return nil
}

func (b *GLFWBackend) Terminate() {
	if !b.initialized {
		return
	}
	glfw.SetMonitorCallback(nil)
	glfw.Terminate()
	b.initialized = false
	b.monitors.reset()
	clear(b.windows)
	clear(b.windowIDs)
}

func (b *GLFWBackend) LastError() string { return b.lastErr }

func (b *GLFWBackend) PollEvents() {
	if !b.initialized {
		return
	}
	defer b.guard(nil)
	glfw.PollEvents()
}

func (b *GLFWBackend) monitorHandle(m *glfw.Monitor) MonitorHandle {
	return b.monitors.handle(*m)
}

// monitor returns a wrapper for h, or nil once h has disconnected.
func (b *GLFWBackend) monitor(h MonitorHandle) *glfw.Monitor {
	m, ok := b.monitors.key(h)
	if !ok {
		return nil
	}
	return &m
}

func (b *GLFWBackend) onMonitor(m *glfw.Monitor, event glfw.PeripheralEvent) {
	switch event {
	case glfw.Connected:
		h := b.monitorHandle(m)
		if b.monitorCB != nil {
			b.monitorCB(h, MonitorConnected)
		}
	case glfw.Disconnected:
		h, ok := b.monitors.remove(*m)
		if !ok {
			return
		}
		if b.monitorCB != nil {
			b.monitorCB(h, MonitorDisconnected)
		}
	}
}

func (b *GLFWBackend) Monitors() []MonitorHandle {
	if !b.initialized {
		return nil
	}
	var out []MonitorHandle
	for _, m := range glfw.GetMonitors() {
		out = append(out, b.monitorHandle(m))
	}
	return out
}

func (b *GLFWBackend) PrimaryMonitor() MonitorHandle {
	if !b.initialized {
		return 0
	}
	m := glfw.GetPrimaryMonitor()
	if m == nil {
		return 0
	}
	return b.monitorHandle(m)
}

func (b *GLFWBackend) MonitorPosition(h MonitorHandle) (x, y int) {
	if m := b.monitor(h); m != nil {
		return m.GetPos()
	}
	return 0, 0
}

func (b *GLFWBackend) MonitorModes(h MonitorHandle) []DisplayMode {
	m := b.monitor(h)
	if m == nil {
		return nil
	}
	var modes []DisplayMode
	for _, vm := range m.GetVideoModes() {
		modes = append(modes, displayModeFromVidMode(vm))
	}
	return modes
}

func (b *GLFWBackend) MonitorCurrentMode(h MonitorHandle) (DisplayMode, bool) {
	m := b.monitor(h)
	if m == nil {
		return DisplayMode{}, false
	}
	vm := m.GetVideoMode()
	if vm == nil {
		return DisplayMode{}, false
	}
	return displayModeFromVidMode(vm), true
}

func displayModeFromVidMode(vm *glfw.VidMode) DisplayMode {
	return DisplayMode{
		Width:       vm.Width,
		Height:      vm.Height,
		RedBits:     vm.RedBits,
		GreenBits:   vm.GreenBits,
		BlueBits:    vm.BlueBits,
		RefreshRate: vm.RefreshRate,
	}
}

func (b *GLFWBackend) SetMonitorCallback(cb MonitorCallback) { b.monitorCB = cb }

func (b *GLFWBackend) CreateWindow(opts WindowOptions) (handle WindowHandle, err error) {
	if !b.initialized {
		err := errors.New("glfw backend is not initialized")
		b.lastErr = err.Error()
		return 0, err
	}
	defer b.guard(&err)

	glfw.DefaultWindowHints()
	context := opts.ClientAPI == ClientAPIOpenGL
	if context {
		glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	} else {
		glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	}

	var share *glfw.Window
	if sw := b.windows[opts.Share]; sw != nil && context {
		share = sw.win
	}

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, b.monitor(opts.Monitor), share)
	if err != nil {
		b.lastErr = err.Error()
		return 0, err
	}

	b.nextWindow++
	b.windows[b.nextWindow] = &glfwWindow{win: win, context: context}
	b.windowIDs[win] = b.nextWindow
	return b.nextWindow, nil
}

func (b *GLFWBackend) DestroyWindow(h WindowHandle) {
	w := b.windows[h]
	if w == nil {
		return
	}
	defer b.guard(nil)
	delete(b.windows, h)
	delete(b.windowIDs, w.win)
	w.win.Destroy()
}

// SetWindowCallbacks installs GLFW callbacks that forward to cb. Passing nil
// removes them.
func (b *GLFWBackend) SetWindowCallbacks(h WindowHandle, cb *WindowCallbacks) {
	w := b.windows[h]
	if w == nil {
		return
	}
	win := w.win
	if cb == nil {
		win.SetCloseCallback(nil)
		win.SetPosCallback(nil)
		win.SetSizeCallback(nil)
		win.SetFramebufferSizeCallback(nil)
		win.SetFocusCallback(nil)
		win.SetDropCallback(nil)
		win.SetCharModsCallback(nil)
		win.SetKeyCallback(nil)
		win.SetCursorPosCallback(nil)
		win.SetCursorEnterCallback(nil)
		win.SetMouseButtonCallback(nil)
		win.SetScrollCallback(nil)
		return
	}

	win.SetCloseCallback(func(*glfw.Window) {
		if cb.Close != nil {
			cb.Close()
		}
	})
	win.SetPosCallback(func(_ *glfw.Window, x, y int) {
		if cb.Pos != nil {
			cb.Pos(x, y)
		}
	})
	win.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		if cb.Size != nil {
			cb.Size(width, height)
		}
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if cb.FramebufferSize != nil {
			cb.FramebufferSize(width, height)
		}
	})
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if cb.Focus != nil {
			cb.Focus(focused)
		}
	})
	win.SetDropCallback(func(_ *glfw.Window, names []string) {
		if cb.Drop != nil {
			cb.Drop(names)
		}
	})
	win.SetCharModsCallback(func(_ *glfw.Window, char rune, mods glfw.ModifierKey) {
		if cb.CharMods != nil {
			cb.CharMods(char, int(mods))
		}
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if cb.Key != nil {
			cb.Key(input.Key(key), scancode, input.Action(action), int(mods))
		}
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if cb.CursorPos != nil {
			cb.CursorPos(x, y)
		}
	})
	win.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if cb.CursorEnter != nil {
			cb.CursorEnter(entered)
		}
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if cb.MouseButton != nil {
			cb.MouseButton(input.MouseButton(button), input.Action(action), int(mods))
		}
	})
	win.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		if cb.Scroll != nil {
			cb.Scroll(dx, dy)
		}
	})
}

func (b *GLFWBackend) MakeContextCurrent(h WindowHandle) {
	if w := b.windows[h]; w != nil && w.context {
		w.win.MakeContextCurrent()
	}
}

func (b *GLFWBackend) WindowMonitor(h WindowHandle) MonitorHandle {
	w := b.windows[h]
	if w == nil {
		return 0
	}
	m := w.win.GetMonitor()
	if m == nil {
		return 0
	}
	h, _ := b.monitors.lookup(*m)
	return h
}

func (b *GLFWBackend) SetWindowMonitor(h WindowHandle, m MonitorHandle, x, y, width, height, refreshRate int) (err error) {
	w := b.windows[h]
	if w == nil {
		return fmt.Errorf("unknown window %d", h)
	}
	var mon *glfw.Monitor
	if m != 0 {
		if mon = b.monitor(m); mon == nil {
			return fmt.Errorf("unknown monitor %d", m)
		}
	}
	if refreshRate == DontCare {
		refreshRate = glfw.DontCare
	}
	defer b.guard(&err)
	w.win.SetMonitor(mon, x, y, width, height, refreshRate)
	return nil
}

func (b *GLFWBackend) WindowPosition(h WindowHandle) (x, y int) {
	if w := b.windows[h]; w != nil {
		return w.win.GetPos()
	}
	return 0, 0
}

func (b *GLFWBackend) SetWindowPosition(h WindowHandle, x, y int) {
	if w := b.windows[h]; w != nil {
		w.win.SetPos(x, y)
	}
}

func (b *GLFWBackend) WindowSize(h WindowHandle) (width, height int) {
	if w := b.windows[h]; w != nil {
		return w.win.GetSize()
	}
	return 0, 0
}

func (b *GLFWBackend) SetWindowSize(h WindowHandle, width, height int) {
	if w := b.windows[h]; w != nil {
		w.win.SetSize(width, height)
	}
}

func (b *GLFWBackend) FramebufferSize(h WindowHandle) (width, height int) {
	if w := b.windows[h]; w != nil {
		return w.win.GetFramebufferSize()
	}
	return 0, 0
}

func (b *GLFWBackend) SetWindowTitle(h WindowHandle, title string) {
	if w := b.windows[h]; w != nil {
		w.win.SetTitle(title)
	}
}

func (b *GLFWBackend) SetShouldClose(h WindowHandle, close bool) {
	if w := b.windows[h]; w != nil {
		w.win.SetShouldClose(close)
	}
}

func (b *GLFWBackend) RequestAttention(h WindowHandle) {
	if w := b.windows[h]; w != nil {
		w.win.RequestAttention()
	}
}

func (b *GLFWBackend) SetCursorPosition(h WindowHandle, x, y float64) {
	if w := b.windows[h]; w != nil {
		w.win.SetCursorPos(x, y)
	}
}

func (b *GLFWBackend) SetCursorMode(h WindowHandle, mode CursorMode) {
	w := b.windows[h]
	if w == nil {
		return
	}
	value := glfw.CursorNormal
	switch mode {
	case CursorHidden:
		value = glfw.CursorHidden
	case CursorDisabled:
		value = glfw.CursorDisabled
	}
	w.win.SetInputMode(glfw.CursorMode, value)
}

func (b *GLFWBackend) ClipboardString(h WindowHandle) (text string) {
	w := b.windows[h]
	if w == nil {
		return ""
	}
	defer b.guard(nil)
	return w.win.GetClipboardString()
}

// SwapInterval applies to the current context and is skipped when there is
// none.
func (b *GLFWBackend) SwapInterval(interval int) {
	if glfw.GetCurrentContext() == nil {
		return
	}
	defer b.guard(nil)
	glfw.SwapInterval(interval)
}

func (b *GLFWBackend) SwapBuffers(h WindowHandle) {
	w := b.windows[h]
	if w == nil || !w.context {
		return
	}
	defer b.guard(nil)
	w.win.SwapBuffers()
}
