package platform

import "github.com/1broseidon/winkit/internal/input"

// WindowHandle is an opaque native window identifier. Zero means no window.
type WindowHandle uint64

// MonitorHandle is an opaque native monitor identifier. Zero means no monitor.
type MonitorHandle uint64

// DisplayMode is a video mode exactly as the backend reports it.
type DisplayMode struct {
	Width       int
	Height      int
	RedBits     int
	GreenBits   int
	BlueBits    int
	RefreshRate int
}

// DontCare leaves a value such as the refresh rate up to the backend.
const DontCare = -1

// ClientAPI selects the graphics context created with a window.
type ClientAPI string

const (
	ClientAPINone   ClientAPI = "none"
	ClientAPIOpenGL ClientAPI = "opengl"
)

// WindowOptions describes a window to create.
type WindowOptions struct {
	Width     int
	Height    int
	Title     string
	Monitor   MonitorHandle // non-zero creates the window fullscreen on this monitor
	Share     WindowHandle  // window to share a graphics context with
	ClientAPI ClientAPI
}

// CursorMode controls cursor visibility and confinement.
type CursorMode int

const (
	CursorNormal CursorMode = iota
	CursorHidden
	CursorDisabled // hidden and locked to the window
)

// MonitorEvent tells whether a monitor was attached or removed.
type MonitorEvent int

const (
	MonitorConnected MonitorEvent = iota
	MonitorDisconnected
)

func (e MonitorEvent) String() string {
	if e == MonitorConnected {
		return "connected"
	}
	return "disconnected"
}

// MonitorCallback is invoked for monitor hot-plug events.
type MonitorCallback func(monitor MonitorHandle, event MonitorEvent)

// WindowCallbacks holds the raw per-window callbacks a backend invokes from
// PollEvents. Nil fields are skipped. Modifier arguments are raw bitfields
// laid out as the input.Mod* constants.
type WindowCallbacks struct {
	Close           func()
	Pos             func(x, y int)
	Size            func(width, height int)
	FramebufferSize func(width, height int)
	Focus           func(focused bool)
	Drop            func(paths []string)
	CharMods        func(char rune, mods int)
	Key             func(key input.Key, scanCode int, action input.Action, mods int)
	CursorPos       func(x, y float64)
	CursorEnter     func(entered bool)
	MouseButton     func(button input.MouseButton, action input.Action, mods int)
	Scroll          func(dx, dy float64)
}

// Backend is the native windowing system the window package drives. All
// methods must be called from the thread that called Init; callbacks fire
// synchronously inside PollEvents and window mutation calls.
type Backend interface {
	Init() error
	Terminate()
	// LastError returns a human readable description of the most recent
	// error, or "" when there is none.
	LastError() string
	// PollEvents processes pending events without blocking.
	PollEvents()

	Monitors() []MonitorHandle
	PrimaryMonitor() MonitorHandle
	MonitorPosition(m MonitorHandle) (x, y int)
	MonitorModes(m MonitorHandle) []DisplayMode
	MonitorCurrentMode(m MonitorHandle) (DisplayMode, bool)
	SetMonitorCallback(cb MonitorCallback)

	CreateWindow(opts WindowOptions) (WindowHandle, error)
	DestroyWindow(w WindowHandle)
	// SetWindowCallbacks replaces every callback of w. Nil clears them.
	SetWindowCallbacks(w WindowHandle, cb *WindowCallbacks)
	MakeContextCurrent(w WindowHandle)

	WindowMonitor(w WindowHandle) MonitorHandle
	// SetWindowMonitor attaches w to m in fullscreen, or detaches it when m
	// is zero and places it at x, y with the given size.
	SetWindowMonitor(w WindowHandle, m MonitorHandle, x, y, width, height, refreshRate int) error
	WindowPosition(w WindowHandle) (x, y int)
	SetWindowPosition(w WindowHandle, x, y int)
	WindowSize(w WindowHandle) (width, height int)
	SetWindowSize(w WindowHandle, width, height int)
	FramebufferSize(w WindowHandle) (width, height int)
	SetWindowTitle(w WindowHandle, title string)
	SetShouldClose(w WindowHandle, close bool)
	RequestAttention(w WindowHandle)

	SetCursorPosition(w WindowHandle, x, y float64)
	SetCursorMode(w WindowHandle, mode CursorMode)
	ClipboardString(w WindowHandle) string

	SwapInterval(interval int)
	SwapBuffers(w WindowHandle)
}
