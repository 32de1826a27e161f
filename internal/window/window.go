package window

import (
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	"github.com/1broseidon/winkit/internal/input"
	"github.com/1broseidon/winkit/internal/platform"
)

// Window is a top-level window owned by a Manager. It starts unrealized
// (no native handle), becomes live after Realize and is terminal after
// Free. Mutations of an unrealized or freed window are ignored.
type Window struct {
	manager   *Manager
	handle    platform.WindowHandle
	listeners []Listener
	hook      FullscreenHook

	title                         string
	x, y                          int
	physicalWidth, physicalHeight int
	// windowedWidth and windowedHeight are restored when leaving fullscreen.
	// They are never written while fullscreen is set.
	windowedWidth, windowedHeight int
	fbWidth, fbHeight             int

	fullscreen     bool
	swapInterval   int
	focused        bool
	closeRequested bool
	freed          bool
}

func newWindow(m *Manager, width, height int, fullscreen bool) *Window {
	return &Window{
		manager:        m,
		physicalWidth:  width,
		physicalHeight: height,
		windowedWidth:  width,
		windowedHeight: height,
		fullscreen:     fullscreen,
	}
}

// AddListener appends l to the listeners notified of window events.
func (w *Window) AddListener(l Listener) {
	w.listeners = append(w.listeners, l)
	w.manager.logger.Debug("added listener", "window", w, "listener", fmt.Sprintf("%T", l))
}

// RemoveListener removes the first registration of l. Removing a listener
// from inside an event callback takes effect for the next event.
func (w *Window) RemoveListener(l Listener) {
	i := slices.Index(w.listeners, l)
	if i < 0 {
		return
	}
	// Copy so a dispatch in progress keeps iterating its own snapshot.
	w.listeners = slices.Delete(slices.Clone(w.listeners), i, i+1)
	w.manager.logger.Debug("removed listener", "window", w, "listener", fmt.Sprintf("%T", l))
}

func (w *Window) notify(fn func(Listener)) {
	for _, l := range w.listeners {
		fn(l)
	}
}

// AttachMouseHandler creates a MouseHandler for w and registers it.
func (w *Window) AttachMouseHandler() *MouseHandler {
	h := NewMouseHandler(w)
	w.AddListener(h)
	return h
}

// AttachKeyboardHandler creates a KeyboardHandler and registers it.
func (w *Window) AttachKeyboardHandler() *KeyboardHandler {
	h := NewKeyboardHandler()
	w.AddListener(h)
	return h
}

// Realize creates the native window. A window flagged fullscreen opens on
// its best monitor at that monitor's current mode; otherwise it is centered.
// share, when non-nil, names a live window to share a graphics context with.
func (w *Window) Realize(title string, share *Window) error {
	if w.freed {
		return ErrWindowFreed
	}
	if w.handle != 0 {
		return ErrWindowRealized
	}

	backend := w.manager.backend
	var monitor platform.MonitorHandle
	if w.fullscreen {
		if mon := w.manager.FindBestMonitor(w); mon != nil {
			mode := mon.CurrentMode()
			w.physicalWidth, w.physicalHeight = mode.Width, mode.Height
			monitor = mon.Handle()
		} else {
			w.manager.logger.Warn("no monitor available, opening windowed", "title", title)
			w.fullscreen = false
		}
	}

	opts := platform.WindowOptions{
		Width:     w.physicalWidth,
		Height:    w.physicalHeight,
		Title:     title,
		Monitor:   monitor,
		ClientAPI: w.manager.api,
	}
	if share != nil {
		opts.Share = share.handle
	}

	handle, err := backend.CreateWindow(opts)
	if err != nil || handle == 0 {
		return &WindowCreationError{Title: title, Detail: backend.LastError(), Err: err}
	}
	w.handle = handle
	w.title = title

	// The window manager may not honour the requested size.
	w.physicalWidth, w.physicalHeight = backend.WindowSize(handle)
	if !w.fullscreen {
		w.windowedWidth, w.windowedHeight = w.physicalWidth, w.physicalHeight
		w.Center()
	}
	w.x, w.y = backend.WindowPosition(handle)

	w.focused = true
	backend.RequestAttention(handle)
	w.fbWidth, w.fbHeight = backend.FramebufferSize(handle)
	backend.MakeContextCurrent(handle)

	backend.SetWindowCallbacks(handle, w.callbacks())
	w.manager.logger.Debug("initialized window", "window", w)
	return nil
}

func (w *Window) callbacks() *platform.WindowCallbacks {
	return &platform.WindowCallbacks{
		Close: func() {
			w.closeRequested = true
			w.notify(func(l Listener) { l.WindowClosed(w) })
		},
		Pos: func(x, y int) {
			w.x, w.y = x, y
			w.notify(func(l Listener) { l.WindowMoved(w, x, y) })
		},
		Size: func(width, height int) {
			w.physicalWidth, w.physicalHeight = width, height
			if !w.fullscreen {
				w.windowedWidth, w.windowedHeight = width, height
			}
			w.notify(func(l Listener) { l.WindowResized(w, width, height) })
		},
		FramebufferSize: func(width, height int) {
			w.fbWidth, w.fbHeight = width, height
			w.notify(func(l Listener) { l.FramebufferResized(w, width, height) })
		},
		Focus: func(focused bool) {
			w.focused = focused
			w.notify(func(l Listener) { l.FocusChanged(w, focused) })
		},
		Drop: func(names []string) {
			paths := make([]string, 0, len(names))
			for _, name := range names {
				paths = append(paths, droppedPath(name))
			}
			w.notify(func(l Listener) { l.FilesDropped(w, paths) })
		},
		CharMods: func(char rune, mods int) {
			km := input.DecodeKeyMods(mods)
			w.notify(func(l Listener) { l.CharTyped(w, char, km) })
		},
		Key: func(key input.Key, scanCode int, action input.Action, mods int) {
			km := input.DecodeKeyMods(mods)
			switch action {
			case input.Press:
				w.notify(func(l Listener) { l.KeyPressed(w, key, scanCode, km) })
			case input.Release:
				w.notify(func(l Listener) { l.KeyReleased(w, key, scanCode, km) })
			case input.Repeat:
				w.notify(func(l Listener) { l.KeyRepeated(w, key, scanCode, km) })
			}
		},
		CursorPos: func(x, y float64) {
			w.notify(func(l Listener) { l.MouseMoved(w, x, y) })
		},
		CursorEnter: func(entered bool) {
			w.notify(func(l Listener) { l.CursorEntered(w, entered) })
		},
		MouseButton: func(button input.MouseButton, action input.Action, mods int) {
			km := input.DecodeKeyMods(mods)
			switch action {
			case input.Press:
				w.notify(func(l Listener) { l.MousePressed(w, button, km) })
			case input.Release:
				w.notify(func(l Listener) { l.MouseReleased(w, button, km) })
			}
		},
		Scroll: func(dx, dy float64) {
			w.notify(func(l Listener) { l.MouseScrolled(w, dx, dy) })
		},
	}
}

// droppedPath turns a native drop entry (a path or a file:// URI) into a
// clean OS path.
func droppedPath(name string) string {
	if strings.HasPrefix(name, "file://") {
		if u, err := url.Parse(name); err == nil {
			name = u.Path
		}
	}
	return filepath.Clean(filepath.FromSlash(name))
}

// SwapBuffers applies the swap interval and presents the frame.
func (w *Window) SwapBuffers() {
	if w.handle == 0 {
		return
	}
	w.manager.backend.SwapInterval(w.swapInterval)
	w.manager.backend.SwapBuffers(w.handle)
}

// Center moves the window to the middle of its best monitor.
func (w *Window) Center() {
	mon := w.manager.FindBestMonitor(w)
	if mon == nil {
		return
	}
	x, y := centeredIn(mon, w.physicalWidth, w.physicalHeight)
	w.SetPosition(x, y)
}

// Free destroys the native window and detaches it from the manager. It is
// safe to call more than once.
func (w *Window) Free() {
	if w.handle != 0 {
		w.manager.backend.SetWindowCallbacks(w.handle, nil)
		w.manager.backend.DestroyWindow(w.handle)
		w.manager.logger.Debug("freed window", "window", w)
	}
	w.handle = 0
	w.closeRequested = true
	w.freed = true
	w.manager.removeWindow(w)
}

// Handle returns the native handle, or 0 when unrealized or freed.
func (w *Window) Handle() platform.WindowHandle { return w.handle }

// Manager returns the owning manager.
func (w *Window) Manager() *Manager { return w.manager }

// Title returns the title given to Realize or SetTitle.
func (w *Window) Title() string { return w.title }

// Position returns the absolute position of the window.
func (w *Window) Position() (x, y int) { return w.x, w.y }

// X returns the absolute x position of the window.
func (w *Window) X() int { return w.x }

// Y returns the absolute y position of the window.
func (w *Window) Y() int { return w.y }

// Size returns the current physical size. Use FramebufferSize for drawing.
func (w *Window) Size() (width, height int) { return w.physicalWidth, w.physicalHeight }

// WindowedSize returns the size restored when fullscreen is left.
func (w *Window) WindowedSize() (width, height int) { return w.windowedWidth, w.windowedHeight }

// FramebufferSize returns the drawable size in pixels.
func (w *Window) FramebufferSize() (width, height int) { return w.fbWidth, w.fbHeight }

// Fullscreen reports whether the window is fullscreen.
func (w *Window) Fullscreen() bool { return w.fullscreen }

// SwapInterval returns the number of monitor refreshes SwapBuffers waits for.
func (w *Window) SwapInterval() int { return w.swapInterval }

// Vsync reports whether the swap interval is positive.
func (w *Window) Vsync() bool { return w.swapInterval > 0 }

// Focused reports whether the window has input focus.
func (w *Window) Focused() bool { return w.focused }

// CloseRequested reports whether the window was asked to close.
func (w *Window) CloseRequested() bool { return w.closeRequested }

// Freed reports whether Free has been called.
func (w *Window) Freed() bool { return w.freed }

// Clipboard returns the clipboard text, or "" when unavailable.
func (w *Window) Clipboard() string {
	if w.handle == 0 {
		return ""
	}
	return w.manager.backend.ClipboardString(w.handle)
}

// SetSwapInterval sets the frames to wait per swap; negative values become 0.
func (w *Window) SetSwapInterval(interval int) {
	w.swapInterval = max(0, interval)
}

// SetVsync sets the swap interval to 1 or 0.
func (w *Window) SetVsync(vsync bool) {
	if vsync {
		w.swapInterval = 1
	} else {
		w.swapInterval = 0
	}
}

// SetTitle changes the window title.
func (w *Window) SetTitle(title string) {
	if w.handle == 0 {
		return
	}
	w.manager.backend.SetWindowTitle(w.handle, title)
	w.title = title
}

// SetPosition moves the window. The stored position follows the backend's
// move event.
func (w *Window) SetPosition(x, y int) {
	if w.handle == 0 {
		return
	}
	w.manager.backend.SetWindowPosition(w.handle, x, y)
}

// SetSize resizes the window. The stored size follows the backend's resize
// event.
func (w *Window) SetSize(width, height int) {
	if w.handle == 0 {
		return
	}
	w.manager.backend.SetWindowSize(w.handle, width, height)
}

// SetCloseRequested sets or clears the close request flag.
func (w *Window) SetCloseRequested(close bool) {
	if w.handle == 0 {
		return
	}
	w.closeRequested = close
	w.manager.backend.SetShouldClose(w.handle, close)
}

// SetCursorPosition warps the cursor to window coordinates x, y.
func (w *Window) SetCursorPosition(x, y float64) {
	if w.handle == 0 {
		return
	}
	w.manager.backend.SetCursorPosition(w.handle, x, y)
}

// SetCursorMode changes cursor visibility and confinement.
func (w *Window) SetCursorMode(mode platform.CursorMode) {
	if w.handle == 0 {
		return
	}
	w.manager.backend.SetCursorMode(w.handle, mode)
}

func (w *Window) String() string {
	name := w.title
	if name == "" {
		name = fmt.Sprintf("%d", w.handle)
	}
	return fmt.Sprintf("Window[%s %d,%d %dx%d]", name, w.x, w.y, w.physicalWidth, w.physicalHeight)
}
