package window

import (
	"fmt"

	"github.com/1broseidon/winkit/internal/platform"
)

// FullscreenHook runs before a realized window changes fullscreen state,
// after the target monitor has been resolved. Platforms that need extra work
// around the transition (presentation options, compositor hints) do it here.
// A non-nil error aborts the transition.
type FullscreenHook interface {
	BeforeFullscreen(w *Window, enter bool) error
}

// FullscreenHookFunc adapts a function to FullscreenHook.
type FullscreenHookFunc func(w *Window, enter bool) error

func (f FullscreenHookFunc) BeforeFullscreen(w *Window, enter bool) error { return f(w, enter) }

// SetFullscreenHook overrides the manager's hook for this window. A nil hook
// falls back to the manager's.
func (w *Window) SetFullscreenHook(hook FullscreenHook) { w.hook = hook }

func (w *Window) fullscreenHook() FullscreenHook {
	if w.hook != nil {
		return w.hook
	}
	return w.manager.hook
}

// SetFullscreen enters or leaves fullscreen. On an unrealized window only the
// flag changes and takes effect at Realize. Entering attaches the window to
// its best monitor at the monitor's current mode; leaving restores the
// windowed size centered on that monitor. When no monitor is available the
// flag is cleared. A failed transition is logged and the flag keeps its
// previous value.
func (w *Window) SetFullscreen(fullscreen bool) {
	if w.freed {
		return
	}
	prev := w.fullscreen
	w.fullscreen = fullscreen
	if w.handle == 0 {
		return
	}

	if err := w.applyFullscreen(fullscreen); err != nil {
		w.fullscreen = prev
		w.manager.logger.Error("fullscreen transition failed", "window", w, "error", err)
		return
	}
	w.manager.logger.Debug("fullscreen changed", "window", w, "fullscreen", w.fullscreen)
}

// ToggleFullscreen flips the fullscreen state.
func (w *Window) ToggleFullscreen() { w.SetFullscreen(!w.fullscreen) }

func (w *Window) applyFullscreen(enter bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &FullscreenTransitionError{Enter: enter, Err: fmt.Errorf("backend panic: %v", r)}
		}
	}()

	mon := w.manager.FindBestMonitor(w)
	if mon == nil {
		w.fullscreen = false
		w.manager.logger.Warn("no monitor available for fullscreen", "window", w)
		return nil
	}

	if hook := w.fullscreenHook(); hook != nil {
		if err := hook.BeforeFullscreen(w, enter); err != nil {
			return &FullscreenTransitionError{Enter: enter, Err: err}
		}
	}

	backend := w.manager.backend
	mode := mon.CurrentMode()
	if enter {
		err = backend.SetWindowMonitor(w.handle, mon.Handle(), 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	} else {
		x, y := centeredIn(mon, w.windowedWidth, w.windowedHeight)
		err = backend.SetWindowMonitor(w.handle, 0, x, y, w.windowedWidth, w.windowedHeight, platform.DontCare)
	}
	if err != nil {
		return &FullscreenTransitionError{Enter: enter, Err: err}
	}
	return nil
}
