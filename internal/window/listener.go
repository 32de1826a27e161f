package window

import "github.com/1broseidon/winkit/internal/input"

// Listener receives the events of a Window. Events are delivered
// synchronously, in registration order, from Manager.Update and the window
// mutation calls that cause them. Embed BaseListener to implement only the
// methods you need.
//
// Listeners are compared with == by RemoveListener, so register pointers.
type Listener interface {
	WindowClosed(w *Window)
	WindowMoved(w *Window, x, y int)
	WindowResized(w *Window, width, height int)
	FramebufferResized(w *Window, width, height int)
	FocusChanged(w *Window, focused bool)
	FilesDropped(w *Window, paths []string)
	CharTyped(w *Window, char rune, mods input.KeyMods)
	KeyPressed(w *Window, key input.Key, scanCode int, mods input.KeyMods)
	KeyReleased(w *Window, key input.Key, scanCode int, mods input.KeyMods)
	KeyRepeated(w *Window, key input.Key, scanCode int, mods input.KeyMods)
	MouseMoved(w *Window, x, y float64)
	CursorEntered(w *Window, entered bool)
	MousePressed(w *Window, button input.MouseButton, mods input.KeyMods)
	MouseReleased(w *Window, button input.MouseButton, mods input.KeyMods)
	// MouseScrolled reports horizontal (dx) and vertical (dy) wheel motion.
	MouseScrolled(w *Window, dx, dy float64)
}

// BaseListener implements Listener with no-op methods.
type BaseListener struct{}

var _ Listener = BaseListener{}

func (BaseListener) WindowClosed(*Window)                                    {}
func (BaseListener) WindowMoved(*Window, int, int)                           {}
func (BaseListener) WindowResized(*Window, int, int)                         {}
func (BaseListener) FramebufferResized(*Window, int, int)                    {}
func (BaseListener) FocusChanged(*Window, bool)                              {}
func (BaseListener) FilesDropped(*Window, []string)                          {}
func (BaseListener) CharTyped(*Window, rune, input.KeyMods)                  {}
func (BaseListener) KeyPressed(*Window, input.Key, int, input.KeyMods)       {}
func (BaseListener) KeyReleased(*Window, input.Key, int, input.KeyMods)      {}
func (BaseListener) KeyRepeated(*Window, input.Key, int, input.KeyMods)      {}
func (BaseListener) MouseMoved(*Window, float64, float64)                    {}
func (BaseListener) CursorEntered(*Window, bool)                             {}
func (BaseListener) MousePressed(*Window, input.MouseButton, input.KeyMods)  {}
func (BaseListener) MouseReleased(*Window, input.MouseButton, input.KeyMods) {}
func (BaseListener) MouseScrolled(*Window, float64, float64)                 {}
