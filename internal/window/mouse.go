package window

import (
	"github.com/1broseidon/winkit/internal/input"
	"github.com/1broseidon/winkit/internal/platform"
)

// MouseHandler tracks the cursor and buttons of one window. While the mouse
// is grabbed the cursor is hidden and locked, and movement accumulates until
// it is drained with TakeAccumulatedDelta.
type MouseHandler struct {
	BaseListener

	window  *Window
	buttons input.Bitset

	x, y           float64
	dx, dy         float64
	accumX, accumY float64

	grabbed  bool
	suppress bool
}

// NewMouseHandler returns a handler bound to w. It still has to be
// registered with w.AddListener; Window.AttachMouseHandler does both.
func NewMouseHandler(w *Window) *MouseHandler {
	return &MouseHandler{window: w}
}

func (h *MouseHandler) MouseMoved(_ *Window, x, y float64) {
	h.dx, h.dy = x-h.x, y-h.y
	h.x, h.y = x, y
	if h.grabbed {
		h.accumX += h.dx
		h.accumY += h.dy
	}
	if h.suppress {
		h.dx, h.dy = 0, 0
		h.accumX, h.accumY = 0, 0
		h.suppress = false
	}
}

func (h *MouseHandler) CursorEntered(_ *Window, entered bool) {
	if entered {
		h.suppress = true
	}
}

func (h *MouseHandler) MousePressed(_ *Window, button input.MouseButton, _ input.KeyMods) {
	if validButton(button) {
		h.buttons.Set(int(button))
	}
}

func (h *MouseHandler) MouseReleased(_ *Window, button input.MouseButton, _ input.KeyMods) {
	if validButton(button) {
		h.buttons.Clear(int(button))
	}
}

func validButton(b input.MouseButton) bool {
	return b >= 0 && b <= input.MouseButtonLast
}

// ButtonPressed reports whether button is held. Out of range buttons are
// never pressed.
func (h *MouseHandler) ButtonPressed(button input.MouseButton) bool {
	return validButton(button) && h.buttons.Test(int(button))
}

// GrabMouse hides and locks the cursor at the window center. It does nothing
// unless the window is focused and the mouse is not already grabbed.
func (h *MouseHandler) GrabMouse() {
	if h.grabbed || !h.window.Focused() {
		return
	}
	h.grabbed = true
	h.recenter()
	h.window.SetCursorMode(platform.CursorDisabled)
	h.suppress = true
	h.accumX, h.accumY = 0, 0
}

// ReleaseMouse recenters and shows the cursor again.
func (h *MouseHandler) ReleaseMouse() {
	if !h.grabbed {
		return
	}
	h.grabbed = false
	h.recenter()
	h.window.SetCursorMode(platform.CursorNormal)
}

func (h *MouseHandler) recenter() {
	width, height := h.window.Size()
	h.x, h.y = float64(width)/2, float64(height)/2
	h.window.SetCursorPosition(h.x, h.y)
}

// SuppressNextMovement zeroes the delta of the next move event, so a cursor
// warp does not register as motion.
func (h *MouseHandler) SuppressNextMovement() { h.suppress = true }

// Grabbed reports whether the mouse is grabbed.
func (h *MouseHandler) Grabbed() bool { return h.grabbed }

// Position returns the last cursor position in window coordinates.
func (h *MouseHandler) Position() (x, y float64) { return h.x, h.y }

// Delta returns the movement of the last move event.
func (h *MouseHandler) Delta() (dx, dy float64) { return h.dx, h.dy }

// TakeAccumulatedDelta returns the movement accumulated while grabbed since
// the previous call, and resets it to zero.
func (h *MouseHandler) TakeAccumulatedDelta() (dx, dy float64) {
	dx, dy = h.accumX, h.accumY
	h.accumX, h.accumY = 0, 0
	return dx, dy
}

// TakeAccumulatedDX drains only the horizontal accumulator.
func (h *MouseHandler) TakeAccumulatedDX() float64 {
	dx := h.accumX
	h.accumX = 0
	return dx
}

// TakeAccumulatedDY drains only the vertical accumulator.
func (h *MouseHandler) TakeAccumulatedDY() float64 {
	dy := h.accumY
	h.accumY = 0
	return dy
}
