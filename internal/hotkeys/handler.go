package hotkeys

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/winkit/internal/input"
	"github.com/1broseidon/winkit/internal/window"
)

// Action names a built-in window action that can be bound to a key.
type Action string

const (
	ActionToggleFullscreen Action = "toggle_fullscreen"
	ActionCenter           Action = "center"
	ActionClose            Action = "close"
	ActionGrabMouse        Action = "grab_mouse"
	ActionReleaseMouse     Action = "release_mouse"
)

// Actions lists every built-in action in a stable order.
func Actions() []Action {
	return []Action{
		ActionToggleFullscreen,
		ActionCenter,
		ActionClose,
		ActionGrabMouse,
		ActionReleaseMouse,
	}
}

// IsAction reports whether name is a built-in action.
func IsAction(name string) bool {
	for _, a := range Actions() {
		if string(a) == name {
			return true
		}
	}
	return false
}

type hotkey struct {
	binding  input.Binding
	name     string
	callback func(w *window.Window)
}

// Handler is a window listener that runs callbacks for bound key presses.
// Repeats do not retrigger a binding.
type Handler struct {
	window.BaseListener

	logger  *slog.Logger
	mouse   *window.MouseHandler
	hotkeys []hotkey
}

// NewHandler creates a handler. mouse may be nil, in which case the mouse
// grab actions are rejected at registration.
func NewHandler(logger *slog.Logger, mouse *window.MouseHandler) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, mouse: mouse}
}

// Register binds a built-in action to a key sequence.
func (h *Handler) Register(action Action, keySequence string) error {
	var callback func(w *window.Window)
	switch action {
	case ActionToggleFullscreen:
		callback = (*window.Window).ToggleFullscreen
	case ActionCenter:
		callback = (*window.Window).Center
	case ActionClose:
		callback = func(w *window.Window) { w.SetCloseRequested(true) }
	case ActionGrabMouse, ActionReleaseMouse:
		if h.mouse == nil {
			return fmt.Errorf("action %s needs a mouse handler", action)
		}
		if action == ActionGrabMouse {
			callback = func(*window.Window) { h.mouse.GrabMouse() }
		} else {
			callback = func(*window.Window) { h.mouse.ReleaseMouse() }
		}
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	return h.register(string(action), keySequence, callback)
}

// RegisterAll binds every action in the map, stopping at the first error.
// Actions are registered in the order of Actions so matching is stable.
func (h *Handler) RegisterAll(bindings map[string]string) error {
	for _, action := range Actions() {
		seq, ok := bindings[string(action)]
		if !ok || seq == "" {
			continue
		}
		if err := h.Register(action, seq); err != nil {
			return fmt.Errorf("failed to register %s hotkey: %w", action, err)
		}
	}
	for name := range bindings {
		if !IsAction(name) {
			return fmt.Errorf("unknown action %q", name)
		}
	}
	return nil
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func(w *window.Window)) error {
	return h.register("func", keySequence, callback)
}

func (h *Handler) register(name, keySequence string, callback func(w *window.Window)) error {
	b, err := input.ParseBinding(keySequence)
	if err != nil {
		return err
	}
	h.hotkeys = append(h.hotkeys, hotkey{binding: b, name: name, callback: callback})
	h.logger.Debug("registered hotkey", "action", name, "binding", b)
	return nil
}

// Bindings returns the registered bindings in registration order.
func (h *Handler) Bindings() []input.Binding {
	out := make([]input.Binding, len(h.hotkeys))
	for i, hk := range h.hotkeys {
		out[i] = hk.binding
	}
	return out
}

func (h *Handler) KeyPressed(w *window.Window, key input.Key, _ int, mods input.KeyMods) {
	for _, hk := range h.hotkeys {
		if !hk.binding.Matches(key, mods) {
			continue
		}
		h.logger.Debug("hotkey triggered", "action", hk.name, "binding", hk.binding, "window", w)
		hk.callback(w)
	}
}
