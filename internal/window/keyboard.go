package window

import "github.com/1broseidon/winkit/internal/input"

// KeyboardHandler tracks which keys are held. Keys the backend cannot map
// to a key code (input.KeyUnknown) are tracked by scan code instead.
type KeyboardHandler struct {
	BaseListener

	keys     input.Bitset
	scanKeys input.Bitset
}

// NewKeyboardHandler returns a handler with nothing pressed. Register it with
// Window.AddListener, or use Window.AttachKeyboardHandler.
func NewKeyboardHandler() *KeyboardHandler {
	return &KeyboardHandler{}
}

func (h *KeyboardHandler) KeyPressed(_ *Window, key input.Key, scanCode int, _ input.KeyMods) {
	h.put(key, scanCode, true)
}

func (h *KeyboardHandler) KeyReleased(_ *Window, key input.Key, scanCode int, _ input.KeyMods) {
	h.put(key, scanCode, false)
}

func (h *KeyboardHandler) put(key input.Key, scanCode int, down bool) {
	if key == input.KeyUnknown {
		h.scanKeys.Put(scanCode, down)
		return
	}
	h.keys.Put(int(key), down)
}

// IsPressed reports whether key is held, consulting scanCode when key is
// input.KeyUnknown.
func (h *KeyboardHandler) IsPressed(key input.Key, scanCode int) bool {
	if key == input.KeyUnknown {
		return h.scanKeys.Test(scanCode)
	}
	return h.keys.Test(int(key))
}

// IsKeyPressed reports whether key is held. input.KeyUnknown is never
// pressed.
func (h *KeyboardHandler) IsKeyPressed(key input.Key) bool {
	if key == input.KeyUnknown {
		return false
	}
	return h.keys.Test(int(key))
}

// PressedKeys returns the held key codes in ascending order.
func (h *KeyboardHandler) PressedKeys() []input.Key {
	var out []input.Key
	h.keys.ForEach(func(bit int) { out = append(out, input.Key(bit)) })
	return out
}
