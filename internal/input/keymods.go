package input

import "strings"

// Modifier bits as reported by the backend in key, char and mouse button events.
const (
	ModShift    = 0x0001
	ModControl  = 0x0002
	ModAlt      = 0x0004
	ModSuper    = 0x0008
	ModCapsLock = 0x0010
	ModNumLock  = 0x0020
)

// KeyMods is the decoded form of a modifier bitfield.
type KeyMods struct {
	Raw      int
	Shift    bool
	Control  bool
	Alt      bool
	Super    bool // Windows key on Windows, Command on macOS
	CapsLock bool
	NumLock  bool
}

// DecodeKeyMods decodes a raw modifier bitfield.
func DecodeKeyMods(raw int) KeyMods {
	return KeyMods{
		Raw:      raw,
		Shift:    raw&ModShift != 0,
		Control:  raw&ModControl != 0,
		Alt:      raw&ModAlt != 0,
		Super:    raw&ModSuper != 0,
		CapsLock: raw&ModCapsLock != 0,
		NumLock:  raw&ModNumLock != 0,
	}
}

// Held returns the raw bits of the held modifiers (shift, control, alt,
// super), ignoring lock state.
func (m KeyMods) Held() int {
	return m.Raw & (ModShift | ModControl | ModAlt | ModSuper)
}

// String returns the held modifiers joined by "+", e.g. "ctrl+shift".
func (m KeyMods) String() string {
	var parts []string
	if m.Control {
		parts = append(parts, "ctrl")
	}
	if m.Alt {
		parts = append(parts, "alt")
	}
	if m.Shift {
		parts = append(parts, "shift")
	}
	if m.Super {
		parts = append(parts, "super")
	}
	return strings.Join(parts, "+")
}
