package input

import (
	"fmt"
	"strings"
)

// Binding is a key plus the held modifiers that must accompany it.
type Binding struct {
	Key  Key
	Mods int
}

var modifierNames = map[string]int{
	"shift":   ModShift,
	"ctrl":    ModControl,
	"control": ModControl,
	"alt":     ModAlt,
	"mod1":    ModAlt,
	"super":   ModSuper,
	"mod4":    ModSuper,
	"cmd":     ModSuper,
}

// ParseBinding parses a key sequence such as "ctrl+shift+F" or "Mod4-t".
// Both "+" and "-" separate tokens; the last token names the key.
func ParseBinding(seq string) (Binding, error) {
	seq = strings.TrimSpace(seq)
	if seq == "" {
		return Binding{}, fmt.Errorf("key sequence is empty")
	}

	tokens := strings.FieldsFunc(seq, func(r rune) bool { return r == '+' || r == '-' })
	if len(tokens) == 0 {
		return Binding{}, fmt.Errorf("key sequence %q has no key", seq)
	}

	var b Binding
	for _, tok := range tokens[:len(tokens)-1] {
		mod, ok := modifierNames[strings.ToLower(strings.TrimSpace(tok))]
		if !ok {
			return Binding{}, fmt.Errorf("key sequence %q: unknown modifier %q", seq, tok)
		}
		b.Mods |= mod
	}

	last := tokens[len(tokens)-1]
	key, ok := KeyByName(last)
	if !ok {
		return Binding{}, fmt.Errorf("key sequence %q: unknown key %q", seq, last)
	}
	b.Key = key
	return b, nil
}

// Matches reports whether a key event triggers the binding. Lock modifiers
// are ignored.
func (b Binding) Matches(key Key, mods KeyMods) bool {
	return key == b.Key && mods.Held() == b.Mods
}

func (b Binding) String() string {
	mods := DecodeKeyMods(b.Mods).String()
	if mods == "" {
		return b.Key.String()
	}
	return mods + "+" + b.Key.String()
}
