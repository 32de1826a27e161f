package x11

import (
	"unicode/utf8"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/1broseidon/winkit/internal/input"
)

const (
	xkF1  xproto.Keysym = 0xffbe
	xkF25 xproto.Keysym = 0xffd6
	xkKP0 xproto.Keysym = 0xffb0
	xkKP9 xproto.Keysym = 0xffb9
)

var keysymKeys = map[xproto.Keysym]input.Key{
	0x0020: input.KeySpace,
	0x0027: input.KeyApostrophe,
	0x002c: input.KeyComma,
	0x002d: input.KeyMinus,
	0x002e: input.KeyPeriod,
	0x002f: input.KeySlash,
	0x003b: input.KeySemicolon,
	0x003d: input.KeyEqual,
	0x005b: input.KeyLeftBracket,
	0x005c: input.KeyBackslash,
	0x005d: input.KeyRightBracket,
	0x0060: input.KeyGraveAccent,

	0xff1b: input.KeyEscape,
	0xff0d: input.KeyEnter,
	0xff09: input.KeyTab,
	0xfe20: input.KeyTab, // ISO_Left_Tab
	0xff08: input.KeyBackspace,
	0xff63: input.KeyInsert,
	0xffff: input.KeyDelete,
	0xff53: input.KeyRight,
	0xff51: input.KeyLeft,
	0xff54: input.KeyDown,
	0xff52: input.KeyUp,
	0xff55: input.KeyPageUp,
	0xff56: input.KeyPageDown,
	0xff50: input.KeyHome,
	0xff57: input.KeyEnd,
	0xffe5: input.KeyCapsLock,
	0xff14: input.KeyScrollLock,
	0xff7f: input.KeyNumLock,
	0xff61: input.KeyPrintScreen,
	0xff13: input.KeyPause,

	0xffae: input.KeyKPDecimal,
	0xffaf: input.KeyKPDivide,
	0xffaa: input.KeyKPMultiply,
	0xffad: input.KeyKPSubtract,
	0xffab: input.KeyKPAdd,
	0xff8d: input.KeyKPEnter,
	0xffbd: input.KeyKPEqual,

	0xffe1: input.KeyLeftShift,
	0xffe3: input.KeyLeftControl,
	0xffe9: input.KeyLeftAlt,
	0xffe7: input.KeyLeftAlt, // Meta_L
	0xffeb: input.KeyLeftSuper,
	0xffe2: input.KeyRightShift,
	0xffe4: input.KeyRightControl,
	0xffea: input.KeyRightAlt,
	0xffe8: input.KeyRightAlt, // Meta_R
	0xfe03: input.KeyRightAlt, // ISO_Level3_Shift (AltGr)
	0xffec: input.KeyRightSuper,
	0xff67: input.KeyMenu,
}

// KeyForKeysym maps a keysym to a layout-independent key code, or
// input.KeyUnknown.
func KeyForKeysym(sym xproto.Keysym) input.Key {
	switch {
	case sym >= 'a' && sym <= 'z':
		return input.KeyA + input.Key(sym-'a')
	case sym >= 'A' && sym <= 'Z':
		return input.KeyA + input.Key(sym-'A')
	case sym >= '0' && sym <= '9':
		return input.Key0 + input.Key(sym-'0')
	case sym >= xkF1 && sym <= xkF25:
		return input.KeyF1 + input.Key(sym-xkF1)
	case sym >= xkKP0 && sym <= xkKP9:
		return input.KeyKP0 + input.Key(sym-xkKP0)
	}
	if k, ok := keysymKeys[sym]; ok {
		return k
	}
	return input.KeyUnknown
}

func isKeypad(sym xproto.Keysym) bool {
	switch {
	case sym >= xkKP0 && sym <= xkKP9:
		return true
	case sym == 0xffae, sym == 0xffac, sym == 0xffbd, sym == 0xff8d:
		return true
	}
	return false
}

// Key translates a keycode. Keypad keys are looked up in the NumLock column
// first so digits and navigation keys on the keypad stay distinct.
func (c *Connection) Key(code xproto.Keycode) input.Key {
	if sym := keybind.KeysymGet(c.XUtil, code, 1); isKeypad(sym) {
		return KeyForKeysym(sym)
	}
	return KeyForKeysym(keybind.KeysymGet(c.XUtil, code, 0))
}

// Rune returns the character typed by a key press in the given modifier
// state, or false for keys that type nothing.
func (c *Connection) Rune(state uint16, code xproto.Keycode) (rune, bool) {
	if r, ok := printable(keybind.LookupString(c.XUtil, state, code)); ok {
		return r, true
	}
	column := byte(0)
	if state&xproto.ModMaskShift != 0 {
		column = 1
	}
	return keysymRune(keybind.KeysymGet(c.XUtil, code, column))
}

func printable(s string) (rune, bool) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, validChar(r)
}

// keysymRune converts Latin-1 and Unicode keysyms to runes.
func keysymRune(sym xproto.Keysym) (rune, bool) {
	var r rune
	switch {
	case sym >= 0x20 && sym <= 0x7e, sym >= 0xa0 && sym <= 0xff:
		r = rune(sym)
	case sym&0xff000000 == 0x01000000:
		r = rune(sym & 0x00ffffff)
	default:
		return 0, false
	}
	return r, validChar(r)
}

func validChar(r rune) bool {
	return r >= 32 && (r <= 126 || r >= 160) && utf8.ValidRune(r)
}

// ModsFromState converts an X modifier state into input.Mod* bits.
func ModsFromState(state uint16) int {
	mods := 0
	if state&xproto.ModMaskShift != 0 {
		mods |= input.ModShift
	}
	if state&xproto.ModMaskControl != 0 {
		mods |= input.ModControl
	}
	if state&xproto.ModMask1 != 0 {
		mods |= input.ModAlt
	}
	if state&xproto.ModMask4 != 0 {
		mods |= input.ModSuper
	}
	if state&xproto.ModMaskLock != 0 {
		mods |= input.ModCapsLock
	}
	if state&xproto.ModMask2 != 0 {
		mods |= input.ModNumLock
	}
	return mods
}
