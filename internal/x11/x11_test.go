package x11

import (
	"testing"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/winkit/internal/input"
)

func TestKeyForKeysym(t *testing.T) {
	tests := []struct {
		sym  xproto.Keysym
		want input.Key
	}{
		{'a', input.KeyA},
		{'Z', input.KeyZ},
		{'7', input.Key7},
		{' ', input.KeySpace},
		{0xffbe, input.KeyF1},
		{0xffc9, input.KeyF12},
		{0xffd6, input.KeyF25},
		{0xffb3, input.KeyKP0 + 3},
		{0xff0d, input.KeyEnter},
		{0xfe20, input.KeyTab},
		{0xffe7, input.KeyLeftAlt},
		{0xfe03, input.KeyRightAlt},
		{0xff52, input.KeyUp},
		{0x0100, input.KeyUnknown},
		{0, input.KeyUnknown},
	}

	for _, tt := range tests {
		if got := KeyForKeysym(tt.sym); got != tt.want {
			t.Fatalf("KeyForKeysym(%#x) = %d, want %d", tt.sym, got, tt.want)
		}
	}
}

func TestKeysymRune(t *testing.T) {
	tests := []struct {
		sym  xproto.Keysym
		want rune
		ok   bool
	}{
		{'q', 'q', true},
		{0xe9, 'é', true},
		{0x010020ac, '€', true},
		{0x0100001f, 0, false},
		{0xff0d, 0, false},
		{0x7f, 0, false},
	}

	for _, tt := range tests {
		got, ok := keysymRune(tt.sym)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Fatalf("keysymRune(%#x) = %q, %v; want %q, %v", tt.sym, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPrintable(t *testing.T) {
	if r, ok := printable("x"); !ok || r != 'x' {
		t.Fatalf("printable(x) = %q, %v", r, ok)
	}
	if r, ok := printable("ß"); !ok || r != 'ß' {
		t.Fatalf("printable(ß) = %q, %v", r, ok)
	}
	for _, s := range []string{"", "Return", "\t", "\x7f"} {
		if _, ok := printable(s); ok {
			t.Fatalf("printable(%q) should be false", s)
		}
	}
}

func TestModsFromState(t *testing.T) {
	state := uint16(xproto.ModMaskShift | xproto.ModMask1 | xproto.ModMask2)
	want := input.ModShift | input.ModAlt | input.ModNumLock
	if got := ModsFromState(state); got != want {
		t.Fatalf("ModsFromState = %#x, want %#x", got, want)
	}
	if got := ModsFromState(xproto.ModMaskControl | xproto.ModMask4 | xproto.ModMaskLock); got != input.ModControl|input.ModSuper|input.ModCapsLock {
		t.Fatalf("ModsFromState = %#x", got)
	}
	if got := ModsFromState(0); got != 0 {
		t.Fatalf("ModsFromState(0) = %#x", got)
	}
}

func TestRefreshRate(t *testing.T) {
	// 1920x1080@60 CEA timings
	mi := randr.ModeInfo{DotClock: 148500000, Htotal: 2200, Vtotal: 1125}
	if got := refreshRate(mi); got != 60 {
		t.Fatalf("refreshRate = %d, want 60", got)
	}

	mi.ModeFlags = randr.ModeFlagDoubleScan
	if got := refreshRate(mi); got != 30 {
		t.Fatalf("doublescan refreshRate = %d, want 30", got)
	}

	mi.ModeFlags = randr.ModeFlagInterlace
	if got := refreshRate(mi); got != 120 {
		t.Fatalf("interlaced refreshRate = %d, want 120", got)
	}

	if got := refreshRate(randr.ModeInfo{DotClock: 1}); got != 0 {
		t.Fatalf("unknown timings refreshRate = %d, want 0", got)
	}
}

func TestModeFromInfoRotated(t *testing.T) {
	mi := randr.ModeInfo{Id: 7, Width: 1920, Height: 1080}
	m := modeFromInfo(mi, true)
	if m.ID != 7 || m.Width != 1080 || m.Height != 1920 {
		t.Fatalf("rotated mode = %+v", m)
	}
	m = modeFromInfo(mi, false)
	if m.Width != 1920 || m.Height != 1080 {
		t.Fatalf("mode = %+v", m)
	}
}

func TestSplitDepth(t *testing.T) {
	tests := []struct {
		depth            int
		red, green, blue int
	}{
		{24, 8, 8, 8},
		{32, 8, 8, 8},
		{16, 5, 6, 5},
		{15, 5, 5, 5},
		{8, 3, 3, 2},
	}

	for _, tt := range tests {
		r, g, b := SplitDepth(tt.depth)
		if r != tt.red || g != tt.green || b != tt.blue {
			t.Fatalf("SplitDepth(%d) = %d,%d,%d; want %d,%d,%d", tt.depth, r, g, b, tt.red, tt.green, tt.blue)
		}
	}
}
