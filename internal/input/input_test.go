package input

import "testing"

func TestDecodeKeyMods_ZeroHasNoModifiers(t *testing.T) {
	m := DecodeKeyMods(0)
	if m.Shift || m.Control || m.Alt || m.Super || m.CapsLock || m.NumLock {
		t.Fatalf("expected all modifiers false, got %+v", m)
	}
	if m.String() != "" {
		t.Fatalf("expected empty string, got %q", m.String())
	}
}

func TestDecodeKeyMods_SingleBit(t *testing.T) {
	tests := []struct {
		name string
		mask int
		get  func(KeyMods) bool
	}{
		{"shift", ModShift, func(m KeyMods) bool { return m.Shift }},
		{"control", ModControl, func(m KeyMods) bool { return m.Control }},
		{"alt", ModAlt, func(m KeyMods) bool { return m.Alt }},
		{"super", ModSuper, func(m KeyMods) bool { return m.Super }},
		{"caps", ModCapsLock, func(m KeyMods) bool { return m.CapsLock }},
		{"numlock", ModNumLock, func(m KeyMods) bool { return m.NumLock }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DecodeKeyMods(tt.mask)
			if !tt.get(m) {
				t.Fatalf("expected %s to be set for mask 0x%x", tt.name, tt.mask)
			}
			set := 0
			for _, b := range []bool{m.Shift, m.Control, m.Alt, m.Super, m.CapsLock, m.NumLock} {
				if b {
					set++
				}
			}
			if set != 1 {
				t.Fatalf("expected exactly one modifier, got %d (%+v)", set, m)
			}
			if m.Raw != tt.mask {
				t.Fatalf("expected raw 0x%x, got 0x%x", tt.mask, m.Raw)
			}
		})
	}
}

func TestKeyMods_HeldIgnoresLocks(t *testing.T) {
	m := DecodeKeyMods(ModControl | ModCapsLock | ModNumLock)
	if m.Held() != ModControl {
		t.Fatalf("expected held=ctrl, got 0x%x", m.Held())
	}
}

func TestBitset_SetClearTest(t *testing.T) {
	var b Bitset
	if b.Test(5) {
		t.Fatalf("empty bitset reports bit 5")
	}
	b.Set(5)
	b.Set(200)
	b.Set(-1)
	if !b.Test(5) || !b.Test(200) {
		t.Fatalf("expected bits 5 and 200 set")
	}
	if b.Test(-1) {
		t.Fatalf("negative bit must never be set")
	}
	if b.Count() != 2 {
		t.Fatalf("expected count 2, got %d", b.Count())
	}

	var seen []int
	b.ForEach(func(bit int) { seen = append(seen, bit) })
	if len(seen) != 2 || seen[0] != 5 || seen[1] != 200 {
		t.Fatalf("unexpected ForEach order: %v", seen)
	}

	b.Clear(5)
	b.Clear(10000)
	if b.Test(5) {
		t.Fatalf("expected bit 5 cleared")
	}
}

func TestKeyNames(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"a", KeyA},
		{"Z", KeyZ},
		{"7", Key7},
		{"F11", KeyF1 + 10},
		{"escape", KeyEscape},
		{"Esc", KeyEscape},
		{"kp3", KeyKP0 + 3},
		{"Space", KeySpace},
	}
	for _, tt := range tests {
		got, ok := KeyByName(tt.name)
		if !ok || got != tt.want {
			t.Fatalf("KeyByName(%q) = %v, %v; want %v", tt.name, got, ok, tt.want)
		}
	}
	if KeyF12.String() != "F12" {
		t.Fatalf("expected F12, got %s", KeyF12.String())
	}
	if KeyUnknown.String() != "Unknown" {
		t.Fatalf("expected Unknown, got %s", KeyUnknown.String())
	}
}

func TestParseBinding(t *testing.T) {
	tests := []struct {
		seq     string
		want    Binding
		wantErr bool
	}{
		{seq: "F11", want: Binding{Key: KeyF1 + 10}},
		{seq: "ctrl+t", want: Binding{Key: KeyT, Mods: ModControl}},
		{seq: "Mod4-Mod1-t", want: Binding{Key: KeyT, Mods: ModSuper | ModAlt}},
		{seq: "ctrl+shift+Escape", want: Binding{Key: KeyEscape, Mods: ModControl | ModShift}},
		{seq: "", wantErr: true},
		{seq: "hyper+t", wantErr: true},
		{seq: "ctrl+nosuchkey", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.seq, func(t *testing.T) {
			got, err := ParseBinding(tt.seq)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.seq)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseBinding(%q) = %+v, want %+v", tt.seq, got, tt.want)
			}
		})
	}
}

func TestBinding_MatchesIgnoresLockState(t *testing.T) {
	b := Binding{Key: KeyT, Mods: ModControl}
	if !b.Matches(KeyT, DecodeKeyMods(ModControl|ModNumLock)) {
		t.Fatalf("expected match with num lock on")
	}
	if b.Matches(KeyT, DecodeKeyMods(ModControl|ModShift)) {
		t.Fatalf("expected no match with extra shift")
	}
	if b.String() != "ctrl+T" {
		t.Fatalf("unexpected String(): %q", b.String())
	}
}
