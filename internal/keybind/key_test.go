package keybind

import "testing"

func TestParseKeyPlainRune(t *testing.T) {
	k, err := ParseKey("x")
	if err != nil {
		t.Fatalf("ParseKey: %v", err)
	}
	if k.Code != CodeRune || k.Rune != 'x' || k.Mods != ModNone {
		t.Fatalf("ParseKey(%q) = %+v", "x", k)
	}
}

func TestParseKeyWithModifiers(t *testing.T) {
	k, err := ParseKey("C-S-p")
	if err != nil {
		t.Fatalf("ParseKey: %v", err)
	}
	if !k.Mods.Has(ModCtrl) || !k.Mods.Has(ModShift) || k.Mods.Has(ModAlt) {
		t.Fatalf("ParseKey(%q).Mods = %v", "C-S-p", k.Mods)
	}
	if k.Code != CodeRune || k.Rune != 'p' {
		t.Fatalf("ParseKey(%q) code/rune = %v/%q", "C-S-p", k.Code, k.Rune)
	}
}

func TestParseKeyNamedCode(t *testing.T) {
	k, err := ParseKey("A-PAGE_DOWN")
	if err != nil {
		t.Fatalf("ParseKey: %v", err)
	}
	if k.Code != CodePageDown || !k.Mods.Has(ModAlt) {
		t.Fatalf("ParseKey(%q) = %+v", "A-PAGE_DOWN", k)
	}
}

func TestParseKeyRejectsEmptyCode(t *testing.T) {
	if _, err := ParseKey("C-"); err == nil {
		t.Fatal("expected an error for a modifier with no code")
	}
}

func TestParseKeyRejectsUnknownMultiCharCode(t *testing.T) {
	if _, err := ParseKey("FROBNICATE"); err == nil {
		t.Fatal("expected an error for an unrecognized named code")
	}
}

func TestKeyStringRoundTrips(t *testing.T) {
	for _, spec := range []string{"x", "C-x", "A-S-ENTER", "C-ENTER", "MOUSE4"} {
		k, err := ParseKey(spec)
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", spec, err)
		}
		if got := k.String(); got != spec {
			t.Errorf("ParseKey(%q).String() = %q, want %q", spec, got, spec)
		}
	}
}

func TestKeyStringCollapsesShiftLowercaseToUppercase(t *testing.T) {
	k, err := ParseKey("C-S-p")
	if err != nil {
		t.Fatalf("ParseKey: %v", err)
	}
	k.Mods = k.Mods &^ ModCtrl
	if got, want := k.String(), "P"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestParseBindingSplitsOnSpaces(t *testing.T) {
	keys, err := ParseBinding("C-x C-f")
	if err != nil {
		t.Fatalf("ParseBinding: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("len(keys) = %d, want 2", len(keys))
	}
	if keys[0].Rune != 'x' || !keys[0].Mods.Has(ModCtrl) {
		t.Fatalf("keys[0] = %+v", keys[0])
	}
	if keys[1].Rune != 'f' || !keys[1].Mods.Has(ModCtrl) {
		t.Fatalf("keys[1] = %+v", keys[1])
	}
}

func TestParseBindingRejectsEmptyDescription(t *testing.T) {
	if _, err := ParseBinding(""); err == nil {
		t.Fatal("expected an error for an empty binding description")
	}
}

func TestParseBindingRejectsRepeatedSpaces(t *testing.T) {
	if _, err := ParseBinding("C-x  C-f"); err == nil {
		t.Fatal("expected an error for a doubled space")
	}
}
