package keybind

import "testing"

func chain(t *testing.T, description string) []Key {
	t.Helper()
	keys, err := ParseBinding(description)
	if err != nil {
		t.Fatalf("ParseBinding(%q): %v", description, err)
	}
	return keys
}

func TestMapLookupMatchesSingleKeyBinding(t *testing.T) {
	m := NewMap()
	if err := m.Bind("C-s", "save-buffer"); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	cmd, consumed, status := m.Lookup(chain(t, "C-s"), 0)
	if status != Matched || cmd != "save-buffer" || consumed != 1 {
		t.Fatalf("Lookup = %q, %d, %v", cmd, consumed, status)
	}
}

func TestMapLookupWaitsForMoreKeysMidChain(t *testing.T) {
	m := NewMap()
	if err := m.Bind("C-x C-f", "find-file"); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	_, _, status := m.Lookup(chain(t, "C-x"), 0)
	if status != WaitingForMoreKeys {
		t.Fatalf("status = %v, want WaitingForMoreKeys", status)
	}
}

func TestMapLookupMatchesFullChord(t *testing.T) {
	m := NewMap()
	if err := m.Bind("C-x C-f", "find-file"); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	cmd, consumed, status := m.Lookup(chain(t, "C-x C-f"), 0)
	if status != Matched || cmd != "find-file" || consumed != 2 {
		t.Fatalf("Lookup = %q, %d, %v", cmd, consumed, status)
	}
}

func TestMapLookupNoMatchOnWrongSecondKey(t *testing.T) {
	m := NewMap()
	if err := m.Bind("C-x C-f", "find-file"); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	full := chain(t, "C-x C-f")
	full[1], _ = ParseKey("C-z")
	_, _, status := m.Lookup(full, 0)
	if status != NoMatch {
		t.Fatalf("status = %v, want NoMatch", status)
	}
}

func TestMapLookupHonorsCursor(t *testing.T) {
	m := NewMap()
	if err := m.Bind("C-s", "save-buffer"); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	chain := append(chain(t, "C-x"), chain(t, "C-s")...)
	cmd, consumed, status := m.Lookup(chain, 1)
	if status != Matched || cmd != "save-buffer" || consumed != 1 {
		t.Fatalf("Lookup with cursor=1 = %q, %d, %v", cmd, consumed, status)
	}
}

func TestBindRejectsExtendingAnExistingLeaf(t *testing.T) {
	m := NewMap()
	if err := m.Bind("C-s", "save-buffer"); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := m.Bind("C-s C-s", "save-all"); err == nil {
		t.Fatal("expected an error extending past an existing leaf binding")
	}
}

func TestBindRejectsShadowingAnExistingChord(t *testing.T) {
	m := NewMap()
	if err := m.Bind("C-x C-f", "find-file"); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := m.Bind("C-x", "prefix-as-leaf"); err == nil {
		t.Fatal("expected an error binding a leaf over an existing prefix map")
	}
}

func TestBindOverwritesExistingExactBinding(t *testing.T) {
	m := NewMap()
	if err := m.Bind("C-s", "save-buffer"); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := m.Bind("C-s", "save-buffer-as"); err != nil {
		t.Fatalf("Bind (overwrite): %v", err)
	}

	cmd, _, status := m.Lookup(chain(t, "C-s"), 0)
	if status != Matched || cmd != "save-buffer-as" {
		t.Fatalf("Lookup after overwrite = %q, %v", cmd, status)
	}
}
