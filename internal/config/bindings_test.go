package config

import (
	"testing"

	"github.com/mageditor/kernel/internal/command"
	"github.com/mageditor/kernel/internal/keybind"
)

func ctrl(r rune) keybind.Key {
	return keybind.Key{Mods: keybind.ModCtrl, Code: keybind.CodeRune, Rune: r}
}

func TestApplyBindingsInstallsGlobalAndModeBindings(t *testing.T) {
	d := command.NewDispatcher()
	settings := &Settings{
		Bindings: []Binding{
			{Keys: "C-g", Command: command.StopActionName},
			{Mode: "fundamental", Keys: "C-x C-s", Command: "save-buffer"},
		},
	}

	if err := ApplyBindings(d, settings); err != nil {
		t.Fatalf("ApplyBindings: %v", err)
	}

	cmd, consumed, status := d.Global.Lookup([]keybind.Key{ctrl('g')}, 0)
	if status != keybind.Matched || consumed != 1 || cmd != command.StopActionName {
		t.Fatalf("Global.Lookup(C-g) = (%q, %d, %v)", cmd, consumed, status)
	}

	mode := d.ModeKeymap("fundamental")
	chain := []keybind.Key{ctrl('x'), ctrl('s')}
	cmd, consumed, status = mode.Lookup(chain, 0)
	if status != keybind.Matched || consumed != 2 || cmd != "save-buffer" {
		t.Fatalf("ModeKeymap(fundamental).Lookup(C-x C-s) = (%q, %d, %v)", cmd, consumed, status)
	}
}

func TestApplyBindingsCollectsErrorsWithoutAbortingTheRest(t *testing.T) {
	d := command.NewDispatcher()
	settings := &Settings{
		Bindings: []Binding{
			{Keys: "", Command: "broken"},
			{Keys: "C-g", Command: command.StopActionName},
		},
	}

	err := ApplyBindings(d, settings)
	if err == nil {
		t.Fatal("expected an error for the empty key description")
	}
	if _, ok := err.(BindingErrors); !ok {
		t.Fatalf("err type = %T, want BindingErrors", err)
	}

	cmd, _, status := d.Global.Lookup([]keybind.Key{ctrl('g')}, 0)
	if status != keybind.Matched || cmd != command.StopActionName {
		t.Fatal("expected the well-formed binding alongside the broken one to still install")
	}
}
