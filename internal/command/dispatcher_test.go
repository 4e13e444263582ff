package command

import (
	"testing"
	"time"

	"github.com/mageditor/kernel/internal/engine/buffer"
	"github.com/mageditor/kernel/internal/keybind"
)

func ctrl(r rune) keybind.Key {
	return keybind.Key{Mods: keybind.ModCtrl, Code: keybind.CodeRune, Rune: r}
}

func TestDispatchMatchesGlobalBindingImmediately(t *testing.T) {
	sess := newSessionOver(buffer.New("b1", "", "a.txt"))
	d := NewDispatcher()

	ran := false
	d.Register(&Command{Name: "noop", Fn: func(*Source) error { ran = true; return nil }})
	if err := d.Bind(d.Global, "C-n", "noop"); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	if err := d.Dispatch(sess, ctrl('n'), time.Time{}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !ran {
		t.Fatal("expected the bound command to run")
	}
	if len(sess.KeyChain) != 0 {
		t.Fatalf("KeyChain should be drained after a match, got %v", sess.KeyChain)
	}
}

func TestDispatchWaitsAcrossCallsForAMultiKeyChord(t *testing.T) {
	sess := newSessionOver(buffer.New("b1", "", "a.txt"))
	d := NewDispatcher()

	ran := false
	d.Register(&Command{Name: "find-file", Fn: func(*Source) error { ran = true; return nil }})
	if err := d.Bind(d.Global, "C-x C-f", "find-file"); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	if err := d.Dispatch(sess, ctrl('x'), time.Time{}); err != nil {
		t.Fatalf("Dispatch(C-x): %v", err)
	}
	if ran {
		t.Fatal("command must not run after only the first key of the chord")
	}
	if len(sess.KeyChain) != 1 {
		t.Fatalf("KeyChain should retain the pending C-x, got %v", sess.KeyChain)
	}

	if err := d.Dispatch(sess, ctrl('f'), time.Time{}); err != nil {
		t.Fatalf("Dispatch(C-f): %v", err)
	}
	if !ran {
		t.Fatal("expected find-file to run once the full chord arrives")
	}
	if len(sess.KeyChain) != 0 {
		t.Fatalf("KeyChain should be drained after the chord matches, got %v", sess.KeyChain)
	}
}

func TestDispatchFallsBackToSelfInsertOnNoMatch(t *testing.T) {
	sess := newSessionOver(buffer.New("b1", "", "a.txt"))
	d := NewDispatcher()

	if err := d.Dispatch(sess, runeKey('q'), time.Time{}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	win := sess.SelectedWindow()
	h := win.Handle
	got := h.LockReading().Contents.String()
	h.Unlock()
	if got != "q" {
		t.Fatalf("Contents = %q, want %q (unbound printable key should self-insert)", got, "q")
	}
	if sess.PendingMessage != nil {
		t.Fatalf("self-insert should not post a message, got %q", sess.PendingMessage.Text)
	}
}

func TestDispatchReportsInvalidKeyComboOnNoMatch(t *testing.T) {
	sess := newSessionOver(buffer.New("b1", "", "a.txt"))
	d := NewDispatcher()

	if err := d.Dispatch(sess, ctrl('z'), time.Time{}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if sess.PendingMessage == nil {
		t.Fatal("expected an invalid-key-combo message for an unbound non-printable chord")
	}

	win := sess.SelectedWindow()
	h := win.Handle
	got := h.LockReading().Contents.String()
	h.Unlock()
	if got != "" {
		t.Fatalf("Contents = %q, unbound chord must not self-insert", got)
	}
}

func TestDispatchModeKeymapTakesPriorityOverGlobal(t *testing.T) {
	sess := newSessionOver(buffer.New("b1", "", "a.txt"))
	d := NewDispatcher()

	var which string
	d.Register(&Command{Name: "global-cmd", Fn: func(*Source) error { which = "global"; return nil }})
	d.Register(&Command{Name: "mode-cmd", Fn: func(*Source) error { which = "mode"; return nil }})
	if err := d.Bind(d.Global, "C-n", "global-cmd"); err != nil {
		t.Fatalf("Bind global: %v", err)
	}
	if err := d.Bind(d.ModeKeymap("fundamental"), "C-n", "mode-cmd"); err != nil {
		t.Fatalf("Bind mode: %v", err)
	}

	if err := d.Dispatch(sess, ctrl('n'), time.Time{}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if which != "mode" {
		t.Fatalf("which = %q, want %q (mode keymap must win over global)", which, "mode")
	}
}

func TestDispatchCompletionKeymapTakesPriorityWhenCompleting(t *testing.T) {
	sess := newSessionOver(buffer.New("b1", "", "a.txt"))
	d := NewDispatcher()

	var which string
	d.Register(&Command{Name: "global-cmd", Fn: func(*Source) error { which = "global"; return nil }})
	d.Register(&Command{Name: "complete-cmd", Fn: func(*Source) error { which = "completion"; return nil }})
	if err := d.Bind(d.Global, "C-n", "global-cmd"); err != nil {
		t.Fatalf("Bind global: %v", err)
	}
	if err := d.Bind(d.Completion, "C-n", "complete-cmd"); err != nil {
		t.Fatalf("Bind completion: %v", err)
	}

	sess.SelectedWindow().Completing = true
	if err := d.Dispatch(sess, ctrl('n'), time.Time{}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if which != "completion" {
		t.Fatalf("which = %q, want %q (completion keymap must win while completing)", which, "completion")
	}
}
