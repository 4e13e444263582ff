package command

import (
	"testing"

	"github.com/mageditor/kernel/internal/engine/buffer"
	"github.com/mageditor/kernel/internal/keybind"
	"github.com/mageditor/kernel/internal/window"
)

func TestUndoRedoRoundTripUpdatesCursor(t *testing.T) {
	sess := newSessionOver(buffer.New("b1", "", "a.txt"))
	win := sess.SelectedWindow()

	for _, r := range "hi" {
		src := &Source{Client: sess, Keys: []keybind.Key{runeKey(r)}}
		if err := SelfInsertChar(src); err != nil {
			t.Fatalf("SelfInsertChar(%q): %v", r, err)
		}
	}

	h := win.Handle
	if got := h.LockReading().Contents.String(); got != "hi" {
		h.Unlock()
		t.Fatalf("Contents = %q, want %q", got, "hi")
	}
	h.Unlock()

	if err := Undo(&Source{Client: sess}); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := h.LockReading().Contents.String(); got != "" {
		h.Unlock()
		t.Fatalf("Contents after undo = %q, want empty", got)
	}
	h.Unlock()
	if win.Cursors[0].Point != 0 {
		t.Fatalf("cursor.Point after undo = %d, want 0", win.Cursors[0].Point)
	}

	if err := Redo(&Source{Client: sess}); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := h.LockReading().Contents.String(); got != "hi" {
		h.Unlock()
		t.Fatalf("Contents after redo = %q, want %q", got, "hi")
	}
	h.Unlock()
	if win.Cursors[0].Point != 2 {
		t.Fatalf("cursor.Point after redo = %d, want 2", win.Cursors[0].Point)
	}
}

func TestUndoOnEmptyHistoryReturnsError(t *testing.T) {
	sess := newSessionOver(buffer.New("b1", "", "a.txt"))
	if err := Undo(&Source{Client: sess}); err == nil {
		t.Fatal("expected an error undoing an empty history")
	}
}

func TestStopActionCollapsesExtraCursorsFirst(t *testing.T) {
	sess := newSessionOver(buffer.NewFromString("b1", "", "a.txt", "hello"))
	win := sess.SelectedWindow()
	win.Cursors = []*window.Cursor{{Point: 0}, {Point: 2}, {Point: 4}}
	win.SelectedCursor = 1
	win.Cursors[1].Mark = 3 // also has a selection, but cursor-collapse takes priority

	if err := StopAction(&Source{Client: sess}); err != nil {
		t.Fatalf("StopAction: %v", err)
	}
	if len(win.Cursors) != 1 {
		t.Fatalf("len(Cursors) = %d, want 1", len(win.Cursors))
	}
	if win.Cursors[0].Point != 2 {
		t.Fatalf("surviving cursor.Point = %d, want 2 (the previously-selected cursor)", win.Cursors[0].Point)
	}
}

func TestStopActionClearsSelectionWhenSingleCursor(t *testing.T) {
	sess := newSessionOver(buffer.NewFromString("b1", "", "a.txt", "hello"))
	win := sess.SelectedWindow()
	win.Cursors[0].Point = 4
	win.Cursors[0].Mark = 1

	if err := StopAction(&Source{Client: sess}); err != nil {
		t.Fatalf("StopAction: %v", err)
	}
	if win.Cursors[0].Mark != win.Cursors[0].Point {
		t.Fatalf("Mark = %d, Point = %d, want them equal after clearing the selection", win.Cursors[0].Mark, win.Cursors[0].Point)
	}
}

func TestStopActionUnfocusesMiniBufferLast(t *testing.T) {
	sess := newSessionOver(buffer.New("b1", "", "a.txt"))
	sess.SetSelectMiniBuffer(true)

	if err := StopAction(&Source{Client: sess}); err != nil {
		t.Fatalf("StopAction: %v", err)
	}
	if sess.SelectMiniBuffer() {
		t.Fatal("expected the mini-buffer to lose focus")
	}
}
