package command

import (
	"fmt"

	"github.com/mageditor/kernel/internal/window"
)

// Names of the built-in editing primitives NewDispatcher registers,
// following original_source/src/server.cpp's Editor::key_map default
// bindings for undo/redo/escape.
const (
	UndoName       = "undo"
	RedoName       = "redo"
	StopActionName = "stop-action"
)

// Undo reverses the selected window's buffer's most recently applied
// commit and replays the resulting change against the window's cursors.
func Undo(src *Source) error {
	win := src.Client.SelectedWindow()
	h := win.Handle
	if h == nil {
		return fmt.Errorf("undo: no buffer selected")
	}
	buf := h.LockWriting()
	defer h.Unlock()

	if !buf.Undo() {
		return fmt.Errorf("undo: nothing to undo")
	}
	window.UpdateCursors(win, buf)
	return nil
}

// Redo re-applies the next undone commit, if any.
func Redo(src *Source) error {
	win := src.Client.SelectedWindow()
	h := win.Handle
	if h == nil {
		return fmt.Errorf("redo: no buffer selected")
	}
	buf := h.LockWriting()
	defer h.Unlock()

	if !buf.Redo() {
		return fmt.Errorf("redo: nothing to redo")
	}
	window.UpdateCursors(win, buf)
	return nil
}

// StopAction clears whichever of the selected window's transient states
// is set, in priority order: multiple cursors collapse to one (merging
// copy chains per window.KillExtraCursors), else an active selection
// collapses to a bare point, else a focused mini-buffer loses focus.
func StopAction(src *Source) error {
	sess := src.Client
	win := sess.SelectedWindow()

	switch {
	case len(win.Cursors) > 1:
		window.KillExtraCursors(win, sess)
	case hasSelection(win):
		clearSelection(win)
	case sess.SelectMiniBuffer():
		sess.SetSelectMiniBuffer(false)
	}
	return nil
}

func hasSelection(win *window.Unified) bool {
	for _, c := range win.Cursors {
		if c.Point != c.Mark {
			return true
		}
	}
	return false
}

func clearSelection(win *window.Unified) {
	for _, c := range win.Cursors {
		c.Mark = c.Point
	}
}
