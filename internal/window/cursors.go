package window

import (
	"github.com/mageditor/kernel/internal/capability"
	"github.com/mageditor/kernel/internal/engine/buffer"
	"github.com/mageditor/kernel/internal/engine/edit"
)

// UpdateCursors replays buf's changes since u.ChangeIndex against every
// cursor's Point and Mark, and against StartPosition — except StartPosition
// stays pinned at 0 if it already was 0, so a large paste at the end of an
// otherwise-empty file doesn't snap the viewport away from the top. A
// notepad-only mark display is cleared once the replay has run.
func UpdateCursors(u *Unified, buf *buffer.Buffer) {
	changes := buf.Changes()
	if u.ChangeIndex >= len(changes) {
		return
	}
	pending := changes[u.ChangeIndex:]

	for _, c := range u.Cursors {
		c.Point = edit.PositionAfterChanges(pending, c.Point)
		c.Mark = edit.PositionAfterChanges(pending, c.Mark)
	}

	if u.StartPosition != 0 {
		u.StartPosition = edit.PositionAfterChanges(pending, u.StartPosition)
	}

	if u.ShowMarks == MarksNotepad {
		u.ShowMarks = MarksOff
	}

	u.ChangeIndex = len(changes)
}

// CopyChainHost is the subset of a client session that cursor helpers need:
// a place to append copied text to the session-wide copy chain and an
// optional system clipboard to publish the latest copy to.
type CopyChainHost interface {
	AppendGlobalCopy(values []string)
	Clipboard() capability.Clipboard
}

// KillExtraCursors reduces u to its single selected cursor, appending any
// local copy chain it and its discarded siblings accumulated onto host's
// global copy chain, and publishing the top of that chain to the system
// clipboard.
func KillExtraCursors(u *Unified, host CopyChainHost) {
	selected := u.Cursors[u.SelectedCursor]

	var merged []string
	for _, c := range u.Cursors {
		merged = append(merged, c.LocalCopyChain...)
	}
	if len(merged) > 0 {
		host.AppendGlobalCopy(merged)
		if clip := host.Clipboard(); clip != nil {
			clip.Set(merged[len(merged)-1])
		}
	}

	selected.LocalCopyChain = nil
	u.Cursors = []*Cursor{selected}
	u.SelectedCursor = 0
}

// KillCursor removes the cursor at index from u. When only two cursors
// remain, it delegates to KillExtraCursors (matching the spec's collapse
// rule) rather than leaving a single cursor behind without flushing the
// copy chain merge that rule performs.
func KillCursor(u *Unified, host CopyChainHost, index int) {
	if len(u.Cursors) <= 2 {
		KillExtraCursors(u, host)
		return
	}

	removed := u.Cursors[index]
	u.Cursors = append(u.Cursors[:index], u.Cursors[index+1:]...)

	switch {
	case u.SelectedCursor > index:
		u.SelectedCursor--
	case u.SelectedCursor == index:
		if u.SelectedCursor >= len(u.Cursors) {
			u.SelectedCursor = len(u.Cursors) - 1
		}
	}

	if len(removed.LocalCopyChain) > 0 && len(u.Cursors) > 0 {
		selected := u.Cursors[u.SelectedCursor]
		selected.LocalCopyChain = append(selected.LocalCopyChain, removed.LocalCopyChain...)
	}
}
