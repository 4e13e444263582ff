package command

import (
	"fmt"

	"github.com/mageditor/kernel/internal/engine/buffer"
	"github.com/mageditor/kernel/internal/engine/content"
	"github.com/mageditor/kernel/internal/engine/edit"
	"github.com/mageditor/kernel/internal/engine/txn"
	"github.com/mageditor/kernel/internal/window"
)

// Names of the §4.9 delete primitives NewDispatcher registers, following
// original_source/src/commands.cpp's command_delete_backward_char,
// command_delete_forward_char, command_delete_backward_word,
// command_delete_forward_word, and command_delete_region (the
// DELETE_BACKWARD/DELETE_FORWARD macros they expand to).
const (
	DeleteBackwardCharName = "delete-backward-char"
	DeleteForwardCharName  = "delete-forward-char"
	DeleteBackwardWordName = "delete-backward-word"
	DeleteForwardWordName  = "delete-forward-word"
	DeleteRegionName       = "delete-region"
)

// DeleteBackwardChar removes, at every cursor, the single byte preceding
// its point.
func DeleteBackwardChar(src *Source) error {
	return runDeleteBackward(src, DeleteBackwardCharName, backwardChar)
}

// DeleteForwardChar removes, at every cursor, the single byte following
// its point.
func DeleteForwardChar(src *Source) error {
	return runDeleteForward(src, DeleteForwardCharName, forwardChar)
}

// DeleteBackwardWord removes, at every cursor, the word (and any
// non-word bytes) immediately preceding its point.
func DeleteBackwardWord(src *Source) error {
	return runDeleteBackward(src, DeleteBackwardWordName, backwardWord)
}

// DeleteForwardWord removes, at every cursor, the word (and any
// non-word bytes) immediately following its point.
func DeleteForwardWord(src *Source) error {
	return runDeleteForward(src, DeleteForwardWordName, forwardWord)
}

// DeleteRegion removes each cursor's selection (the bytes between Start
// and End), collapsing the cursor to the selection's start. Cursors with
// an empty selection are left untouched. Grounded on
// original_source/src/commands.cpp's command_delete_region.
func DeleteRegion(src *Source) error {
	win := src.Client.SelectedWindow()
	h := win.Handle
	if h == nil {
		return fmt.Errorf("%s: no buffer selected", DeleteRegionName)
	}
	buf := h.LockWriting()
	defer h.Unlock()

	if buf.ReadOnly {
		return fmt.Errorf("%s: buffer is read-only", DeleteRegionName)
	}

	points := cursorPointsAscending(win.Cursors)

	tx := txn.Begin(buf)
	defer tx.Abort()
	arena := tx.ValueAllocator()

	newPoints := make([]uint64, len(win.Cursors))
	var offset int64
	any := false

	for _, p := range points {
		c := win.Cursors[p.index]
		start, end := c.Start(), c.End()
		pos := uint64(int64(start) + offset)
		if start >= end {
			newPoints[p.index] = pos
			continue
		}
		any = true
		payload := buf.Contents.Slice(start, end, arena)
		tx.Push(edit.Edit{Payload: payload, Position: pos, Kind: edit.Remove})
		offset -= int64(end - start)
		newPoints[p.index] = pos
	}

	if !any {
		return nil
	}
	if !tx.Commit(DeleteRegionName, nil) {
		return fmt.Errorf("%s: commit failed", DeleteRegionName)
	}

	for i, c := range win.Cursors {
		c.Point = newPoints[i]
		c.Mark = c.Point
	}
	win.ChangeIndex = len(buf.Changes())
	return nil
}

// runDeleteBackward removes, per cursor in ascending-position order,
// the range [move(contents, point), point), following the
// DELETE_BACKWARD macro: later cursors' positions are adjusted by the
// running offset of bytes already removed by earlier ones in this same
// commit.
func runDeleteBackward(src *Source, name string, move func(*content.Contents, uint64) uint64) error {
	win := src.Client.SelectedWindow()
	h := win.Handle
	if h == nil {
		return fmt.Errorf("%s: no buffer selected", name)
	}
	buf := h.LockWriting()
	defer h.Unlock()

	if buf.ReadOnly {
		return fmt.Errorf("%s: buffer is read-only", name)
	}

	points := cursorPointsAscending(win.Cursors)

	tx := txn.Begin(buf)
	defer tx.Abort()
	arena := tx.ValueAllocator()

	newPoints := make([]uint64, len(win.Cursors))
	var offset int64
	any := false

	for _, p := range points {
		end := p.point
		start := move(buf.Contents, end)
		pos := uint64(int64(start) + offset)
		if start >= end {
			newPoints[p.index] = pos
			continue
		}
		any = true
		payload := buf.Contents.Slice(start, end, arena)
		tx.Push(edit.Edit{Payload: payload, Position: pos, Kind: edit.Remove})
		offset -= int64(end - start)
		newPoints[p.index] = pos
	}

	if !any {
		return nil
	}
	if !tx.Commit(name, nil) {
		return fmt.Errorf("%s: commit failed", name)
	}
	applyDeleteResult(win, buf, newPoints)
	return nil
}

// runDeleteForward removes, per cursor in ascending-position order, the
// range [point, move(contents, point)), following the DELETE_FORWARD
// macro.
func runDeleteForward(src *Source, name string, move func(*content.Contents, uint64) uint64) error {
	win := src.Client.SelectedWindow()
	h := win.Handle
	if h == nil {
		return fmt.Errorf("%s: no buffer selected", name)
	}
	buf := h.LockWriting()
	defer h.Unlock()

	if buf.ReadOnly {
		return fmt.Errorf("%s: buffer is read-only", name)
	}

	points := cursorPointsAscending(win.Cursors)

	tx := txn.Begin(buf)
	defer tx.Abort()
	arena := tx.ValueAllocator()

	newPoints := make([]uint64, len(win.Cursors))
	var offset int64
	any := false

	for _, p := range points {
		start := p.point
		end := move(buf.Contents, start)
		pos := uint64(int64(start) + offset)
		if start >= end {
			newPoints[p.index] = pos
			continue
		}
		any = true
		payload := buf.Contents.Slice(start, end, arena)
		tx.Push(edit.Edit{Payload: payload, Position: pos, Kind: edit.Remove})
		offset -= int64(end - start)
		newPoints[p.index] = pos
	}

	if !any {
		return nil
	}
	if !tx.Commit(name, nil) {
		return fmt.Errorf("%s: commit failed", name)
	}
	applyDeleteResult(win, buf, newPoints)
	return nil
}

// applyDeleteResult collapses every cursor in win to its post-delete
// point (clearing any selection) and advances the window's change
// index, mirroring the cursor-settling step every self-insert commit
// path performs after Commit succeeds.
func applyDeleteResult(win *window.Unified, buf *buffer.Buffer, newPoints []uint64) {
	for i, c := range win.Cursors {
		c.Point = newPoints[i]
		c.Mark = c.Point
	}
	win.ChangeIndex = len(buf.Changes())
}

// isAlnumByte reports whether b is an ASCII letter or digit, matching
// original_source/src/movement.cpp's use of isalnum for word boundaries
// (narrower than isWordByte's underscore-inclusive definition, which is
// specific to self-insert run merging).
func isAlnumByte(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// backwardChar returns pos-1, or pos unchanged at the beginning of the
// buffer. Grounded on movement.cpp's backward_char.
func backwardChar(contents *content.Contents, pos uint64) uint64 {
	if pos == 0 {
		return pos
	}
	return pos - 1
}

// forwardChar returns pos+1, or pos unchanged at the end of the buffer.
// Grounded on movement.cpp's forward_char.
func forwardChar(contents *content.Contents, pos uint64) uint64 {
	if pos >= contents.Len() {
		return pos
	}
	return pos + 1
}

// backwardWord retreats over any run of non-word bytes immediately
// before pos, then over the run of word bytes before that, landing on
// the start of the word. Grounded on movement.cpp's backward_word.
func backwardWord(contents *content.Contents, pos uint64) uint64 {
	it := contents.IteratorAt(pos)

	for {
		if it.AtBeginning() {
			return it.Position()
		}
		it.RetreatOne()
		b, _ := it.Current()
		if isAlnumByte(b) {
			break
		}
	}

	for {
		if it.AtBeginning() {
			return it.Position()
		}
		it.RetreatOne()
		b, _ := it.Current()
		if !isAlnumByte(b) {
			it.AdvanceOne()
			break
		}
	}

	return it.Position()
}

// forwardWord advances over any run of non-word bytes at or after pos,
// then over the run of word bytes after that, landing just past the end
// of the word. Grounded on movement.cpp's forward_word.
func forwardWord(contents *content.Contents, pos uint64) uint64 {
	it := contents.IteratorAt(pos)
	if it.AtEnd() {
		return it.Position()
	}

	for !it.AtEnd() {
		b, _ := it.Current()
		if isAlnumByte(b) {
			break
		}
		it.AdvanceOne()
	}
	for !it.AtEnd() {
		b, _ := it.Current()
		if !isAlnumByte(b) {
			break
		}
		it.AdvanceOne()
	}

	return it.Position()
}
