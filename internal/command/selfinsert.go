package command

import (
	"fmt"
	"unicode/utf8"

	"github.com/mageditor/kernel/internal/engine/buffer"
	"github.com/mageditor/kernel/internal/engine/content"
	"github.com/mageditor/kernel/internal/engine/edit"
	"github.com/mageditor/kernel/internal/engine/strval"
	"github.com/mageditor/kernel/internal/engine/txn"
	"github.com/mageditor/kernel/internal/keybind"
	"github.com/mageditor/kernel/internal/window"
)

// SelfInsertCharName is the command name bound to an ordinary typed
// character, and the sentinel Dispatch falls back to on an unmatched
// printable key.
const SelfInsertCharName = "self-insert-char"

// SelfInsertChar inserts the key's character at every cursor in the
// selected window, following original_source/src/server.cpp's
// command_insert_char: a completed run of tab-width spaces ending at a
// tab stop collapses into a single tab character when the buffer's mode
// enables tabs; otherwise a run of consecutive self-inserts collapses
// into one undo step (see Buffer.CheckLastCommitter); otherwise one
// insert edit is pushed per cursor.
func SelfInsertChar(src *Source) error {
	if len(src.Keys) == 0 {
		return fmt.Errorf("self-insert-char: no key to insert")
	}
	payload := keyPayload(src.Keys[0])
	if payload == nil {
		return fmt.Errorf("self-insert-char: key %s is not insertable", src.Keys[0].String())
	}

	win := src.Client.SelectedWindow()
	h := win.Handle
	if h == nil {
		return fmt.Errorf("self-insert-char: no buffer selected")
	}

	buf := h.LockWriting()
	defer h.Unlock()

	if buf.ReadOnly {
		return fmt.Errorf("self-insert-char: buffer is read-only")
	}

	if len(payload) == 1 && payload[0] == ' ' && buf.Mode.UseTabs() && buf.Mode.TabWidth() > 0 {
		if mergedTab(buf, win) {
			return nil
		}
	}

	if mergeWithPrevious(buf, win, payload) {
		return nil
	}

	tx := txn.Begin(buf)
	defer tx.Abort()
	arena := tx.ValueAllocator()
	points := cursorPointsAscending(win.Cursors)
	edits := make([]edit.Edit, 0, len(points))
	var offset int64
	for _, p := range points {
		pos := uint64(int64(p.point) + offset)
		e := edit.Edit{
			Payload:  strval.FromOwnedCopy(string(payload), arena),
			Position: pos,
			Kind:     edit.Insert,
			Boundary: edit.BeforePosition,
		}
		tx.Push(e)
		edits = append(edits, e)
		offset += int64(len(payload))
	}

	if !tx.Commit(SelfInsertCharName, nil) {
		return fmt.Errorf("self-insert-char: commit failed")
	}

	offset = 0
	for _, p := range points {
		c := win.Cursors[p.index]
		c.Point = uint64(int64(p.point) + offset + int64(len(payload)))
		c.Mark = c.Point
		offset += int64(len(payload))
	}
	win.ChangeIndex = len(buf.Changes())

	return nil
}

// keyPayload returns the UTF-8 bytes a key types, or nil if the key has
// no textual representation.
func keyPayload(key keybind.Key) []byte {
	switch key.Code {
	case keybind.CodeRune:
		b := make([]byte, utf8.RuneLen(key.Rune))
		utf8.EncodeRune(b, key.Rune)
		return b
	case keybind.CodeSpace:
		return []byte(" ")
	case keybind.CodeTab:
		return []byte("\t")
	case keybind.CodeEnter:
		return []byte("\n")
	default:
		return nil
	}
}

type cursorPoint struct {
	index int
	point uint64
}

// cursorPointsAscending returns each cursor's index and Point, sorted by
// Point, so a batch of edits can be built with correctly accumulating
// offsets (see dispatcher/handlers/editor/insert.go's analogous
// sort-before-insert step, there in descending order because it applies
// edits live one at a time instead of building one Commit).
func cursorPointsAscending(cursors []*window.Cursor) []cursorPoint {
	points := make([]cursorPoint, len(cursors))
	for i, c := range cursors {
		points[i] = cursorPoint{index: i, point: c.Point}
	}
	for i := 1; i < len(points); i++ {
		for j := i; j > 0 && points[j].point < points[j-1].point; j-- {
			points[j], points[j-1] = points[j-1], points[j]
		}
	}
	return points
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}

// canMergeByte reports whether appending next to a commit whose payload
// currently ends in last is still one coherent run: either the same byte
// repeated, or both word characters.
func canMergeByte(last, next byte) bool {
	return last == next || (isWordByte(last) && isWordByte(next))
}

// mergeWithPrevious extends the previous commit's edits in place if it
// was also a self-insert-char commit, its payload is still short enough,
// and the new character can merge with the last one typed. Returns true
// if it committed the merged edit.
func mergeWithPrevious(buf *buffer.Buffer, win *window.Unified, payload []byte) bool {
	if len(payload) != 1 {
		return false
	}
	cursorPoints := cursorPointsAscending(win.Cursors)
	points := make([]uint64, len(cursorPoints))
	for i, p := range cursorPoints {
		points[i] = p.point
	}
	if !buf.CheckLastCommitter(SelfInsertCharName, points) {
		return false
	}
	edits, ok := buf.LastCommitEdits()
	if !ok || len(edits) == 0 {
		return false
	}
	if edits[0].Len() >= uint64(strval.InlineCap) {
		return false
	}
	last := edits[0].Payload.Bytes()
	if len(last) == 0 || !canMergeByte(last[len(last)-1], payload[0]) {
		return false
	}

	tx := txn.Begin(buf)
	defer tx.Abort()
	arena := tx.ValueAllocator()
	extended := make([]edit.Edit, len(edits))
	for i := range edits {
		grown := append(append([]byte(nil), edits[i].Payload.Bytes()...), payload...)
		e := edit.Edit{
			Payload:  strval.FromOwnedCopy(string(grown), arena),
			Position: edits[i].Position,
			Kind:     edit.Insert,
			Boundary: edits[i].Boundary,
		}
		tx.Push(e)
		extended[i] = e
	}

	buf.Undo()
	if !tx.Commit(SelfInsertCharName, nil) {
		return false
	}

	for i, p := range cursorPoints {
		c := win.Cursors[p.index]
		c.Point = extended[i].Position + extended[i].Len()
		c.Mark = c.Point
	}
	win.ChangeIndex = len(buf.Changes())
	return true
}

// mergedTab replaces, for every cursor whose preceding bytes qualify, a
// just-completed run of tab-width spaces ending at a tab stop with a
// single tab character; cursors that don't qualify still get a plain
// space in the same commit. Returns false (committing nothing) if no
// cursor qualifies, so the caller falls through to the plain insert or
// merge path. Grounded on server.cpp's tab-merging branch of
// command_insert_char.
func mergedTab(buf *buffer.Buffer, win *window.Unified) bool {
	tabWidth := buf.Mode.TabWidth()
	points := cursorPointsAscending(win.Cursors)

	starts := make([]uint64, len(points))
	merges := make([]bool, len(points))
	anyMerge := false
	for i, p := range points {
		start, ok := tabMergeStart(buf.Contents, p.point, tabWidth)
		starts[i], merges[i] = start, ok
		anyMerge = anyMerge || ok
	}
	if !anyMerge {
		return false
	}

	tx := txn.Begin(buf)
	defer tx.Abort()
	arena := tx.ValueAllocator()
	newPoints := make([]uint64, len(win.Cursors))
	var offset int64

	for i, p := range points {
		if merges[i] {
			removeLen := p.point - starts[i]
			removePos := uint64(int64(starts[i]) + offset)
			removed := make([]byte, removeLen)
			buf.Contents.SliceInto(removed, starts[i], p.point)
			tx.Push(edit.Edit{Payload: strval.FromOwnedCopy(string(removed), arena), Position: removePos, Kind: edit.Remove})
			tx.Push(edit.Edit{Payload: strval.FromConst("\t"), Position: removePos, Kind: edit.Insert, Boundary: edit.BeforePosition})
			offset += 1 - int64(removeLen)
			newPoints[p.index] = removePos + 1
		} else {
			pos := uint64(int64(p.point) + offset)
			tx.Push(edit.Edit{Payload: strval.FromConst(" "), Position: pos, Kind: edit.Insert, Boundary: edit.BeforePosition})
			offset++
			newPoints[p.index] = pos + 1
		}
	}

	if !tx.Commit(SelfInsertCharName, nil) {
		return false
	}
	for i, c := range win.Cursors {
		c.Point = newPoints[i]
		c.Mark = c.Point
	}
	win.ChangeIndex = len(buf.Changes())
	return true
}

// tabMergeStart reports the start position of the tab-width-1 run of
// spaces immediately before pos that, together with the space about to
// be typed at pos, completes exactly tabWidth columns ending on a tab
// stop — a direct restatement of server.cpp's backward-scan-and-check
// loop, simplified to Contents.ByteAt lookups (each one locates its
// bucket by a scan from the start) instead of a hand-rolled iterator
// retreat.
func tabMergeStart(contents *content.Contents, pos uint64, tabWidth int) (uint64, bool) {
	if tabWidth <= 0 {
		return 0, false
	}
	width := uint64(tabWidth)
	if pos < width-1 {
		return 0, false
	}
	start := pos - (width - 1)
	for i := start; i < pos; i++ {
		b, ok := contents.ByteAt(i)
		if !ok || b != ' ' {
			return 0, false
		}
	}
	if (visualColumn(contents, pos, tabWidth)+1)%width != 0 {
		return 0, false
	}
	return start, true
}

// visualColumn returns pos's 0-based column within its line, expanding
// tabs to the next multiple of tabWidth.
func visualColumn(contents *content.Contents, pos uint64, tabWidth int) uint64 {
	it := contents.IteratorAt(pos)
	for !it.AtBeginning() {
		it.RetreatOne()
		b, _ := it.Current()
		if b == '\n' {
			it.AdvanceOne()
			break
		}
	}
	lineStart := it.Position()

	col := uint64(0)
	width := uint64(tabWidth)
	for p := lineStart; p < pos; p++ {
		b, _ := contents.ByteAt(p)
		if b == '\t' {
			col += width - col%width
		} else {
			col++
		}
	}
	return col
}
