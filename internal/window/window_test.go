package window

import (
	"testing"

	"github.com/mageditor/kernel/internal/capability"
	"github.com/mageditor/kernel/internal/engine/buffer"
	"github.com/mageditor/kernel/internal/engine/edit"
	"github.com/mageditor/kernel/internal/engine/handle"
	"github.com/mageditor/kernel/internal/engine/strval"
)

func newTestWindow(t *testing.T, text string) (*Unified, *buffer.Buffer) {
	t.Helper()
	buf := buffer.NewFromString("b1", "/tmp", "scratch.txt", text)
	h := handle.New(buf)
	return Create(h, "w1"), buf
}

func TestCreateInitializesSingleCursor(t *testing.T) {
	u, _ := newTestWindow(t, "hello")
	if len(u.Cursors) != 1 {
		t.Fatalf("len(Cursors) = %d, want 1", len(u.Cursors))
	}
	if u.Cursors[0].Point != 0 || u.Cursors[0].Mark != 0 {
		t.Fatalf("new cursor = %+v, want zero point/mark", u.Cursors[0])
	}
}

func TestCloneDuplicatesCursorsIndependently(t *testing.T) {
	u, _ := newTestWindow(t, "hello")
	u.Cursors[0].LocalCopyChain = []string{"x"}

	clone := u.Clone("w2")
	clone.Cursors[0].Point = 3
	clone.Cursors[0].LocalCopyChain[0] = "y"

	if u.Cursors[0].Point != 0 {
		t.Fatalf("original cursor mutated via clone: Point = %d", u.Cursors[0].Point)
	}
	if u.Cursors[0].LocalCopyChain[0] != "x" {
		t.Fatalf("original copy chain mutated via clone: %v", u.Cursors[0].LocalCopyChain)
	}
	if clone.Handle != u.Handle {
		t.Fatal("clone should share the same handle reference")
	}
}

func TestSetSizeVerticalSplit(t *testing.T) {
	first := &Unified{}
	second := &Unified{}
	split := &Split{Tag: Vertical, First: first, Second: second, Ratio: 0.5}
	first.setParent(split)
	second.setParent(split)

	SetSize(split, 40, 81)

	// availCols = 81 - 1 = 80; first = floor(80*0.5) = 40; second = 40.
	if first.Cols() != 40 || second.Cols() != 40 {
		t.Fatalf("cols = %d/%d, want 40/40", first.Cols(), second.Cols())
	}
	if first.Rows() != 40 || second.Rows() != 40 {
		t.Fatalf("rows = %d/%d, want 40/40", first.Rows(), second.Rows())
	}
}

func TestSetSizeHorizontalSplit(t *testing.T) {
	first := &Unified{}
	second := &Unified{}
	split := &Split{Tag: Horizontal, First: first, Second: second, Ratio: 0.25}
	first.setParent(split)
	second.setParent(split)

	SetSize(split, 41, 80)

	if first.Rows() != 10 {
		t.Fatalf("first.Rows() = %d, want 10", first.Rows())
	}
	if second.Rows() != 31 {
		t.Fatalf("second.Rows() = %d, want 31", second.Rows())
	}
	if first.Cols() != 80 || second.Cols() != 80 {
		t.Fatalf("cols = %d/%d, want 80/80", first.Cols(), second.Cols())
	}
}

func TestSplitWindowInsertsSplitAtLeafPosition(t *testing.T) {
	u, _ := newTestWindow(t, "hello")
	tree := NewTree(u)
	SetSize(tree.Root, 40, 80)

	clone := tree.SplitWindow(u, "w2", Vertical)

	split, ok := tree.Root.(*Split)
	if !ok {
		t.Fatalf("Root is %T, want *Split", tree.Root)
	}
	if split.First != Node(u) || split.Second != Node(clone) {
		t.Fatal("split children are not {original, clone} in order")
	}
	if u.Parent() != split || clone.Parent() != split {
		t.Fatal("parent pointers not installed on both children")
	}
	if u.Cols() == 0 || clone.Cols() == 0 {
		t.Fatal("SplitWindow should have propagated sizes to the new tree shape")
	}
}

func TestSplitWindowAboveFusedParent(t *testing.T) {
	u, _ := newTestWindow(t, "hello")
	clone0 := u.Clone("w0")
	fused := &Split{Tag: Horizontal, First: u, Second: clone0, Ratio: 0.5, Fused: true}
	u.setParent(fused)
	clone0.setParent(fused)
	tree := &Tree{Root: fused}
	SetSize(tree.Root, 40, 80)

	newClone := tree.SplitWindow(u, "w3", Vertical)

	top, ok := tree.Root.(*Split)
	if !ok {
		t.Fatalf("Root is %T, want *Split", tree.Root)
	}
	if top.First != Node(fused) || top.Second != Node(newClone) {
		t.Fatal("new split should sit above the fused pair, not inside it")
	}
	if fused.Parent() != top {
		t.Fatal("fused parent was not repointed to the new split")
	}
}

func TestCycleWindowWrapsAround(t *testing.T) {
	a := &Unified{ID: "a"}
	b := &Unified{ID: "b"}
	c := &Unified{ID: "c"}
	inner := &Split{First: b, Second: c}
	root := &Split{First: a, Second: inner}
	tree := &Tree{Root: root}

	if got := tree.CycleWindow(a); got != b {
		t.Fatalf("CycleWindow(a) = %v, want b", got.ID)
	}
	if got := tree.CycleWindow(c); got != a {
		t.Fatalf("CycleWindow(c) = %v, want wraparound to a", got.ID)
	}
}

func TestUpdateCursorsShiftsPointsAndPinsZeroStart(t *testing.T) {
	u, buf := newTestWindow(t, "hello world")
	u.Cursors = []*Cursor{{Point: 8, Mark: 8}}
	u.StartPosition = 0

	if !buf.Commit([]edit.Edit{{Kind: edit.Insert, Position: 0, Payload: strval.FromConst(">>> ")}}, "test") {
		t.Fatal("commit failed")
	}

	UpdateCursors(u, buf)

	if u.Cursors[0].Point != 12 {
		t.Fatalf("Point = %d, want 12", u.Cursors[0].Point)
	}
	if u.StartPosition != 0 {
		t.Fatalf("StartPosition = %d, want pinned at 0", u.StartPosition)
	}
	if u.ChangeIndex != len(buf.Changes()) {
		t.Fatalf("ChangeIndex = %d, want %d", u.ChangeIndex, len(buf.Changes()))
	}
}

func TestUpdateCursorsClearsNotepadMarks(t *testing.T) {
	u, buf := newTestWindow(t, "hello")
	u.ShowMarks = MarksNotepad

	if !buf.Commit([]edit.Edit{{Kind: edit.Insert, Position: 0, Payload: strval.FromConst("x")}}, "test") {
		t.Fatal("commit failed")
	}
	UpdateCursors(u, buf)

	if u.ShowMarks != MarksOff {
		t.Fatalf("ShowMarks = %v, want MarksOff", u.ShowMarks)
	}
}

type fakeHost struct {
	global []string
	clip   *fakeClipboard
}

func (h *fakeHost) AppendGlobalCopy(values []string) { h.global = append(h.global, values...) }
func (h *fakeHost) Clipboard() capability.Clipboard {
	if h.clip == nil {
		return nil
	}
	return h.clip
}

type fakeClipboard struct{ last string }

func (c *fakeClipboard) Get(arena *strval.Arena) (strval.Value, bool) {
	return strval.FromOwnedCopy(c.last, arena), c.last != ""
}
func (c *fakeClipboard) Set(text string) bool {
	c.last = text
	return true
}

func TestKillExtraCursorsMergesCopyChainsAndPublishes(t *testing.T) {
	u, _ := newTestWindow(t, "hello")
	u.Cursors = []*Cursor{
		{Point: 0, LocalCopyChain: []string{"a"}},
		{Point: 1, LocalCopyChain: []string{"b"}},
		{Point: 2, LocalCopyChain: []string{"c"}},
	}
	u.SelectedCursor = 1
	host := &fakeHost{clip: &fakeClipboard{}}

	KillExtraCursors(u, host)

	if len(u.Cursors) != 1 {
		t.Fatalf("len(Cursors) = %d, want 1", len(u.Cursors))
	}
	if u.Cursors[0].Point != 1 {
		t.Fatalf("surviving cursor Point = %d, want 1 (the selected one)", u.Cursors[0].Point)
	}
	want := []string{"a", "b", "c"}
	if len(host.global) != len(want) {
		t.Fatalf("global chain = %v, want %v", host.global, want)
	}
	if host.clip.last != "c" {
		t.Fatalf("clipboard = %q, want last merged entry %q", host.clip.last, "c")
	}
}

func TestKillCursorDelegatesAtTwoRemaining(t *testing.T) {
	u, _ := newTestWindow(t, "hello")
	u.Cursors = []*Cursor{{Point: 0}, {Point: 1}}
	u.SelectedCursor = 0
	host := &fakeHost{clip: &fakeClipboard{}}

	KillCursor(u, host, 1)

	if len(u.Cursors) != 1 {
		t.Fatalf("len(Cursors) = %d, want 1 (should have delegated to KillExtraCursors)", len(u.Cursors))
	}
}

func TestKillCursorAdjustsSelectedIndex(t *testing.T) {
	u, _ := newTestWindow(t, "hello")
	u.Cursors = []*Cursor{{Point: 0}, {Point: 1}, {Point: 2}}
	u.SelectedCursor = 2

	KillCursor(u, &fakeHost{clip: &fakeClipboard{}}, 0)

	if len(u.Cursors) != 2 {
		t.Fatalf("len(Cursors) = %d, want 2", len(u.Cursors))
	}
	if u.SelectedCursor != 1 {
		t.Fatalf("SelectedCursor = %d, want 1 (shifted down after removing index 0)", u.SelectedCursor)
	}
}
