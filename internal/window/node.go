package window

import (
	"github.com/mageditor/kernel/internal/capability"
	"github.com/mageditor/kernel/internal/engine/handle"
)

// SplitTag distinguishes how a Split node partitions its two children.
type SplitTag uint8

const (
	// Vertical partitions columns, leaving one column for the divider.
	Vertical SplitTag = iota
	// Horizontal partitions rows.
	Horizontal
)

// Node is either a *Unified leaf or a *Split interior node.
type Node interface {
	Parent() *Split
	setParent(*Split)
	Rows() int
	Cols() int
}

// Unified is a leaf window viewing one buffer through a handle.
type Unified struct {
	ID             string
	Handle         *handle.Handle
	StartPosition  uint64
	ColumnOffset   int
	ChangeIndex    int
	Cursors        []*Cursor
	SelectedCursor int
	ShowMarks      ShowMarks
	Completion     capability.CompletionContext
	Completing     bool
	Pinned         bool

	rows, cols int
	parent     *Split
}

// Create initializes a Unified window over handle with one cursor at
// position 0, an empty completion cache, and a fresh change watermark.
func Create(h *handle.Handle, id string) *Unified {
	return &Unified{
		ID:      id,
		Handle:  h,
		Cursors: []*Cursor{{}},
	}
}

// Clone duplicates u under newID, including its cursor list, sharing the
// same handle reference.
func (u *Unified) Clone(newID string) *Unified {
	clone := &Unified{
		ID:             newID,
		Handle:         u.Handle,
		StartPosition:  u.StartPosition,
		ColumnOffset:   u.ColumnOffset,
		ChangeIndex:    u.ChangeIndex,
		SelectedCursor: u.SelectedCursor,
		ShowMarks:      u.ShowMarks,
		Completion:     u.Completion,
		Completing:     u.Completing,
		Pinned:         u.Pinned,
		rows:           u.rows,
		cols:           u.cols,
	}
	clone.Cursors = make([]*Cursor, len(u.Cursors))
	for i, c := range u.Cursors {
		cc := c.Clone()
		clone.Cursors[i] = &cc
	}
	return clone
}

func (u *Unified) Parent() *Split     { return u.parent }
func (u *Unified) setParent(p *Split) { u.parent = p }
func (u *Unified) Rows() int          { return u.rows }
func (u *Unified) Cols() int          { return u.cols }

// SelectedCursorPtr returns the currently selected cursor.
func (u *Unified) SelectedCursorPtr() *Cursor {
	return u.Cursors[u.SelectedCursor]
}

// Split is an interior node dividing screen space between two children
// according to Ratio, which must stay within [0.1, 0.9].
type Split struct {
	Tag    SplitTag
	First  Node
	Second Node
	Ratio  float64
	Fused  bool

	rows, cols int
	parent     *Split
}

func (s *Split) Parent() *Split     { return s.parent }
func (s *Split) setParent(p *Split) { s.parent = p }
func (s *Split) Rows() int          { return s.rows }
func (s *Split) Cols() int          { return s.cols }
