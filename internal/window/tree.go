package window

import "math"

// Tree owns a window tree's root node and provides the structural
// operations (resize, split, cycle) that must see and update parent
// pointers consistently.
type Tree struct {
	Root Node
}

// NewTree builds a tree with a single Unified leaf as its root.
func NewTree(root *Unified) *Tree {
	return &Tree{Root: root}
}

// SetSize propagates a (rows, cols) allotment down the tree. A Split
// divides its allotment between its two children according to Tag and
// Ratio: Vertical reserves one column for the divider and gives First
// floor(avail*Ratio) of the remaining columns; Horizontal gives First
// floor(rows*Ratio) rows. Both children always receive the full
// complementary dimension.
func SetSize(n Node, rows, cols int) {
	switch v := n.(type) {
	case *Unified:
		v.rows, v.cols = rows, cols
	case *Split:
		v.rows, v.cols = rows, cols
		switch v.Tag {
		case Vertical:
			availCols := cols - 1
			if availCols < 0 {
				availCols = 0
			}
			firstCols := int(math.Floor(float64(availCols) * v.Ratio))
			SetSize(v.First, rows, firstCols)
			SetSize(v.Second, rows, availCols-firstCols)
		case Horizontal:
			firstRows := int(math.Floor(float64(rows) * v.Ratio))
			SetSize(v.First, firstRows, cols)
			SetSize(v.Second, rows-firstRows, cols)
		}
	}
}

// SplitWindow clones leaf under newID and installs a new Split parent
// holding {leaf, clone, ratio=0.5} in leaf's former place in the tree. If
// leaf's existing parent is fused, the new Split is inserted one level
// higher, above the fused parent, so the fused pair itself is never torn
// apart by an unrelated split.
func (t *Tree) SplitWindow(leaf *Unified, newID string, tag SplitTag) *Unified {
	clone := leaf.Clone(newID)
	rootRows, rootCols := t.Root.Rows(), t.Root.Cols()

	target := leaf.Parent()
	var replaceIn Node = leaf
	if target != nil && target.Fused {
		replaceIn = target
		target = target.Parent()
	}

	split := &Split{Tag: tag, First: replaceIn, Second: clone, Ratio: 0.5}
	replaceIn.setParent(split)
	clone.setParent(split)

	if target == nil {
		t.Root = split
	} else {
		if target.First == replaceIn {
			target.First = split
		} else {
			target.Second = split
		}
		split.setParent(target)
	}

	SetSize(t.Root, rootRows, rootCols)
	return clone
}

// leaves collects every Unified leaf under n, in depth-first (First before
// Second) order.
func leaves(n Node, out *[]*Unified) {
	switch v := n.(type) {
	case *Unified:
		*out = append(*out, v)
	case *Split:
		leaves(v.First, out)
		leaves(v.Second, out)
	}
}

// CycleWindow returns the next leaf after current in a depth-first
// traversal of t, wrapping around to the first leaf.
func (t *Tree) CycleWindow(current *Unified) *Unified {
	var all []*Unified
	leaves(t.Root, &all)
	for i, u := range all {
		if u == current {
			return all[(i+1)%len(all)]
		}
	}
	return current
}

// ToggleCycleWindow returns current's sibling under its immediate parent
// split (the new selection); the tree itself is not changed. If current
// has no parent (it is the tree's sole root leaf), it returns current.
func (t *Tree) ToggleCycleWindow(current *Unified) Node {
	parent := current.Parent()
	if parent == nil {
		return current
	}
	if parent.First == current {
		return parent.Second
	}
	return parent.First
}
