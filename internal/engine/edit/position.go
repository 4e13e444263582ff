package edit

// PositionAfterEdit transforms pos as if e had just been applied. The
// boundary bit only matters for INSERT: it decides whether a position
// exactly at e.Position sticks to the left of newly inserted text (AFTER)
// or is pushed past it (BEFORE). REMOVE ignores the boundary.
func PositionAfterEdit(pos uint64, e Edit) uint64 {
	l := e.Len()
	switch e.Kind {
	case Insert:
		if e.Boundary == AfterPosition {
			if pos > e.Position {
				return pos + l
			}
			return pos
		}
		// BeforePosition
		if pos >= e.Position {
			return pos + l
		}
		return pos
	case Remove:
		if pos >= e.Position+l {
			return pos - l
		}
		if pos >= e.Position {
			return e.Position
		}
		return pos
	default:
		return pos
	}
}

// PositionAfterEdits transforms pos as if edits were applied in order.
func PositionAfterEdits(pos uint64, edits []Edit) uint64 {
	for _, e := range edits {
		pos = PositionAfterEdit(pos, e)
	}
	return pos
}

// PositionBeforeEdits transforms pos as if edits were unapplied, each in
// reverse order relative to how they were applied.
func PositionBeforeEdits(pos uint64, edits []Edit) uint64 {
	for i := len(edits) - 1; i >= 0; i-- {
		pos = PositionAfterEdit(pos, edits[i].Invert())
	}
	return pos
}
