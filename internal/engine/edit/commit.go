package edit

// Commit is an atomic group of edits produced by one transaction. A Commit
// is applied by applying its edits in order; unapplied (for undo) by
// reversing each edit in reverse order.
type Commit struct {
	ID    uint64
	Edits []Edit
}

// Apply applies every edit of c, in order, through applier.
func (c Commit) Apply(applier func(Edit) error) error {
	for _, e := range c.Edits {
		if err := applier(e); err != nil {
			return err
		}
	}
	return nil
}

// Unapply reverses every edit of c, in reverse order.
func (c Commit) Unapply(unapplier func(Edit) error) error {
	for i := len(c.Edits) - 1; i >= 0; i-- {
		if err := unapplier(c.Edits[i]); err != nil {
			return err
		}
	}
	return nil
}

// Change is what observers actually see: applying a Commit forward yields a
// Change with IsRedo=true; undo yields IsRedo=false; redo yields IsRedo=true
// again. A Buffer keeps a chronological Change log distinct from its Commit
// stack.
type Change struct {
	Commit Commit
	IsRedo bool
}

// PositionAfterChanges iterates changes in order and, for each, dispatches
// on IsRedo: a redo change transforms pos forward through its commit's
// edits in order; an undo change transforms pos as if those edits were
// unapplied, in reverse order.
func PositionAfterChanges(changes []Change, pos uint64) uint64 {
	for _, ch := range changes {
		if ch.IsRedo {
			pos = PositionAfterEdits(pos, ch.Commit.Edits)
		} else {
			pos = PositionBeforeEdits(pos, ch.Commit.Edits)
		}
	}
	return pos
}
