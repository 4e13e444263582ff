package edit

// Rebase re-offsets an edit produced against a stale buffer state so it can
// be applied on top of changes that merged in the meantime. It reports
// conflict (and leaves unmerged partially adjusted but unusable) when the
// unmerged edit's range overlaps a merged edit's range: an insert landing
// inside a removed region, or two removes overlapping.
//
// Grounded on offset_unmerged_edit_by_merged_changes in
// original_source/src/core/rebase.cpp.
func Rebase(mergedChanges []Change, unmerged *Edit) (conflict bool) {
	for _, mergedChange := range mergedChanges {
		if mergedChange.IsRedo {
			for _, mergedEdit := range mergedChange.Commit.Edits {
				if offsetByMergedEdit(mergedChange, mergedEdit, unmerged) {
					return true
				}
			}
		} else {
			edits := mergedChange.Commit.Edits
			for i := len(edits) - 1; i >= 0; i-- {
				if offsetByMergedEdit(mergedChange, edits[i], unmerged) {
					return true
				}
			}
		}
	}
	return false
}

// isApplyingInsert reports whether, at this point in the merged history, the
// net effect on the buffer was an insertion: either a redo of an INSERT or
// an undo of a REMOVE.
func isApplyingInsert(change Change, e Edit) bool {
	return change.IsRedo == (e.Kind == Insert)
}

func offsetByMergedEdit(mergedChange Change, mergedEdit Edit, unmerged *Edit) bool {
	unmergedLen := unmerged.Len()
	mergedLen := mergedEdit.Len()

	if isApplyingInsert(mergedChange, mergedEdit) {
		if unmerged.Position <= mergedEdit.Position &&
			unmerged.Position+unmergedLen >= mergedEdit.Position {
			return true
		}
	} else {
		if unmerged.Position <= mergedEdit.Position+mergedLen &&
			unmerged.Position+unmergedLen >= mergedEdit.Position {
			return true
		}
	}

	unmerged.Position = uint64(int64(unmerged.Position) + offsetRelative(mergedChange, mergedEdit, unmerged.Position, false))
	return false
}

// offsetRelative computes how much currentPosition shifts due to one
// previously-merged edit. allowMergeInsert is always false for rebasing
// (it exists to mirror the original's parameter for fidelity; true would
// let an insert merge into the interior of the unmerged edit's own payload,
// which this implementation never requests).
func offsetRelative(previousChange Change, previous Edit, currentPosition uint64, allowMergeInsert bool) int64 {
	if isApplyingInsert(previousChange, previous) {
		if currentPosition >= previous.Position {
			if !allowMergeInsert || currentPosition >= previous.Position+previous.Len() {
				return int64(previous.Len())
			}
			return int64(currentPosition - previous.Position)
		}
		return 0
	}
	if currentPosition >= previous.Position {
		return -int64(previous.Len())
	}
	return 0
}
