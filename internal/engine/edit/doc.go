// Package edit implements the atomic mutation unit (Edit), its aggregate
// (Commit), and the observable log record (Change), together with the
// position-transformation algorithms that let cursors and other edits
// follow a buffer across a sequence of mutations.
//
// The position-transform rules are grounded on the teacher's
// cursor.TransformOffset/TransformOffsetSticky (internal/engine/cursor/transform.go
// in the dshills-keystorm retrieval pack), generalized so the BEFORE/AFTER
// boundary choice is a field on the Edit itself rather than a parameter
// supplied at each call site. Edit rebasing is grounded on
// offset_unmerged_edit_by_merged_changes in original_source/src/core/rebase.cpp.
package edit
