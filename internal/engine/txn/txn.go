package txn

import (
	"github.com/mageditor/kernel/internal/engine/edit"
	"github.com/mageditor/kernel/internal/engine/strval"
)

// ErrorSink reports a transaction failure message to whichever caller
// requested the commit (a client, an automated handler, or a plain error
// return) — the spec's three interchangeable failure sinks collapse to one
// callback type in idiomatic Go; pass nil to discard the message.
type ErrorSink func(msg string)

// Target is the subset of Buffer a Transaction needs: access to the
// buffer's commit-arena allocator, and the ability to actually apply an
// accumulated edit set as a Commit. Buffer implements this; txn does not
// import the buffer package, so the buffer package and its tests can use
// Transactions without an import cycle.
type Target interface {
	Arena() *strval.Arena
	ApplyTransaction(edits []edit.Edit, committer string) (ok bool, failureMessage string)
}

// Transaction accumulates Edits and commits them atomically against its
// Target. Its lifecycle is tied to the target's arena save-point: on
// construction the save-point is recorded; if the transaction is aborted
// (or simply dropped) without a successful Commit, the save-point is
// rewound so scratch payload allocations don't linger.
type Transaction struct {
	target    Target
	save      strval.SavePoint
	edits     []edit.Edit
	committed bool
}

// Begin starts a transaction against target, recording its arena
// save-point.
func Begin(target Target) *Transaction {
	return &Transaction{target: target, save: target.Arena().Save()}
}

// ValueAllocator returns the arena that edit payloads outliving this
// transaction should be allocated from.
func (tx *Transaction) ValueAllocator() *strval.Arena {
	return tx.target.Arena()
}

// Push appends an edit to the transaction.
func (tx *Transaction) Push(e edit.Edit) {
	tx.edits = append(tx.edits, e)
}

// Edits returns the edits accumulated so far.
func (tx *Transaction) Edits() []edit.Edit {
	return tx.edits
}

// Commit finalizes the transaction. With no edits, it is a no-op success.
// Otherwise it asks the target to apply the accumulated edits as one
// Commit; on failure the message is reported through sink (if non-nil) and
// the transaction remains uncommitted, so a subsequent Abort still rewinds
// the arena.
func (tx *Transaction) Commit(committer string, sink ErrorSink) bool {
	if len(tx.edits) == 0 {
		tx.committed = true
		return true
	}
	ok, msg := tx.target.ApplyTransaction(tx.edits, committer)
	if !ok {
		if sink != nil {
			sink(msg)
		}
		return false
	}
	tx.committed = true
	return true
}

// Abort rewinds the target's arena to this transaction's save-point if it
// was never successfully committed. Go has no destructors, so callers use
// `defer tx.Abort()` immediately after Begin as the idiomatic stand-in for
// the spec's "on drop without successful commit" rule.
func (tx *Transaction) Abort() {
	if !tx.committed {
		tx.target.Arena().Rewind(tx.save)
	}
}

// Committed reports whether Commit has already succeeded.
func (tx *Transaction) Committed() bool {
	return tx.committed
}
