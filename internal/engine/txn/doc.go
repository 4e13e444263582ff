// Package txn implements the Transaction builder: the accumulator that a
// command fills with Edits and then commits atomically against a Buffer.
//
// Grounded on the teacher's engine/history package (the Command/Group
// build-then-push shape) generalized to the spec's arena-save-point
// lifecycle: init records the buffer's commit arena save point, commit
// hands the accumulated edits to the buffer, and a transaction dropped
// without a successful commit rewinds the save point so its scratch
// allocations don't linger.
package txn
