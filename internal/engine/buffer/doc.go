// Package buffer implements the in-memory text document: content plus its
// commit/undo history, the chronological change log, the incremental
// commit-arena allocator, and the language Mode. It does not lock itself —
// internal/engine/handle supplies the reader-writer lock that makes a
// Buffer safe to share between the foreground and background jobs, and
// per-window cursor state lives in internal/window, not here (spec.md §4.6
// shows cursors owned by the Unified window, not the Buffer, despite the
// component table's shorthand "+ cursors list"; this package follows the
// detailed section).
//
// Grounded on the teacher's internal/engine/buffer package for the overall
// "one struct wrapping the text store plus editor metadata" shape
// (buffer.go), and on internal/engine/history/{command,group,stack}.go for
// the undo/redo stack discipline: a single chronological commits slice
// truncated at commit_index on every new commit, exactly like the
// teacher's stack.go clearing its redo stack on push.
package buffer
