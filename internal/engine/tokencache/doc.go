// Package tokencache implements the checkpoint-based incremental tokenizer
// cache: a sparse sequence of (position, tokenizer-state) checkpoints that
// lets re-tokenization after an edit resume near the edit instead of from
// the start of the buffer.
//
// This package is deliberately data-level only: it knows about
// *content.Contents, capability.Tokenizer, and this module's own
// edit.Change log, but nothing about *buffer.Buffer or the handle package's
// locking. The asynchronous background pass described in spec.md §4.4
// (acquire a read lock, tokenize a private copy, upgrade to a write lock,
// swap in if uncontested) needs both buffer and handle, and living here
// would create an import cycle (buffer already holds a *Cache field); that
// orchestration instead belongs to internal/job, grounded on
// internal/dispatcher/hook/manager.go's tick-driven background pass shape.
//
// No direct teacher analog for the checkpoint algorithm itself (the
// teacher tokenizes via an external LSP server, not an in-process
// incremental tokenizer); it is new code grounded directly on spec.md
// §4.4, reusing this module's own internal/engine/edit.PositionAfterEdit
// to keep checkpoints aligned across the pending edits of each Update
// call.
package tokencache
