// Package handle implements the buffer handle: a reader-writer lock with
// try-lock and atomic upgrade/downgrade operations, wrapping a
// *buffer.Buffer so the foreground dispatcher and background jobs can
// share it safely.
//
// Grounded on the teacher's one-mutex-guards-one-small-state-field style
// (internal/engine/buffer/buffer.go, internal/dispatcher/hook/manager.go,
// internal/project/watcher's RWMutex-guarded structs), generalized from a
// bare sync.RWMutex into a sync.Mutex + sync.Cond state machine because
// the spec requires an atomic upgrade/downgrade the stdlib RWMutex cannot
// express. Debug-build thread-ownership assertions are grounded in
// original_source/src/buffer_handle.cpp and gated behind a build tag, in
// the same defensive-assertion spirit as the teacher's dispatcher/router.go.
package handle
