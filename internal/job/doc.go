// Package job implements the synchronous/asynchronous job scheduler that
// cooperates with internal/engine/handle's locking discipline: a
// foreground pass of short synchronous jobs run between keystroke
// dispatches, and a background worker pool drains asynchronous jobs that
// tick cooperatively (FINISHED, MADE_PROGRESS, or STALLED) and hold only
// weak references to the buffer handles they work against.
//
// The scheduling shape is grounded on dispatcher/hook/manager.go's
// registered-collection-with-a-run-pass style and on
// project/watcher/debounce.go's background-goroutine-plus-stop-channel
// shutdown idiom; neither teacher file models tick-based cooperative
// scheduling directly; spec.md §4.8 is followed for that part.
//
// This package also hosts TokenizeJob, the asynchronous job that keeps a
// buffer's internal/engine/tokencache.Cache populated in the background,
// since tokencache itself is deliberately kept free of any dependency on
// buffer or handle (see tokencache/doc.go) to avoid an import cycle.
package job
