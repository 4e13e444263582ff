package job

import "github.com/mageditor/kernel/internal/engine/handle"

// Result reports the outcome of one Job.Tick call.
type Result int

const (
	// Finished means the job is done and should be dropped.
	Finished Result = iota
	// MadeProgress means the job did useful work and should be
	// re-enqueued immediately.
	MadeProgress
	// Stalled means the job could not make progress this tick (e.g. a
	// try-lock failed) and should be retried after a short sleep.
	Stalled
)

// String renders a Result for logging.
func (r Result) String() string {
	switch r {
	case Finished:
		return "FINISHED"
	case MadeProgress:
		return "MADE_PROGRESS"
	case Stalled:
		return "STALLED"
	default:
		return "UNKNOWN"
	}
}

// Job is one unit of cooperative work. Tick is called repeatedly until it
// returns Finished; Kill is called once, in place of any further Tick, if
// the scheduler is shutting down or the job's target has become invalid.
type Job interface {
	Tick() Result
	Kill()
}

// WeakBufferRef is a non-owning reference to a buffer handle. An
// asynchronous job holds one of these instead of a *handle.Handle
// directly, and upgrades it immediately before locking; if the handle has
// been killed in the meantime, Upgrade reports false and the job should
// clean up and return Finished.
type WeakBufferRef struct {
	h *handle.Handle
}

// NewWeakBufferRef wraps h for weak, kill-aware access.
func NewWeakBufferRef(h *handle.Handle) WeakBufferRef {
	return WeakBufferRef{h: h}
}

// Upgrade returns the underlying handle and true if it is still alive, or
// (nil, false) if it has been killed.
func (w WeakBufferRef) Upgrade() (*handle.Handle, bool) {
	if w.h == nil || !w.h.Alive() {
		return nil, false
	}
	return w.h, true
}
