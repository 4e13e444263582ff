package handle

import (
	"sync"
	"sync/atomic"

	"github.com/mageditor/kernel/internal/engine/buffer"
)

// state encodes the lock's active status: 0 means unlocked, writeLocked
// means a single writer holds it, and any value >= readerBase means
// (value - readerBase + 1) readers hold it.
const (
	unlocked    = 0
	writeLocked = 1
	readerBase  = 2
)

// Handle is a reader-writer lock wrapping a *buffer.Buffer. Readers may
// share access; at most one writer may hold it at a time, and writers are
// prioritized over new readers so a steady stream of readers cannot starve
// a pending writer.
//
// The zero value is not usable; construct with New.
type Handle struct {
	buf *buffer.Buffer

	mu             sync.Mutex
	cond           *sync.Cond
	state          uint32
	pendingWriters uint32

	killed atomic.Bool
}

// New wraps buf in a fresh, unlocked Handle.
func New(buf *buffer.Buffer) *Handle {
	h := &Handle{buf: buf}
	h.cond = sync.NewCond(&h.mu)
	return h
}

// Kill marks the handle as permanently retired. It does not affect the
// lock itself; callers still acquire and release it normally around the
// buffer's teardown. Asynchronous jobs holding only a weak reference to
// this handle observe Kill the next time they try to upgrade it.
func (h *Handle) Kill() { h.killed.Store(true) }

// Alive reports whether Kill has not yet been called.
func (h *Handle) Alive() bool { return !h.killed.Load() }

// LockWriting acquires exclusive access, blocking until no reader or writer
// holds the lock. It returns the wrapped buffer for mutation.
func (h *Handle) LockWriting() *buffer.Buffer {
	h.mu.Lock()
	h.pendingWriters++
	for h.state != unlocked {
		h.cond.Wait()
	}
	h.pendingWriters--
	h.state = writeLocked
	h.mu.Unlock()
	debugWriteLocked(h)
	return h.buf
}

// LockReading acquires shared access, blocking while a writer holds the
// lock or is waiting to acquire it.
func (h *Handle) LockReading() *buffer.Buffer {
	h.mu.Lock()
	for h.state == writeLocked || h.pendingWriters > 0 {
		h.cond.Wait()
	}
	if h.state == unlocked {
		h.state = readerBase
	} else {
		h.state++
	}
	h.mu.Unlock()
	debugReadLocked(h)
	return h.buf
}

// TryLockReading attempts to acquire shared access without blocking. It
// fails (returns nil, false) if a writer currently holds the lock or is
// waiting to acquire it, so that writers are never starved by a steady
// stream of try-lock readers.
func (h *Handle) TryLockReading() (*buffer.Buffer, bool) {
	h.mu.Lock()
	if h.state == writeLocked || h.pendingWriters > 0 {
		h.mu.Unlock()
		return nil, false
	}
	if h.state == unlocked {
		h.state = readerBase
	} else {
		h.state++
	}
	h.mu.Unlock()
	debugReadLocked(h)
	return h.buf, true
}

// Unlock releases one holder's claim on the lock, whether that holder was
// the writer or one of possibly several readers.
func (h *Handle) Unlock() {
	h.mu.Lock()
	wasWrite := h.state == writeLocked
	switch {
	case h.state == writeLocked:
		h.state = unlocked
	case h.state == readerBase:
		h.state = unlocked
	case h.state > readerBase:
		h.state--
	default:
		h.mu.Unlock()
		panic("handle: Unlock called on an already-unlocked handle")
	}
	h.mu.Unlock()
	h.cond.Broadcast()
	if wasWrite {
		debugWriteUnlocked(h)
	} else {
		debugReadUnlocked(h)
	}
}

// ReduceWritingToReading atomically downgrades the caller's exclusive hold
// to a shared one, without ever passing through the unlocked state. This
// lets a writer that just finished mutating the buffer continue reading it
// (e.g. to report the edits it made) without other writers jumping the
// queue first.
func (h *Handle) ReduceWritingToReading() *buffer.Buffer {
	h.mu.Lock()
	if h.state != writeLocked {
		h.mu.Unlock()
		panic("handle: ReduceWritingToReading called without holding the write lock")
	}
	h.state = readerBase
	h.mu.Unlock()
	h.cond.Broadcast()
	debugWriteUnlocked(h)
	debugReadLocked(h)
	return h.buf
}

// IncreaseReadingToWriting atomically upgrades the caller's shared hold to
// an exclusive one. If other readers are active, this blocks until they
// all release, and another writer may acquire the lock first once this
// reader's own share is given up — callers should treat a return from this
// call the same as a fresh LockWriting, re-validating any assumption that
// depended on nobody else having written in between.
func (h *Handle) IncreaseReadingToWriting() *buffer.Buffer {
	h.mu.Lock()
	if h.state < readerBase {
		h.mu.Unlock()
		panic("handle: IncreaseReadingToWriting called without holding a read lock")
	}
	h.pendingWriters++
	if h.state == readerBase {
		h.state = unlocked
	} else {
		h.state--
	}
	for h.state != unlocked {
		h.cond.Wait()
	}
	h.pendingWriters--
	h.state = writeLocked
	h.mu.Unlock()
	debugReadUnlocked(h)
	debugWriteLocked(h)
	return h.buf
}
