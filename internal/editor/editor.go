package editor

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mageditor/kernel/internal/applog"
	"github.com/mageditor/kernel/internal/capability"
	"github.com/mageditor/kernel/internal/clipboard"
	"github.com/mageditor/kernel/internal/client"
	"github.com/mageditor/kernel/internal/command"
	"github.com/mageditor/kernel/internal/engine/buffer"
	"github.com/mageditor/kernel/internal/engine/handle"
	"github.com/mageditor/kernel/internal/job"
	"github.com/mageditor/kernel/internal/keybind"
	"github.com/mageditor/kernel/internal/window"
)

// Options configures an Editor. Mirrors the subset of the teacher's
// app.Options that the core (rather than a front end's flag parsing)
// cares about.
type Options struct {
	// Debug enables debug-level logging.
	Debug bool
	// LogLevel sets the logging verbosity ("debug", "info", "warn", "error").
	LogLevel string
	// ReadOnly opens every buffer created via NewBufferFromText read-only.
	ReadOnly bool
	// AsyncWorkers is the job scheduler's background worker count. Defaults
	// to 1 if <= 0.
	AsyncWorkers int
}

// Editor owns every open buffer and client session, the three-tier
// command dispatcher, the job scheduler, and the default clipboard. It is
// the single object a front end (cmd/kernel, or a future terminal/GUI
// shell) needs to hold.
//
// Editor itself never touches the filesystem: per spec.md's capability
// boundary, file I/O belongs to an external collaborator (cmd/kernel
// reads files and hands their content to NewBufferFromText). This keeps
// the core testable without a filesystem and keeps the boundary the
// specification draws.
type Editor struct {
	mu sync.RWMutex

	buffers map[string]*handle.Handle
	order   []string

	sessions map[string]*client.Session

	Dispatcher *command.Dispatcher
	scheduler  *job.Scheduler
	clipboard  capability.Clipboard
	logger     *applog.Logger

	opts Options
}

// New creates an Editor with an empty buffer set, a fresh dispatcher with
// only the built-in commands registered, a job scheduler, and an
// in-process clipboard.
func New(opts Options) *Editor {
	workers := opts.AsyncWorkers
	if workers <= 0 {
		workers = 1
	}
	level := applog.LevelInfo
	if opts.LogLevel != "" {
		level = applog.ParseLevel(opts.LogLevel)
	}
	if opts.Debug {
		level = applog.LevelDebug
	}

	return &Editor{
		buffers:    make(map[string]*handle.Handle),
		sessions:   make(map[string]*client.Session),
		Dispatcher: command.NewDispatcher(),
		scheduler:  job.NewScheduler(workers),
		clipboard:  clipboard.New(),
		logger:     applog.New(applog.Config{Level: level, Prefix: "kernel"}),
		opts:       opts,
	}
}

// Logger returns the editor's logger.
func (e *Editor) Logger() *applog.Logger { return e.logger }

// Clipboard returns the editor's default clipboard capability.
func (e *Editor) Clipboard() capability.Clipboard { return e.clipboard }

// NewBuffer creates and registers an empty buffer, returning its handle
// and newly minted id.
func (e *Editor) NewBuffer(directory, name string, opts ...buffer.Option) (*handle.Handle, string) {
	id := uuid.New().String()
	if e.opts.ReadOnly {
		opts = append(opts, buffer.WithReadOnly(true))
	}
	b := buffer.New(id, directory, name, opts...)
	return e.register(id, b), id
}

// NewBufferFromText creates and registers a buffer pre-populated with
// text, as a front end does after reading a file's content from disk.
func (e *Editor) NewBufferFromText(directory, name, text string, opts ...buffer.Option) (*handle.Handle, string) {
	id := uuid.New().String()
	if e.opts.ReadOnly {
		opts = append(opts, buffer.WithReadOnly(true))
	}
	b := buffer.NewFromString(id, directory, name, text, opts...)
	h := e.register(id, b)
	e.maybeSpawnTokenizeJob(h, b)
	return h, id
}

func (e *Editor) register(id string, b *buffer.Buffer) *handle.Handle {
	h := handle.New(b)
	e.mu.Lock()
	e.buffers[id] = h
	e.order = append(e.order, id)
	e.mu.Unlock()
	return h
}

// maybeSpawnTokenizeJob enqueues a background TokenizeJob if the buffer's
// mode has a tokenizer, logging the job under its own uuid so multiple
// concurrent tokenize jobs can be told apart in the log.
func (e *Editor) maybeSpawnTokenizeJob(h *handle.Handle, b *buffer.Buffer) {
	if b.Mode == nil || b.Mode.Tokenizer() == nil {
		return
	}
	jobID := uuid.New().String()
	e.logger.WithComponent("job").Debug("spawning tokenize job %s for buffer %s", jobID, b.ID)
	e.scheduler.EnqueueAsync(job.NewTokenizeJob(job.NewWeakBufferRef(h)))
}

// Buffer returns the handle registered under id.
func (e *Editor) Buffer(id string) (*handle.Handle, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	h, ok := e.buffers[id]
	return h, ok
}

// Buffers returns every open buffer's handle, in open order.
func (e *Editor) Buffers() []*handle.Handle {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]*handle.Handle, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.buffers[id])
	}
	return out
}

// CloseBuffer kills the buffer's handle (any weak reference, such as a
// running TokenizeJob, observes this on its next tick) and drops it from
// the registry.
func (e *Editor) CloseBuffer(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	h, ok := e.buffers[id]
	if !ok {
		return ErrBufferNotFound
	}
	h.Kill()
	delete(e.buffers, id)
	for i, existing := range e.order {
		if existing == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	return nil
}

// HasDirty reports whether any open buffer has uncommitted-to-disk
// changes.
func (e *Editor) HasDirty() bool {
	for _, h := range e.Buffers() {
		buf := h.LockReading()
		dirty := !buf.IsUnchanged()
		h.Unlock()
		if dirty {
			return true
		}
	}
	return false
}

// NewSession creates a client session with its own scratch mini-buffer
// and messages buffer, and a scratch text buffer selected in its single
// window. The caller picks what the window shows next via SelectBuffer.
func (e *Editor) NewSession() (*client.Session, string) {
	id := uuid.New().String()

	selected, _ := e.NewBuffer("", "scratch")
	mini := handle.New(buffer.New(id+"-mini", "", "*mini*"))
	messages := handle.New(buffer.New(id+"-messages", "", "*messages*"))

	sess := client.NewSession(id, selected, mini, messages, e.clipboard)

	e.mu.Lock()
	e.sessions[id] = sess
	e.mu.Unlock()

	return sess, id
}

// Session returns the session registered under id.
func (e *Editor) Session(id string) (*client.Session, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	sess, ok := e.sessions[id]
	return sess, ok
}

// CloseSession drops a session from the registry. It does not close the
// buffers the session's windows were viewing; other sessions or windows
// may still hold handles on them.
func (e *Editor) CloseSession(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.sessions, id)
}

// SelectBuffer switches the named session's selected window onto
// bufferID, resetting its cursor to a single point at the start and its
// change watermark to the buffer's current change count.
func (e *Editor) SelectBuffer(sessionID, bufferID string) error {
	sess, ok := e.Session(sessionID)
	if !ok {
		return ErrSessionNotFound
	}
	h, ok := e.Buffer(bufferID)
	if !ok {
		return ErrBufferNotFound
	}

	win := sess.SelectedWindow()
	win.Handle = h
	win.Cursors = []*window.Cursor{{}}
	win.SelectedCursor = 0
	win.StartPosition = 0

	buf := h.LockReading()
	win.ChangeIndex = len(buf.Changes())
	h.Unlock()
	return nil
}

// HandleKey dispatches one keystroke against the named session, timestamped
// with the current time for any message the dispatch loop posts.
func (e *Editor) HandleKey(sessionID string, key keybind.Key) error {
	sess, ok := e.Session(sessionID)
	if !ok {
		return ErrSessionNotFound
	}
	return e.Dispatcher.Dispatch(sess, key, time.Now())
}

// Tick runs one pass of the synchronous job queue. A front end calls this
// once per iteration of its own event loop, between keystroke dispatches,
// following spec.md §4.8's synchronous-job contract.
func (e *Editor) Tick() {
	e.scheduler.RunSynchronousPass()
}

// Shutdown stops the job scheduler, killing any synchronous jobs still
// pending and waiting for background workers to drain.
func (e *Editor) Shutdown() {
	e.scheduler.Stop()
}
