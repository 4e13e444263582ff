package buffer

import (
	"errors"

	"github.com/mageditor/kernel/internal/capability"
	"github.com/mageditor/kernel/internal/engine/content"
	"github.com/mageditor/kernel/internal/engine/edit"
	"github.com/mageditor/kernel/internal/engine/strval"
	"github.com/mageditor/kernel/internal/engine/tokencache"
)

// Kind classifies what a Buffer represents.
type Kind uint8

const (
	File Kind = iota
	Directory
	Temporary
)

func (k Kind) String() string {
	switch k {
	case File:
		return "file"
	case Directory:
		return "directory"
	case Temporary:
		return "temporary"
	default:
		return "unknown"
	}
}

// ErrReadOnly is returned when a transaction commits against a read-only
// buffer.
var ErrReadOnly = errors.New("buffer: read-only")

// Buffer is an in-memory text document: its Contents, the chronological
// commit/undo history, the observable change log, and its language Mode.
type Buffer struct {
	ID                 string
	Directory          string
	Name               string
	Kind               Kind
	UseCarriageReturns bool
	ReadOnly           bool
	Mode               capability.Mode

	Contents   *content.Contents
	TokenCache *tokencache.Cache

	commits         []edit.Commit
	commitIndex     int
	commitIDCounter uint64
	lastCommitter   string
	changes         []edit.Change
	savedCommitID   uint64 // 0 is the "no commits saved yet" sentinel

	arena *strval.Arena
}

// Option configures a Buffer at construction.
type Option func(*Buffer)

// WithMode sets the buffer's language mode.
func WithMode(m capability.Mode) Option {
	return func(b *Buffer) { b.Mode = m }
}

// WithKind sets the buffer's kind.
func WithKind(k Kind) Option {
	return func(b *Buffer) { b.Kind = k }
}

// WithReadOnly marks the buffer read-only from construction.
func WithReadOnly(ro bool) Option {
	return func(b *Buffer) { b.ReadOnly = ro }
}

// New creates an empty buffer.
func New(id, directory, name string, opts ...Option) *Buffer {
	b := &Buffer{
		ID:         id,
		Directory:  directory,
		Name:       name,
		Kind:       File,
		Mode:       capability.PlainMode{ModeName: "fundamental"},
		Contents:   content.New(),
		TokenCache: tokencache.New(),
		arena:      strval.NewArena(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromString creates a buffer seeded with initial content.
func NewFromString(id, directory, name, text string, opts ...Option) *Buffer {
	b := New(id, directory, name, opts...)
	b.Contents = content.FromString(text)
	return b
}

// Path composes Directory and Name, the only surface external file I/O
// collaborators need.
func (b *Buffer) Path() string {
	if b.Directory == "" {
		return b.Name
	}
	if b.Directory[len(b.Directory)-1] == '/' {
		return b.Directory + b.Name
	}
	return b.Directory + "/" + b.Name
}

// Arena returns the buffer's commit-arena allocator. It implements
// txn.Target.
func (b *Buffer) Arena() *strval.Arena { return b.arena }

// LastCommitter returns the name of the function that produced the most
// recent commit, or "" if there is none or it was cleared by undo.
func (b *Buffer) LastCommitter() string { return b.lastCommitter }

// CommitIndex returns the buffer's current position in its commit stack.
func (b *Buffer) CommitIndex() int { return b.commitIndex }

// Changes returns the chronological change log. Callers must not mutate
// the returned slice.
func (b *Buffer) Changes() []edit.Change { return b.changes }

// currentCommitID returns the id of the most recently applied commit, or 0
// ("None") if commitIndex == 0.
func (b *Buffer) currentCommitID() uint64 {
	if b.commitIndex == 0 {
		return 0
	}
	return b.commits[b.commitIndex-1].ID
}

// IsUnchanged reports whether the buffer matches its last saved commit.
func (b *Buffer) IsUnchanged() bool {
	return b.currentCommitID() == b.savedCommitID
}

// MarkSaved records the current commit as the saved baseline.
func (b *Buffer) MarkSaved() {
	b.savedCommitID = b.currentCommitID()
}

// ApplyTransaction implements txn.Target. It constructs a Commit from
// edits, truncates the commit stack at commitIndex (dropping any undone
// future), pushes the commit, and invokes redo once to apply it and
// produce a Change.
func (b *Buffer) ApplyTransaction(edits []edit.Edit, committer string) (bool, string) {
	if len(edits) == 0 {
		return true, ""
	}
	if b.ReadOnly {
		return false, ErrReadOnly.Error()
	}

	b.commitIDCounter++
	commit := edit.Commit{ID: b.commitIDCounter, Edits: edits}

	b.commits = append(b.commits[:b.commitIndex], commit)
	if !b.redoLocked() {
		return false, "buffer: redo of freshly pushed commit failed"
	}
	b.lastCommitter = committer
	return true, ""
}

// Commit is the direct Buffer-level equivalent of ApplyTransaction, for
// callers that already have a fully-built edit slice and don't need a
// Transaction's arena save-point bookkeeping.
func (b *Buffer) Commit(edits []edit.Edit, committer string) bool {
	ok, _ := b.ApplyTransaction(edits, committer)
	return ok
}

// redoLocked applies commits[commitIndex] forward, advances commitIndex,
// and appends the resulting Change. Callers must already hold whatever
// exclusive access the handle package provides.
func (b *Buffer) redoLocked() bool {
	if b.commitIndex >= len(b.commits) {
		return false
	}
	commit := b.commits[b.commitIndex]
	if err := commit.Apply(func(e edit.Edit) error { return edit.Apply(b.Contents, e) }); err != nil {
		return false
	}
	b.commitIndex++
	b.changes = append(b.changes, edit.Change{Commit: commit, IsRedo: true})
	return true
}

// Redo re-applies the next undone commit, if any.
func (b *Buffer) Redo() bool {
	if b.ReadOnly {
		return false
	}
	return b.redoLocked()
}

// Undo reverses the most recently applied commit.
func (b *Buffer) Undo() bool {
	if b.ReadOnly || b.commitIndex == 0 {
		return false
	}
	b.commitIndex--
	commit := b.commits[b.commitIndex]
	if err := commit.Unapply(func(e edit.Edit) error { return edit.Unapply(b.Contents, e) }); err != nil {
		// Restore the index: the content store is left in whatever partial
		// state Unapply reached, which should not happen for edits this
		// package itself constructed and validated.
		b.commitIndex++
		return false
	}
	b.changes = append(b.changes, edit.Change{Commit: commit, IsRedo: false})
	b.lastCommitter = ""
	return true
}

// CheckLastCommitter reports whether fn produced the most recent commit
// and that commit's edits each correspond to the given cursor points: for
// an INSERT edit, edit.Position+edit.Len() must equal the matching cursor
// point; for a REMOVE edit, edit.Position must equal it. This predicate is
// how consecutive self-inserts (or backspaces) merge into a single undo
// step (see internal/command's self-insert-char handling).
func (b *Buffer) CheckLastCommitter(fn string, cursorPoints []uint64) bool {
	if b.lastCommitter != fn || b.commitIndex == 0 {
		return false
	}
	last := b.commits[b.commitIndex-1]
	if len(last.Edits) != len(cursorPoints) {
		return false
	}
	for i, e := range last.Edits {
		switch e.Kind {
		case edit.Insert:
			if e.Position+e.Len() != cursorPoints[i] {
				return false
			}
		case edit.Remove:
			if e.Position != cursorPoints[i] {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// UpdateTokenCache replays this buffer's changes since the cache's last
// synchronized watermark against its mode's tokenizer, if it has one. It
// is a no-op for modes with no Tokenizer (e.g. PlainMode).
func (b *Buffer) UpdateTokenCache() {
	tok := b.Mode.Tokenizer()
	if tok == nil {
		return
	}
	tokencache.Update(b.TokenCache, b.Contents, tok, b.changes)
}

// LastCommitEdits returns the edits of the most recently applied commit,
// for callers (self-insert-char merging) that need to inspect and extend
// them. The merge pattern is: call this (or CheckLastCommitter) first to
// read the current last commit, then Undo() to unapply and log the
// reversal, then Commit the extended edit set — ApplyTransaction's own
// stack truncation at commitIndex naturally discards the now-stale
// original commit.
func (b *Buffer) LastCommitEdits() ([]edit.Edit, bool) {
	if b.commitIndex == 0 || b.commitIndex > len(b.commits) {
		return nil, false
	}
	return b.commits[b.commitIndex-1].Edits, true
}
