package job

import "github.com/mageditor/kernel/internal/engine/tokencache"

// TokenizeJob is the asynchronous job described in spec.md §4.4: it keeps
// a buffer's tokencache.Cache populated past the tail the foreground's
// synchronous Buffer.UpdateTokenCache call already covers, by generating
// one checkpoint's worth of tokens at a time against a private copy of
// the buffer's content, then publishing the result back only if no
// writer has committed in the meantime.
//
// tokencache.Cache itself has no dependency on buffer or handle (see
// tokencache/doc.go); TokenizeJob is what bridges the two, so it lives
// here instead.
type TokenizeJob struct {
	ref WeakBufferRef
}

// NewTokenizeJob creates a job that keeps ref's token cache warm in the
// background until the buffer is killed or its tokenizer runs to the end
// of the content.
func NewTokenizeJob(ref WeakBufferRef) *TokenizeJob {
	return &TokenizeJob{ref: ref}
}

// Tick implements Job. Each call does at most one checkpoint's worth of
// work: try-read, snapshot, tokenize off-lock, try-read again to publish.
func (j *TokenizeJob) Tick() Result {
	h, alive := j.ref.Upgrade()
	if !alive {
		return Finished
	}

	buf, ok := h.TryLockReading()
	if !ok {
		return Stalled
	}
	tok := buf.Mode.Tokenizer()
	if tok == nil {
		h.Unlock()
		return Finished
	}
	if buf.TokenCache.RanToEnd {
		h.Unlock()
		return Finished
	}

	snapshot := buf.Contents.Clone()
	baseline := len(buf.Changes())
	private := cloneCache(buf.TokenCache)
	h.Unlock()

	// NextCheckPoint either appends a checkpoint or marks RanToEnd; either
	// way there is something new to publish.
	private.NextCheckPoint(snapshot, tok)

	buf, ok = h.TryLockReading()
	if !ok {
		return Stalled
	}
	if len(buf.Changes()) != baseline {
		// A writer committed since the snapshot was taken; our private
		// checkpoint may be stale. Let Buffer.UpdateTokenCache's
		// synchronous pass reconcile on the next commit, and retry from
		// the (now current) tail next tick.
		h.Unlock()
		return MadeProgress
	}

	buf = h.IncreaseReadingToWriting()
	buf.TokenCache.CheckPoints = private.CheckPoints
	buf.TokenCache.RanToEnd = private.RanToEnd
	h.Unlock()

	if buf.TokenCache.RanToEnd {
		return Finished
	}
	return MadeProgress
}

// Kill implements Job. The job holds no resources beyond its weak
// reference, so there is nothing to release.
func (j *TokenizeJob) Kill() {}

var _ Job = (*TokenizeJob)(nil)

func cloneCache(c *tokencache.Cache) *tokencache.Cache {
	cp := &tokencache.Cache{
		ChangeIndex: c.ChangeIndex,
		RanToEnd:    c.RanToEnd,
		CheckPoints: make([]tokencache.CheckPoint, len(c.CheckPoints)),
	}
	copy(cp.CheckPoints, c.CheckPoints)
	return cp
}
