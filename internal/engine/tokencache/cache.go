package tokencache

import (
	"github.com/mageditor/kernel/internal/capability"
	"github.com/mageditor/kernel/internal/engine/content"
	"github.com/mageditor/kernel/internal/engine/edit"
)

// Step is the minimum number of bytes a new checkpoint must cover past the
// previous one.
const Step = 1024

// maxConsecutiveRewrites bounds how many dirty checkpoints in a row Update
// will re-tokenize before giving up on the rest of the cache for this
// pass, so a pathological edit (e.g. opening a block comment near the top
// of a large file) cannot stall the foreground caller.
const maxConsecutiveRewrites = 3

// CheckPoint pairs a position with the tokenizer state that held at that
// position.
type CheckPoint struct {
	Position uint64
	State    uint64
}

// Cache is the checkpoint sequence for one buffer's tokenization.
type Cache struct {
	ChangeIndex int
	CheckPoints []CheckPoint
	RanToEnd    bool
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{}
}

// IsCovered reports whether position is known to be tokenized: either the
// cache ran all the way to the end of the buffer, or position falls within
// Step bytes of the last checkpoint.
func (c *Cache) IsCovered(position uint64) bool {
	if c.RanToEnd {
		return true
	}
	if len(c.CheckPoints) == 0 {
		return false
	}
	last := c.CheckPoints[len(c.CheckPoints)-1]
	return position < last.Position+Step
}

func overlaps(lo, hi, elo, ehi uint64) bool {
	return elo < hi && lo < ehi
}

// Update advances the cache past any edits recorded in changes since
// c.ChangeIndex: checkpoints whose interval a pending edit touched are
// marked dirty, every checkpoint position is translated across the
// pending edits, and dirty checkpoints are re-tokenized left to right
// until one matches its old (translated) state and position — at which
// point everything downstream is known still valid and the rest of this
// pass is skipped. If three dirty checkpoints in a row fail to
// re-converge, the cache is truncated at that point and RanToEnd is
// cleared so a background job can repopulate the tail.
func Update(c *Cache, contents *content.Contents, tok capability.Tokenizer, changes []edit.Change) {
	if tok == nil || c.ChangeIndex >= len(changes) {
		return
	}
	pending := changes[c.ChangeIndex:]
	c.ChangeIndex = len(changes)

	if len(c.CheckPoints) == 0 {
		return
	}

	dirty := make([]bool, len(c.CheckPoints))
	positions := make([]uint64, len(c.CheckPoints))
	for i, cp := range c.CheckPoints {
		positions[i] = cp.Position
	}

	markOverlap := func(e edit.Edit) {
		lo, hi := e.Position, e.Position+e.Len()
		for i := 1; i < len(positions); i++ {
			if overlaps(positions[i-1], positions[i], lo, hi) {
				dirty[i] = true
			}
		}
	}

	applyForward := func(e edit.Edit) {
		for i := range positions {
			positions[i] = edit.PositionAfterEdit(positions[i], e)
		}
	}

	for _, ch := range pending {
		edits := ch.Commit.Edits
		if ch.IsRedo {
			for _, e := range edits {
				markOverlap(e)
				applyForward(e)
			}
		} else {
			for i := len(edits) - 1; i >= 0; i-- {
				markOverlap(edits[i])
				applyForward(edits[i].Invert())
			}
		}
	}

	for i, p := range positions {
		c.CheckPoints[i].Position = p
	}

	streak := 0
	for i := 1; i < len(c.CheckPoints); i++ {
		if !dirty[i] {
			streak = 0
			continue
		}

		prev := c.CheckPoints[i-1]
		want := c.CheckPoints[i]
		pos, state, ranToEnd := runUntilPast(contents, tok, prev.Position, prev.State, want.Position)

		if !ranToEnd && pos == want.Position && state == want.State {
			return
		}

		c.CheckPoints[i] = CheckPoint{Position: pos, State: state}
		if ranToEnd {
			c.CheckPoints = c.CheckPoints[:i+1]
			c.RanToEnd = true
			return
		}

		streak++
		if streak >= maxConsecutiveRewrites {
			c.CheckPoints = c.CheckPoints[:i+1]
			c.RanToEnd = false
			return
		}
	}
}

// runUntilPast drives tok from (startPos, startState) until the iterator's
// position reaches or exceeds target, returning the position/state it
// stopped at. If the tokenizer signals end-of-buffer first, ranToEnd is true.
func runUntilPast(contents *content.Contents, tok capability.Tokenizer, startPos, startState, target uint64) (pos uint64, state uint64, ranToEnd bool) {
	it := contents.IteratorAt(startPos)
	pos, state = startPos, startState
	for pos < target {
		_, next, ok := tok.NextToken(it, state)
		if !ok {
			return it.Position(), state, true
		}
		state = next
		pos = it.Position()
	}
	return pos, state, false
}

// NextCheckPoint advances from the cache's last checkpoint (or {0, 0} if
// empty) until the tokenizer has moved at least Step bytes past it, then
// appends the new checkpoint. It returns false and sets RanToEnd if
// end-of-buffer is reached first, leaving no new checkpoint appended.
func (c *Cache) NextCheckPoint(contents *content.Contents, tok capability.Tokenizer) bool {
	var prevPos, state uint64
	if len(c.CheckPoints) > 0 {
		last := c.CheckPoints[len(c.CheckPoints)-1]
		prevPos, state = last.Position, last.State
	}

	it := contents.IteratorAt(prevPos)
	pos := prevPos
	for pos < prevPos+Step {
		_, next, ok := tok.NextToken(it, state)
		if !ok {
			c.RanToEnd = true
			return false
		}
		state = next
		pos = it.Position()
	}

	c.CheckPoints = append(c.CheckPoints, CheckPoint{Position: pos, State: state})
	return true
}

// GenerateCheckPointsUntil seeds the cache (if empty) with {0, 0} and then
// calls NextCheckPoint until a checkpoint lies past position or the
// tokenizer reaches end-of-buffer.
func GenerateCheckPointsUntil(c *Cache, contents *content.Contents, tok capability.Tokenizer, position uint64) {
	if tok == nil {
		return
	}
	if len(c.CheckPoints) == 0 {
		c.CheckPoints = append(c.CheckPoints, CheckPoint{Position: 0, State: 0})
	}
	for !c.RanToEnd && c.CheckPoints[len(c.CheckPoints)-1].Position <= position {
		if !c.NextCheckPoint(contents, tok) {
			return
		}
	}
}
