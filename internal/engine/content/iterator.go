package content

// Iterator walks a Contents store by position. Advancing or retreating by
// n bytes is O(buckets crossed) amortized, since within a bucket the walk
// is a single index update; advancing or retreating by one byte is O(1)
// amortized for the same reason.
type Iterator struct {
	c         *Contents
	pos       uint64
	bucketIdx int
	byteIdx   int
}

// IteratorAt returns an iterator positioned at pos.
func (c *Contents) IteratorAt(pos uint64) *Iterator {
	it := &Iterator{c: c}
	it.seek(pos)
	return it
}

// Position returns the iterator's current byte position.
func (it *Iterator) Position() uint64 { return it.pos }

// AtBeginning reports whether the iterator is at position 0.
func (it *Iterator) AtBeginning() bool { return it.pos == 0 }

// AtEnd reports whether the iterator has reached the end of the content.
func (it *Iterator) AtEnd() bool { return it.pos >= it.c.length }

// Current returns the byte at the iterator's position, or false at end.
func (it *Iterator) Current() (byte, bool) {
	if it.AtEnd() {
		return 0, false
	}
	b := it.c.buckets[it.bucketIdx]
	return b.data[it.byteIdx], true
}

// seek positions the iterator at pos from scratch (used on construction
// and as the fallback for GoTo on an iterator whose invariants may have
// been invalidated by a concurrent edit elsewhere).
func (it *Iterator) seek(pos uint64) {
	if pos > it.c.length {
		pos = it.c.length
	}
	idx, off := it.c.locate(pos)
	it.bucketIdx, it.byteIdx, it.pos = idx, off, pos
	it.normalize()
}

// normalize rolls the iterator forward over empty/exhausted buckets so
// that Current() works whenever the iterator isn't exactly at end.
func (it *Iterator) normalize() {
	for it.bucketIdx < len(it.c.buckets) && it.byteIdx >= it.c.buckets[it.bucketIdx].len() && it.pos < it.c.length {
		it.bucketIdx++
		it.byteIdx = 0
	}
}

// Advance moves the iterator forward by n bytes.
func (it *Iterator) Advance(n uint64) {
	remaining := n
	for remaining > 0 && it.bucketIdx < len(it.c.buckets) {
		b := it.c.buckets[it.bucketIdx]
		avail := uint64(b.len() - it.byteIdx)
		if avail == 0 {
			it.bucketIdx++
			it.byteIdx = 0
			continue
		}
		if remaining < avail {
			it.byteIdx += int(remaining)
			it.pos += remaining
			remaining = 0
		} else {
			it.pos += avail
			remaining -= avail
			it.bucketIdx++
			it.byteIdx = 0
		}
	}
	if it.pos > it.c.length {
		it.pos = it.c.length
	}
	it.normalize()
}

// Retreat moves the iterator backward by n bytes.
func (it *Iterator) Retreat(n uint64) {
	remaining := n
	for remaining > 0 {
		if it.byteIdx == 0 {
			if it.bucketIdx == 0 {
				break
			}
			it.bucketIdx--
			it.byteIdx = it.c.buckets[it.bucketIdx].len()
			continue
		}
		take := uint64(it.byteIdx)
		if remaining < take {
			take = remaining
		}
		it.byteIdx -= int(take)
		it.pos -= take
		remaining -= take
	}
}

// AdvanceOne moves forward by a single byte, amortized O(1).
func (it *Iterator) AdvanceOne() { it.Advance(1) }

// RetreatOne moves backward by a single byte, amortized O(1).
func (it *Iterator) RetreatOne() { it.Retreat(1) }

// GoTo repositions the iterator at pos, choosing the cheaper direction.
func (it *Iterator) GoTo(pos uint64) {
	if pos < it.pos {
		it.Retreat(it.pos - pos)
	} else {
		it.Advance(pos - it.pos)
	}
}
