package content

import (
	"errors"
	"strings"

	"github.com/mageditor/kernel/internal/engine/strval"
)

// Offset is a 64-bit byte position into a Contents store.
type Offset = uint64

// ErrOutOfRange is returned when a position or range falls outside the
// current content length.
var ErrOutOfRange = errors.New("content: position out of range")

// Contents is a mutable, in-place-editable sequence of bytes addressable
// by position, stored as an ordered list of fixed-capacity buckets.
type Contents struct {
	buckets []*bucket
	length  uint64
}

// New creates an empty content store.
func New() *Contents {
	return &Contents{}
}

// FromString creates a content store seeded with s.
func FromString(s string) *Contents {
	c := New()
	c.Append([]byte(s))
	return c
}

// Len returns the total byte length.
func (c *Contents) Len() uint64 { return c.length }

// BucketCount returns the number of buckets currently allocated. Exposed
// for tests that check bucket-splitting behavior.
func (c *Contents) BucketCount() int { return len(c.buckets) }

// locate finds the bucket index and in-bucket byte offset for pos.
// If pos == c.length, it returns the end of the last bucket (or bucket
// index == len(buckets) if there are no buckets yet).
func (c *Contents) locate(pos uint64) (bucketIdx, byteIdx int) {
	var walked uint64
	for i, b := range c.buckets {
		l := uint64(b.len())
		if pos <= walked+l {
			return i, int(pos - walked)
		}
		walked += l
	}
	return len(c.buckets), 0
}

// String returns the full contents as a string.
func (c *Contents) String() string {
	var sb strings.Builder
	sb.Grow(int(c.length))
	for _, b := range c.buckets {
		sb.Write(b.data)
	}
	return sb.String()
}

// ByteAt returns the byte at pos.
func (c *Contents) ByteAt(pos uint64) (byte, bool) {
	if pos >= c.length {
		return 0, false
	}
	idx, off := c.locate(pos)
	if idx >= len(c.buckets) {
		return 0, false
	}
	b := c.buckets[idx]
	if off == b.len() {
		// locate returns the end of a bucket when pos lands exactly on a
		// boundary; the byte actually lives at the start of the next one.
		if idx+1 < len(c.buckets) {
			return c.buckets[idx+1].data[0], true
		}
		return 0, false
	}
	return b.data[off], true
}

// Insert inserts data at position pos.
func (c *Contents) Insert(pos uint64, data []byte) error {
	if pos > c.length {
		return ErrOutOfRange
	}
	if len(data) == 0 {
		return nil
	}

	idx, off := c.locate(pos)
	if idx >= len(c.buckets) {
		// Appending past the last bucket (or into an empty store).
		c.appendBucketsFor(data)
		c.length += uint64(len(data))
		return nil
	}

	b := c.buckets[idx]
	if b.len()+len(data) <= Capacity {
		b.insertAt(off, data)
		c.length += uint64(len(data))
		return nil
	}

	// Overflow: rebuild this bucket's content plus the inserted bytes into
	// as few target-filled buckets as needed.
	merged := make([]byte, 0, b.len()+len(data))
	merged = append(merged, b.data[:off]...)
	merged = append(merged, data...)
	merged = append(merged, b.data[off:]...)

	newBuckets := splitIntoBuckets(merged)
	c.buckets = append(c.buckets[:idx], append(newBuckets, c.buckets[idx+1:]...)...)
	c.length += uint64(len(data))
	return nil
}

// appendBucketsFor appends data as one or more new buckets at the end of
// the store, overflowing into the last existing bucket first if there is
// room.
func (c *Contents) appendBucketsFor(data []byte) {
	if len(c.buckets) > 0 {
		last := c.buckets[len(c.buckets)-1]
		if last.len()+len(data) <= Capacity {
			last.insertAt(last.len(), data)
			return
		}
		merged := make([]byte, 0, last.len()+len(data))
		merged = append(merged, last.data...)
		merged = append(merged, data...)
		newBuckets := splitIntoBuckets(merged)
		c.buckets = append(c.buckets[:len(c.buckets)-1], newBuckets...)
		return
	}
	c.buckets = append(c.buckets, splitIntoBuckets(data)...)
}

// splitIntoBuckets lays out data into as few buckets as possible, each
// landing near TargetFill, none exceeding Capacity.
func splitIntoBuckets(data []byte) []*bucket {
	if len(data) == 0 {
		return []*bucket{newBucket()}
	}
	var out []*bucket
	for len(data) > 0 {
		n := len(data)
		if n > Capacity {
			n = TargetFill
		}
		out = append(out, newBucketFrom(data[:n]))
		data = data[n:]
	}
	return out
}

// Append adds data to the end of the store.
func (c *Contents) Append(data []byte) {
	_ = c.Insert(c.length, data)
}

// Remove deletes n bytes starting at pos.
func (c *Contents) Remove(pos, n uint64) error {
	if n == 0 {
		return nil
	}
	if pos+n > c.length {
		return ErrOutOfRange
	}

	remaining := n
	idx, off := c.locate(pos)
	for remaining > 0 {
		if idx >= len(c.buckets) {
			return ErrOutOfRange
		}
		b := c.buckets[idx]
		avail := b.len() - off
		if avail == 0 {
			idx++
			off = 0
			continue
		}
		take := avail
		if uint64(take) > remaining {
			take = int(remaining)
		}
		b.removeAt(off, take)
		remaining -= uint64(take)
		// off stays put: bytes after the removed range shifted left to it.
	}
	c.length -= n
	c.pruneEmptyBuckets()
	return nil
}

// pruneEmptyBuckets drops fully-emptied buckets. Transiently under-full
// (but non-empty) buckets are left alone, per spec.
func (c *Contents) pruneEmptyBuckets() {
	if len(c.buckets) <= 1 {
		return
	}
	kept := c.buckets[:0]
	for _, b := range c.buckets {
		if b.len() > 0 {
			kept = append(kept, b)
		}
	}
	if len(kept) == 0 {
		kept = append(kept, newBucket())
	}
	c.buckets = kept
}

// Slice returns the bytes in [start, end) as a small-string value. Arena
// may be nil; it is only consulted for slices longer than the inline
// capacity.
func (c *Contents) Slice(start, end uint64, arena *strval.Arena) strval.Value {
	if start >= end {
		return strval.Value{}
	}
	s := c.sliceString(start, end)
	if arena == nil {
		return strval.FromConst(s)
	}
	return strval.FromOwnedCopy(s, arena)
}

// SliceInto writes the bytes in [start, end) into dst and returns the
// number of bytes written. dst must be at least end-start bytes long.
func (c *Contents) SliceInto(dst []byte, start, end uint64) int {
	if start >= end {
		return 0
	}
	n := 0
	it := c.IteratorAt(start)
	for p := start; p < end; p++ {
		b, ok := it.Current()
		if !ok {
			break
		}
		dst[n] = b
		n++
		it.AdvanceOne()
	}
	return n
}

func (c *Contents) sliceString(start, end uint64) string {
	buf := make([]byte, end-start)
	n := c.SliceInto(buf, start, end)
	return string(buf[:n])
}

// Clone returns an independent copy of c: the background tokenizer job
// reads its ~2ms slice of input from a clone taken under a brief read
// lock, so it never holds the lock for the duration of the tokenize pass.
func (c *Contents) Clone() *Contents {
	buckets := make([]*bucket, len(c.buckets))
	for i, b := range c.buckets {
		buckets[i] = newBucketFrom(b.data)
	}
	return &Contents{buckets: buckets, length: c.length}
}

// LineNumberOf returns the 0-indexed line number containing pos, computed
// by summing per-bucket newline counts up to the bucket containing pos,
// then scanning that bucket.
func (c *Contents) LineNumberOf(pos uint64) uint64 {
	if pos > c.length {
		pos = c.length
	}
	var line uint64
	var walked uint64
	for _, b := range c.buckets {
		l := uint64(b.len())
		if pos < walked+l {
			within := pos - walked
			for i := 0; i < int(within); i++ {
				if b.data[i] == '\n' {
					line++
				}
			}
			return line
		}
		line += uint64(b.newlines)
		walked += l
	}
	return line
}
