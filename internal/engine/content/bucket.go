package content

import "bytes"

// Capacity constants for buckets. TargetFill is the teacher's
// TargetChunkSize (the midpoint of MinChunkSize/MaxChunkSize), which works
// out to 75% of Capacity.
const (
	Capacity   = 256
	TargetFill = (128 + Capacity) / 2 // 192, i.e. 75% of 256
)

// bucket is a fixed-capacity, in-place-editable run of bytes plus its
// precomputed newline count. Buckets above Capacity are split; buckets may
// transiently fall below TargetFill (e.g. right after a remove) without
// that being an error.
type bucket struct {
	data     []byte
	newlines int
}

func newBucket() *bucket {
	return &bucket{data: make([]byte, 0, Capacity)}
}

func newBucketFrom(b []byte) *bucket {
	data := make([]byte, len(b), Capacity)
	copy(data, b)
	return &bucket{data: data, newlines: bytes.Count(data, newline)}
}

var newline = []byte{'\n'}

func (bk *bucket) len() int { return len(bk.data) }

// insertAt inserts b at byte offset i within the bucket, in place.
func (bk *bucket) insertAt(i int, b []byte) {
	bk.data = append(bk.data, make([]byte, len(b))...)
	copy(bk.data[i+len(b):], bk.data[i:len(bk.data)-len(b)])
	copy(bk.data[i:], b)
	bk.newlines += bytes.Count(b, newline)
}

// removeAt removes n bytes starting at byte offset i, in place.
func (bk *bucket) removeAt(i, n int) {
	removed := bk.data[i : i+n]
	bk.newlines -= bytes.Count(removed, newline)
	bk.data = append(bk.data[:i], bk.data[i+n:]...)
}

// splitAt splits the bucket at byte offset i into two buckets.
func (bk *bucket) splitAt(i int) (*bucket, *bucket) {
	left := newBucketFrom(bk.data[:i])
	right := newBucketFrom(bk.data[i:])
	return left, right
}
