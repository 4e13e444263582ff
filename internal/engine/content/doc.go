// Package content implements the buffer content store: a sequence of
// bytes addressable by 64-bit position, stored as an ordered list of
// fixed-capacity buckets edited in place.
//
// Bucket sizing follows the teacher's rope chunk-sizing discipline
// (internal/engine/rope/chunk.go in the retrieval pack's dshills-keystorm
// teacher: MinChunkSize=128, MaxChunkSize=256, target = (128+256)/2 = 192,
// i.e. 75% of capacity) but the teacher's rope is an immutable,
// copy-on-write tree. The spec requires in-place mutation and a cheap,
// position-seekable iterator, so this package restructures the same
// sizing discipline into a flat, mutable bucket list instead.
package content
