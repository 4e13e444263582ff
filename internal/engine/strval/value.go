package strval

// InlineCap is the number of bytes a Value can hold without owning
// out-of-line storage. The spec requires at least 15; we follow the
// teacher's rope chunk sizing discipline (see internal/engine/content) and
// pick a value comfortably above a typical single self-insert keystroke.
const InlineCap = 23

// Value is an immutable short string. It either stores its bytes inline
// (construct-from-constant and short owned copies never allocate) or
// holds them out of line in a string of its own (long values).
//
// The zero Value is the empty string.
type Value struct {
	inline    [InlineCap + 1]byte // +1 keeps a trailing NUL when inline is used
	inlineLen int8                // -1 means "use large" instead of inline
	large     string
}

// FromConst wraps a compile-time or otherwise long-lived constant string.
// It never allocates: short values are copied into the inline array (a
// stack/value copy, not a heap allocation); long values simply retain the
// string header, which Go already treats as a reference.
func FromConst(s string) Value {
	var v Value
	if len(s) <= InlineCap {
		v.inlineLen = int8(len(s))
		copy(v.inline[:], s)
		v.inline[len(s)] = 0 // trailing NUL
		return v
	}
	v.inlineLen = -1
	v.large = s
	return v
}

// FromOwnedCopy makes a Value that owns its bytes. Short strings are still
// copied inline at no heap cost; long strings are copied through arena
// storage into a string the Value owns, so it remains valid independent
// of the caller's buffer and of later Reset or Rewind calls on the arena.
func FromOwnedCopy(s string, arena *Arena) Value {
	if len(s) <= InlineCap {
		return FromConst(s)
	}
	dst := arena.alloc(len(s))
	copy(dst, s)
	var v Value
	v.inlineLen = -1
	v.large = string(dst)
	return v
}

// Empty reports whether the Value holds no bytes.
func (v Value) Empty() bool {
	return v.Len() == 0
}

// Len returns the byte length of the value.
func (v Value) Len() int {
	if v.inlineLen >= 0 {
		return int(v.inlineLen)
	}
	return len(v.large)
}

// IsInline reports whether the value's bytes live inline rather than in an
// arena. Out-of-line Values are "dropped" (in the spec's sense) simply by
// letting the garbage collector reclaim the arena block; there is no
// explicit Drop in Go.
func (v Value) IsInline() bool {
	return v.inlineLen >= 0
}

// Bytes returns the value's bytes. For inline values this returns a slice
// over the Value's own storage; callers must not mutate it.
func (v *Value) Bytes() []byte {
	if v.inlineLen >= 0 {
		return v.inline[:v.inlineLen]
	}
	return []byte(v.large)
}

// String returns the value's bytes as a string.
func (v *Value) String() string {
	if v.inlineLen >= 0 {
		return string(v.inline[:v.inlineLen])
	}
	return v.large
}

// CloneInto returns an independent copy of the value. A value of at most
// InlineCap bytes is copied inline; a longer one is copied through the
// given arena into a new out-of-line Value. Used when a payload must
// outlive the arena (or stack frame) it currently lives in.
func (v *Value) CloneInto(arena *Arena) Value {
	s := v.String()
	if len(s) <= InlineCap {
		return FromConst(s)
	}
	dst := arena.alloc(len(s))
	copy(dst, s)
	var out Value
	out.inlineLen = -1
	out.large = string(dst)
	return out
}
