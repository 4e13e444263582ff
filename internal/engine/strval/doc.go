// Package strval provides an immutable short-string value used as the
// payload of an Edit.
//
// It mirrors the small-string optimization the rest of the ecosystem
// reaches for in hot text-editing paths: a short payload lives inline in
// the value itself, a long one is held in a string of its own, copied
// through a caller-supplied Arena when made as an owned copy. Construction from a compile-time constant never copies onto the
// heap; construction as an owned copy may.
package strval
