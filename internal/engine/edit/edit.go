package edit

import (
	"errors"

	"github.com/mageditor/kernel/internal/engine/content"
	"github.com/mageditor/kernel/internal/engine/strval"
)

// Kind distinguishes an insertion from a removal.
type Kind uint8

const (
	// Insert means the payload bytes become indices [Position, Position+len).
	Insert Kind = iota
	// Remove means the payload bytes must equal the bytes at
	// [Position, Position+len) and are deleted.
	Remove
)

func (k Kind) String() string {
	if k == Insert {
		return "insert"
	}
	return "remove"
}

// Boundary controls how a position equal to an insertion's Position
// transforms across that edit (see PositionAfterEdit).
type Boundary uint8

const (
	// AfterPosition: an insertion at the boundary leaves a coincident
	// position where it was, to the left of the new text.
	AfterPosition Boundary = iota
	// BeforePosition: an insertion at the boundary pushes a coincident
	// position forward past the new text.
	BeforePosition
)

// Edit is a single insertion or removal of a contiguous byte range.
type Edit struct {
	Payload  strval.Value
	Position uint64
	Kind     Kind
	Boundary Boundary
}

// Len returns the length in bytes of the edit's payload.
func (e *Edit) Len() uint64 { return uint64(e.Payload.Len()) }

// ErrPayloadMismatch is returned by Apply when a REMOVE edit's payload does
// not match the bytes actually present at its position.
var ErrPayloadMismatch = errors.New("edit: remove payload does not match buffer contents")

// Apply performs the edit against c, mutating it in place.
func Apply(c *content.Contents, e Edit) error {
	switch e.Kind {
	case Insert:
		return c.Insert(e.Position, e.Payload.Bytes())
	case Remove:
		n := e.Len()
		got := make([]byte, n)
		if m := c.SliceInto(got, e.Position, e.Position+n); uint64(m) != n {
			return ErrPayloadMismatch
		}
		if string(got) != e.Payload.String() {
			return ErrPayloadMismatch
		}
		return c.Remove(e.Position, n)
	default:
		return errors.New("edit: unknown kind")
	}
}

// Unapply reverses e against c, restoring the content to what it was
// before e was applied.
func Unapply(c *content.Contents, e Edit) error {
	switch e.Kind {
	case Insert:
		return c.Remove(e.Position, e.Len())
	case Remove:
		return c.Insert(e.Position, e.Payload.Bytes())
	default:
		return errors.New("edit: unknown kind")
	}
}

// Invert returns the edit that undoes e against the content state produced
// by applying e (an INSERT inverts to a REMOVE of the same range and vice
// versa). The boundary is preserved.
func (e Edit) Invert() Edit {
	inv := e
	if e.Kind == Insert {
		inv.Kind = Remove
	} else {
		inv.Kind = Insert
	}
	return inv
}
