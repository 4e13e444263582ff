package keybind

import "fmt"

// Status reports the outcome of a Map.Lookup call, mirroring spec.md
// §4.7's three lookup_key_chain outcomes.
type Status int

const (
	// NoMatch means the chain (from the cursor) doesn't match any
	// binding, even as a prefix.
	NoMatch Status = iota
	// WaitingForMoreKeys means the chain (from the cursor) matches a
	// sub-map exactly, but the map has children that need more keys.
	WaitingForMoreKeys
	// Matched means a leaf command was reached.
	Matched
)

// node is one Key_Bind: either a leaf command or a sub-map of further
// children, never both at once.
type node struct {
	command  string
	isLeaf   bool
	children map[Key]*node
}

// Map is a trie from key chains to command names, built by repeated Bind
// calls and walked by Lookup. The zero value is not usable; construct
// with NewMap.
type Map struct {
	root map[Key]*node
}

// NewMap returns an empty keymap.
func NewMap() *Map {
	return &Map{root: make(map[Key]*node)}
}

// Bind parses description (e.g. "C-x C-f") and installs command at the
// leaf the chain resolves to, walking or creating intermediate sub-maps
// along the way, following original_source/src/key_map.cpp's Key_Map::bind
// exactly. It is an error to bind a description that is a strict prefix
// of an existing binding (that node already has children) or that
// extends past an existing leaf binding (the node partway through is
// already a command).
func (m *Map) Bind(description, command string) error {
	keys, err := ParseBinding(description)
	if err != nil {
		return err
	}

	children := m.root
	for i, k := range keys {
		n, ok := children[k]
		if !ok {
			n = &node{}
			children[k] = n
		}

		last := i == len(keys)-1
		if last {
			if !n.isLeaf && len(n.children) > 0 {
				return fmt.Errorf("keybind: %q is a prefix of an existing longer binding", description)
			}
			n.isLeaf = true
			n.command = command
			n.children = nil
			return nil
		}

		if n.isLeaf {
			return fmt.Errorf("keybind: %q extends past the existing binding %q", description, keyChainString(keys[:i+1]))
		}
		if n.children == nil {
			n.children = make(map[Key]*node)
		}
		children = n.children
	}
	return nil
}

func keyChainString(keys []Key) string {
	s := ""
	for i, k := range keys {
		if i > 0 {
			s += " "
		}
		s += k.String()
	}
	return s
}

// Lookup walks chain starting at cursor. It returns (command, consumed,
// Matched) if a leaf is reached, consumed being how many keys from cursor
// were used; (_, _, WaitingForMoreKeys) if the chain runs out inside a
// sub-map; or (_, _, NoMatch) if no child matches partway through.
func (m *Map) Lookup(chain []Key, cursor int) (command string, consumed int, status Status) {
	children := m.root
	for i := cursor; i < len(chain); i++ {
		n, ok := children[chain[i]]
		if !ok {
			return "", 0, NoMatch
		}
		if n.isLeaf {
			return n.command, i + 1 - cursor, Matched
		}
		children = n.children
	}
	return "", 0, WaitingForMoreKeys
}
