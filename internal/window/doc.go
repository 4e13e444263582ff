// Package window implements the window tree: Unified leaves that each view
// one buffer through a handle, and Split interior nodes that partition
// screen space between two children.
//
// No direct teacher analog: the teacher's renderer computes viewport
// geometry from a flat list of open buffers rather than a binary split
// tree. The row/column partition arithmetic in Tree.SetSize is grounded on
// internal/renderer/layout's floor-based style (layout.TabExpander's
// integer column math). Node ownership follows option (a) from the design
// notes this module's expanded requirements settled on: parent pointers,
// because the teacher's object-ownership idiom throughout (explicit owning
// structs built by constructor functions, no arena/generation-index tables
// anywhere in its tree) favors direct parent pointers over a flat index
// arena.
package window
