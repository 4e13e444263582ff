// Package keybind parses key-binding description strings into Key chains
// and stores them in a trie (Map) that supports the three-question
// dispatch lookup: no match, waiting for more keys, or a matched command.
//
// Key/Modifier/parsing are adapted from input/key/{key,modifier,parser}.go,
// trimmed to the modifier and named-code set original_source/src/key.cpp's
// stringify_key and spec.md §6 actually define (C-/A-/S- prefixes; no Meta,
// no Vim <...> bracket notation, no bare "Ctrl+S" plus-form — this system
// binds from a fixed startup-time description string, not live Vim-style
// remapping). The trie itself replaces the teacher's flat, sorted
// []Binding (input/keymap/binding.go, input/keymap/keymap.go) with real
// Key_Bind-style nodes, following original_source/src/key_map.cpp's
// bind/lookup shape directly: Key_Map.bind walks or creates child maps one
// key at a time and installs a command at the leaf; Key_Map.lookup (there,
// a binary search over a sorted slice; here, a map since Go's built-in map
// makes the sorted-slice binary search an unnecessary reimplementation of
// what the language already gives us) finds one child by key.
package keybind
