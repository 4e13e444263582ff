// Package command implements the keystroke dispatch loop: given a key and
// a client session, it walks the completion, buffer-mode, and global
// keymaps in priority order, runs whichever command matches, and falls
// back to self-insert or an "invalid key combo" message when nothing
// does.
//
// The dispatch algorithm is grounded directly on
// original_source/src/server.cpp's Server::receive/handle_key_press*
// family: handle_key_press_completion, handle_key_press_buffer, and
// handle_key_press (global) are tried in that order for each unresolved
// position in the client's pending key chain, exactly the priority this
// package's Dispatcher.Dispatch follows. The three-outcome
// NoMatch/WaitingForMoreKeys/Matched shape itself lives in
// internal/keybind, which server.cpp's lookup_key_chain conflates with
// its own command_insert_char sentinel; this package keeps the outcome
// and the self-insert fallback as two separate, composable steps instead.
//
// Registration and routing (Command/Dispatcher) are adapted from
// dispatcher/router.go's namespace-to-handler table, replaced here with a
// flat name-to-Command registry keyed the way keybind.Map stores binding
// targets — a string name, resolved through the Dispatcher at dispatch
// time rather than a function pointer stored directly in the trie, so the
// same keymap data can be serialized/inspected without closures.
package command
