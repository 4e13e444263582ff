// Package client implements a client session: the per-connection state
// that sits above the window tree — pending keystrokes, the jump history,
// the session-wide kill/copy chain, the mini-buffer and messages-log
// windows, and pending UI requests (a message to show, a raise request).
//
// Grounded on original_source/src/client.hpp, which spec.md §3's Client
// session paragraph names fields from without showing their shapes;
// jump.hpp supplies the exact Jump/Jump_Chain shape (a bounded position
// history navigated by an index, not a simple stack) carried into
// JumpChain here. The struct itself follows the teacher's plain
// constructor-function style (no builder pattern, exported fields) seen
// throughout internal/engine/buffer and internal/client's own absence in
// the teacher is filled the same way the teacher composes its other
// session-like types (e.g. internal/dispatcher's Dispatcher holding
// several owned subsystems by value/pointer).
package client
