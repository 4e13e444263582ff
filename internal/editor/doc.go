// Package editor is the kernel's root: it owns every open buffer, every
// client session, the command dispatcher and its keymaps, the job
// scheduler, and the default clipboard, and wires a keystroke all the
// way from a raw Key through dispatch to a committed edit.
//
// Grounded on the teacher's internal/app package (Application, Options,
// DocumentManager), generalized from a single-client text editor's
// document list to this system's multi-session, multi-window model.
package editor
