// Package clipboard provides a process-local implementation of
// capability.Clipboard. It exists so the editor has a working system
// clipboard register out of the box; a front-end that wants the real OS
// clipboard installs its own capability.Clipboard instead (spec.md treats
// the clipboard as a pair of optional function pointers installed at
// startup).
//
// Grounded on the teacher's internal/input/vim/register.go
// ClipboardProvider interface (Get() (string, error) / Set(string) error),
// generalized to the small-string-value payload type this module's core
// uses instead of plain Go strings.
package clipboard
