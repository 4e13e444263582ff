package command

import (
	"github.com/mageditor/kernel/internal/client"
	"github.com/mageditor/kernel/internal/keybind"
)

// Func is a command's executable body. It returns an error only for
// conditions worth reporting back to the user (e.g. "no such file"); the
// dispatcher surfaces it via the session's message, it never panics the
// dispatch loop.
type Func func(src *Source) error

// Command pairs a stable name (the one keymaps bind to and
// Source.Previous reports) with its executable body.
type Command struct {
	Name string
	Fn   Func
}

// Source is what every Func receives: the client that produced the
// keystrokes, the keys actually consumed for this invocation, and the
// previously executed command (nil before the first dispatch; an unmatched
// printable key records self-insert-char here, and a key chain that is
// rejected outright leaves it unchanged). Merge detection of consecutive
// self-inserts does not use it — see Buffer.CheckLastCommitter.
type Source struct {
	Client   *client.Session
	Keys     []keybind.Key
	Previous *Command
}
