package command

import (
	"fmt"
	"time"
	"unicode"

	"github.com/mageditor/kernel/internal/client"
	"github.com/mageditor/kernel/internal/keybind"
)

// Dispatcher owns the three keymap tiers and the name-to-Command
// registry every Bind call and every Dispatch call resolves against.
type Dispatcher struct {
	Global     *keybind.Map
	Completion *keybind.Map
	modes      map[string]*keybind.Map
	commands   map[string]*Command

	previous *Command
}

// NewDispatcher returns a Dispatcher with empty global and completion
// keymaps and no registered modes. The built-in commands (self-insert,
// undo/redo, stop-action and the delete commands) are registered
// automatically; SelfInsertChar must be, since the dispatch algorithm
// falls back to it directly by name on every unmatched printable key.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		Global:     keybind.NewMap(),
		Completion: keybind.NewMap(),
		modes:      make(map[string]*keybind.Map),
		commands:   make(map[string]*Command),
	}
	d.Register(&Command{Name: SelfInsertCharName, Fn: SelfInsertChar})
	d.Register(&Command{Name: UndoName, Fn: Undo})
	d.Register(&Command{Name: RedoName, Fn: Redo})
	d.Register(&Command{Name: StopActionName, Fn: StopAction})
	d.Register(&Command{Name: DeleteBackwardCharName, Fn: DeleteBackwardChar})
	d.Register(&Command{Name: DeleteForwardCharName, Fn: DeleteForwardChar})
	d.Register(&Command{Name: DeleteBackwardWordName, Fn: DeleteBackwardWord})
	d.Register(&Command{Name: DeleteForwardWordName, Fn: DeleteForwardWord})
	d.Register(&Command{Name: DeleteRegionName, Fn: DeleteRegion})
	return d
}

// Register installs cmd in the name registry, overwriting any existing
// command of the same name.
func (d *Dispatcher) Register(cmd *Command) {
	d.commands[cmd.Name] = cmd
}

// Lookup returns the registered command named name, if any.
func (d *Dispatcher) Lookup(name string) (*Command, bool) {
	cmd, ok := d.commands[name]
	return cmd, ok
}

// ModeKeymap returns the keymap for the named buffer mode, creating an
// empty one on first use.
func (d *Dispatcher) ModeKeymap(mode string) *keybind.Map {
	m, ok := d.modes[mode]
	if !ok {
		m = keybind.NewMap()
		d.modes[mode] = m
	}
	return m
}

// Bind parses description and installs commandName at its leaf in m.
func (d *Dispatcher) Bind(m *keybind.Map, description, commandName string) error {
	return m.Bind(description, commandName)
}

// Dispatch processes one keystroke for sess, following
// original_source/src/server.cpp's Server::receive: append key to the
// pending chain, then repeatedly try, in order, the selected window's
// completion keymap (only while it is completing), the selected buffer's
// mode keymap, and the global keymap, at the current cursor position.
// The first keymap to report Matched wins and its command runs
// immediately; if none matches but at least one is still waiting on more
// keys, dispatch stops and keeps the chain for the next keystroke;
// otherwise the key at the cursor is self-inserted (or reported as an
// invalid combo) and the cursor advances by one. now timestamps any
// message the fallback posts.
func (d *Dispatcher) Dispatch(sess *client.Session, key keybind.Key, now time.Time) error {
	sess.KeyChain = append(sess.KeyChain, key)

	cursor := 0
	for cursor < len(sess.KeyChain) {
		win := sess.SelectedWindow()

		var modeName string
		if h := win.Handle; h != nil {
			buf := h.LockReading()
			modeName = buf.Mode.Name()
			h.Unlock()
		}

		tiers := make([]*keybind.Map, 0, 3)
		if win.Completing {
			tiers = append(tiers, d.Completion)
		}
		if modeName != "" {
			tiers = append(tiers, d.modes[modeName])
		}
		tiers = append(tiers, d.Global)

		matched := false
		waiting := false
		for _, m := range tiers {
			if m == nil {
				continue
			}
			name, consumed, status := m.Lookup(sess.KeyChain, cursor)
			switch status {
			case keybind.Matched:
				cmd, ok := d.Lookup(name)
				if !ok {
					continue
				}
				src := &Source{
					Client:   sess,
					Keys:     append([]keybind.Key(nil), sess.KeyChain[cursor:cursor+consumed]...),
					Previous: d.previous,
				}
				if err := cmd.Fn(src); err != nil {
					sess.ShowMessage(err.Error(), now)
				}
				d.previous = cmd
				cursor += consumed
				matched = true
			case keybind.WaitingForMoreKeys:
				waiting = true
			case keybind.NoMatch:
			}
			if matched {
				break
			}
		}
		if matched {
			continue
		}
		if waiting {
			break
		}

		if err := d.failKey(sess, sess.KeyChain[cursor], now); err != nil {
			return err
		}
		cursor++
	}

	sess.KeyChain = sess.KeyChain[cursor:]
	return nil
}

// failKey runs when no keymap claims the key at cursor: a printable key
// (or Space/Tab/Enter) self-inserts; anything else posts "invalid key
// combo", matching original_source/src/server.cpp's failed_key_press.
func (d *Dispatcher) failKey(sess *client.Session, key keybind.Key, now time.Time) error {
	printable := key.Code == keybind.CodeRune && unicode.IsPrint(key.Rune)
	named := key.Code == keybind.CodeSpace || key.Code == keybind.CodeTab || key.Code == keybind.CodeEnter
	if key.Mods == keybind.ModNone && (printable || named) {
		cmd, _ := d.Lookup(SelfInsertCharName)
		src := &Source{Client: sess, Keys: []keybind.Key{key}, Previous: d.previous}
		err := cmd.Fn(src)
		d.previous = cmd
		if err != nil {
			sess.ShowMessage(err.Error(), now)
		}
		return nil
	}

	sess.ShowMessage(fmt.Sprintf("invalid key combo: %s", key.String()), now)
	return nil
}
