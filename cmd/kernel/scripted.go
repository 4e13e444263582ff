package main

import (
	"fmt"
	"strings"

	"github.com/mageditor/kernel/internal/keybind"
)

// parseScript turns a scripted key-sequence file into a flat list of
// keybind.Key values to dispatch in order. Blank lines and lines
// starting with "#" are ignored. A line starting with "type " feeds
// every rune of the rest of the line (including spaces) as an
// unmodified CodeRune key, the shorthand for typing plain text without
// spelling out "Space" by name. Any other line is parsed as a
// keybind.ParseBinding chord description ("C-x C-s"), each key in the
// chord dispatched individually.
func parseScript(script string) ([]keybind.Key, error) {
	var keys []keybind.Key
	for i, line := range strings.Split(script, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "type "); ok {
			for _, r := range rest {
				keys = append(keys, keybind.Key{Code: keybind.CodeRune, Rune: r})
			}
			continue
		}
		chord, err := keybind.ParseBinding(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		keys = append(keys, chord...)
	}
	return keys, nil
}
