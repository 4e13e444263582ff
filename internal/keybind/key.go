package keybind

import (
	"fmt"
	"strings"
	"unicode"
)

// Modifier is a bitmask of the three modifier prefixes spec.md §6
// recognizes: C- (control), A- (alt), S- (shift). Adapted from
// input/key/modifier.go's Modifier type, trimmed to drop Meta/Cmd, which
// this system's key format has no prefix for.
type Modifier uint8

const (
	ModNone Modifier = 0
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
)

// Has reports whether m contains mod.
func (m Modifier) Has(mod Modifier) bool { return m&mod != 0 }

// With returns m with mod added.
func (m Modifier) With(mod Modifier) Modifier { return m | mod }

// String renders m in the same "C-A-S-" prefix order Key.String uses.
func (m Modifier) String() string {
	var b strings.Builder
	if m.Has(ModCtrl) {
		b.WriteString("C-")
	}
	if m.Has(ModAlt) {
		b.WriteString("A-")
	}
	if m.Has(ModShift) {
		b.WriteString("S-")
	}
	return b.String()
}

// Code names a non-printable key spec.md §6 gives a fixed spelling to.
// CodeRune means the key is an ordinary printable character, carried in
// Key.Rune instead.
type Code uint8

const (
	CodeRune Code = iota
	CodeBackspace
	CodeInsert
	CodeDelete
	CodeHome
	CodeEnd
	CodePageUp
	CodePageDown
	CodeUp
	CodeDown
	CodeLeft
	CodeRight
	CodeMouse4
	CodeMouse5
	CodeScrollUp
	CodeScrollDown
	CodeScrollLeft
	CodeScrollRight
	CodeSpace
	CodeTab
	CodeEnter
)

// codeNames is the exact named-code vocabulary of spec.md §6.
var codeNames = map[string]Code{
	"BACKSPACE":   CodeBackspace,
	"INSERT":      CodeInsert,
	"DELETE":      CodeDelete,
	"HOME":        CodeHome,
	"END":         CodeEnd,
	"PAGE_UP":     CodePageUp,
	"PAGE_DOWN":   CodePageDown,
	"UP":          CodeUp,
	"DOWN":        CodeDown,
	"LEFT":        CodeLeft,
	"RIGHT":       CodeRight,
	"MOUSE4":      CodeMouse4,
	"MOUSE5":      CodeMouse5,
	"SCROLL_UP":   CodeScrollUp,
	"SCROLL_DOWN": CodeScrollDown,
	"SCROLL_LEFT": CodeScrollLeft,
	"SCROLL_RIGHT": CodeScrollRight,
	"SPACE":       CodeSpace,
	"TAB":         CodeTab,
	"ENTER":       CodeEnter,
}

var codeStrings = func() map[Code]string {
	m := make(map[Code]string, len(codeNames))
	for name, c := range codeNames {
		m[c] = name
	}
	return m
}()

// String renders the named form, or "" for CodeRune (callers render the
// rune itself in that case).
func (c Code) String() string { return codeStrings[c] }

// Key is one element of a binding chain: an optional modifier set plus
// either a named Code or a printable Rune. It is comparable and usable as
// a map key, which Map relies on.
type Key struct {
	Mods Modifier
	Code Code
	Rune rune
}

// String renders Key in the canonical form ParseKey accepts back,
// following original_source/src/key.cpp's stringify_key: modifier
// prefixes in C-A-S- order, then the code or rune — except that Shift
// combined with a lowercase rune renders as the bare uppercase letter
// instead of an "S-" prefix, matching stringify_key's own special case.
func (k Key) String() string {
	if k.Mods.Has(ModShift) && k.Code == CodeRune && unicode.IsLower(k.Rune) {
		var b strings.Builder
		b.WriteString((k.Mods &^ ModShift).String())
		b.WriteRune(unicode.ToUpper(k.Rune))
		return b.String()
	}

	var b strings.Builder
	b.WriteString(k.Mods.String())
	if k.Code == CodeRune {
		b.WriteRune(k.Rune)
	} else {
		b.WriteString(k.Code.String())
	}
	return b.String()
}

// ParseKey parses one token of a binding description (e.g. "C-x", "A-S-p",
// "ENTER") into a Key. It does not reverse String's Shift+lowercase
// collapse: a bare uppercase letter parses as that rune with no Shift
// modifier, since binding descriptions are always written with an
// explicit S- prefix, not capital-letter shorthand.
func ParseKey(token string) (Key, error) {
	if token == "" {
		return Key{}, fmt.Errorf("keybind: empty key token")
	}

	var mods Modifier
	rest := token
	for consumedPrefix := true; consumedPrefix; {
		switch {
		case strings.HasPrefix(rest, "C-"):
			mods = mods.With(ModCtrl)
			rest = rest[2:]
		case strings.HasPrefix(rest, "A-"):
			mods = mods.With(ModAlt)
			rest = rest[2:]
		case strings.HasPrefix(rest, "S-"):
			mods = mods.With(ModShift)
			rest = rest[2:]
		default:
			consumedPrefix = false
		}
	}
	if rest == "" {
		return Key{}, fmt.Errorf("keybind: %q has modifiers but no code", token)
	}
	if code, ok := codeNames[rest]; ok {
		return Key{Mods: mods, Code: code}, nil
	}

	runes := []rune(rest)
	if len(runes) != 1 {
		return Key{}, fmt.Errorf("keybind: %q is not a single character or a known named code", token)
	}
	if !unicode.IsPrint(runes[0]) {
		return Key{}, fmt.Errorf("keybind: %q is not printable", token)
	}
	return Key{Mods: mods, Code: CodeRune, Rune: runes[0]}, nil
}

// ParseBinding splits a binding description on single ASCII spaces and
// parses each token, per spec.md §6.
func ParseBinding(description string) ([]Key, error) {
	if description == "" {
		return nil, fmt.Errorf("keybind: empty binding description")
	}
	tokens := strings.Split(description, " ")
	keys := make([]Key, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			return nil, fmt.Errorf("keybind: %q has a repeated or leading/trailing space", description)
		}
		k, err := ParseKey(tok)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}
