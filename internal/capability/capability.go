package capability

import (
	"github.com/mageditor/kernel/internal/engine/content"
	"github.com/mageditor/kernel/internal/engine/strval"
)

// TokenType is an opaque, mode-defined token classification (comment,
// identifier, keyword, string, and so on). The core never interprets it.
type TokenType uint16

// Token is a single lexical unit as reported by a Tokenizer.
type Token struct {
	Start uint64
	End   uint64
	Type  TokenType
}

// Tokenizer is the contract a language mode supplies. NextToken must skip
// leading whitespace, report a token with Start >= the iterator's starting
// position and End > Start, leave it positioned at exactly End, and return
// the updated state. On end-of-buffer it returns ok=false without reading
// past the end. State is opaque and must be packed into a single uint64 so
// checkpointing stays cheap; determinism is required: the same
// (start-position, start-state) pair must always produce the same token
// and end state.
type Tokenizer interface {
	NextToken(it *content.Iterator, state uint64) (tok Token, nextState uint64, ok bool)
}

// CompletionContext is populated by a completion source when invoked.
type CompletionContext struct {
	Query   string
	Results []string
}

// CompletionSource is driven by a Completion_Cache the core invalidates
// whenever the mini-buffer contents or the watched buffer's change-index
// moves.
type CompletionSource interface {
	Complete(ctx *CompletionContext)
}

// Clipboard is the optional system-clipboard capability. Both operations
// are safe to leave unset (nil Clipboard): the core treats a nil Clipboard
// the same as one whose Get always fails, and skips Set silently.
type Clipboard interface {
	Get(arena *strval.Arena) (strval.Value, bool)
	Set(text string) bool
}

// Mode names a buffer's language mode and supplies its tokenizer and its
// indentation settings. Keymap lookup for a mode is handled one layer up
// (internal/keybind) to avoid this package depending on the keymap trie.
type Mode interface {
	Name() string
	Tokenizer() Tokenizer

	// UseTabs reports whether self-insert-char should collapse a
	// tab-width run of trailing spaces into a tab character.
	UseTabs() bool
	// TabWidth is the column width of one tab stop. Only consulted when
	// UseTabs is true.
	TabWidth() int
}

// PlainMode is a Mode with no tokenizer and no tab expansion, used for
// buffers with no language association (e.g. the mini-buffer, the
// messages buffer).
type PlainMode struct {
	ModeName string
}

// Name returns the mode's name.
func (m PlainMode) Name() string { return m.ModeName }

// Tokenizer returns nil: plain mode performs no tokenization.
func (m PlainMode) Tokenizer() Tokenizer { return nil }

// UseTabs always returns false for PlainMode.
func (m PlainMode) UseTabs() bool { return false }

// TabWidth returns 0 for PlainMode (meaningless since UseTabs is false).
func (m PlainMode) TabWidth() int { return 0 }

// TextMode is a Mode with no tokenizer but configurable tab handling,
// for buffers whose indentation settings come from a loaded
// configuration rather than a language association.
type TextMode struct {
	ModeName     string
	UseTabsValue bool
	TabWidthValue int
}

// NewTextMode returns a TextMode with the given name and tab settings.
func NewTextMode(name string, useTabs bool, tabWidth int) TextMode {
	return TextMode{ModeName: name, UseTabsValue: useTabs, TabWidthValue: tabWidth}
}

// Name returns the mode's name.
func (m TextMode) Name() string { return m.ModeName }

// Tokenizer returns nil: text mode performs no tokenization.
func (m TextMode) Tokenizer() Tokenizer { return nil }

// UseTabs reports the mode's configured tab-collapsing behavior.
func (m TextMode) UseTabs() bool { return m.UseTabsValue }

// TabWidth reports the mode's configured tab stop width.
func (m TextMode) TabWidth() int { return m.TabWidthValue }
