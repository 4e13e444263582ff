package client

import (
	"time"

	"github.com/mageditor/kernel/internal/capability"
	"github.com/mageditor/kernel/internal/engine/handle"
	"github.com/mageditor/kernel/internal/keybind"
	"github.com/mageditor/kernel/internal/window"
)

// MousePosition tracks the client's last-known pointer state. Populated by
// a front end; the core only stores it.
type MousePosition struct {
	PressedButtons    [5]bool
	HasClientPosition bool
	ClientRow         uint32
	ClientColumn      uint32
	Window            *window.Unified
	WindowRow         uint32
	WindowColumn      uint32
	Selecting         bool
	WindowSelectPoint uint64
}

// Session is a client's full editing state: pending keystrokes, jump
// history, the session-wide copy chain, the visible window tree, the
// mini-buffer and messages-log windows, and pending UI requests.
type Session struct {
	ID string

	KeyChain []keybind.Key // pending keys, matched against internal/keybind's trie

	GlobalCopyChain []string
	JumpChain       JumpChain

	Windows              *window.Tree
	SelectedNormalWindow *window.Unified

	miniBuffer       *window.Unified
	selectMiniBuffer bool

	MessagesBufferHandle *handle.Handle

	MiniBufferCompletion capability.CompletionContext

	Mouse MousePosition

	PendingMessage *Message
	QueueQuit      bool
	PendingRaise   bool

	clipboard capability.Clipboard
}

// NewSession builds a session whose window tree root is a fresh Unified
// window over selected, with its own mini-buffer window over miniBuffer
// and a handle on the messages log. clipboard may be nil (no system
// clipboard capability).
func NewSession(id string, selected, miniBuffer *handle.Handle, messages *handle.Handle, clipboard capability.Clipboard) *Session {
	root := window.Create(selected, id+"-w0")
	return &Session{
		ID:                   id,
		Windows:              window.NewTree(root),
		SelectedNormalWindow: root,
		miniBuffer:           window.Create(miniBuffer, id+"-mini"),
		MessagesBufferHandle: messages,
		clipboard:            clipboard,
	}
}

// MiniBufferWindow returns the session's dedicated mini-buffer window.
func (s *Session) MiniBufferWindow() *window.Unified { return s.miniBuffer }

// SelectMiniBuffer reports whether the mini-buffer currently has input
// focus.
func (s *Session) SelectMiniBuffer() bool { return s.selectMiniBuffer }

// SetSelectMiniBuffer focuses or unfocuses the mini-buffer.
func (s *Session) SetSelectMiniBuffer(v bool) { s.selectMiniBuffer = v }

// SelectedWindow returns the mini-buffer window if it is focused,
// otherwise the selected normal window.
func (s *Session) SelectedWindow() *window.Unified {
	if s.selectMiniBuffer {
		return s.miniBuffer
	}
	return s.SelectedNormalWindow
}

// AppendGlobalCopy implements window.CopyChainHost.
func (s *Session) AppendGlobalCopy(values []string) {
	s.GlobalCopyChain = append(s.GlobalCopyChain, values...)
}

// Clipboard implements window.CopyChainHost.
func (s *Session) Clipboard() capability.Clipboard { return s.clipboard }

// ShowMessage queues text as the session's pending message, timestamped
// now. The caller supplies now so this package never calls time.Now()
// itself, keeping it deterministic under test.
func (s *Session) ShowMessage(text string, now time.Time) {
	s.PendingMessage = &Message{Text: text, Timestamp: now}
}

// ClearMessage discards any pending message.
func (s *Session) ClearMessage() {
	s.PendingMessage = nil
}

// Raise requests that a front end bring the client's window to the
// foreground.
func (s *Session) Raise() {
	s.PendingRaise = true
}

// PushJump records a jump to (bufferID, position, changeIndex), discarding
// any forward jump history.
func (s *Session) PushJump(bufferID string, position uint64, changeIndex int) {
	s.JumpChain.Push(Jump{BufferID: bufferID, Position: position, ChangeIndex: changeIndex})
}
