package client

import (
	"testing"
	"time"

	"github.com/mageditor/kernel/internal/engine/buffer"
	"github.com/mageditor/kernel/internal/engine/handle"
	"github.com/mageditor/kernel/internal/engine/strval"
)

type fakeClipboard struct{ last string }

func (c *fakeClipboard) Get(arena *strval.Arena) (strval.Value, bool) {
	return strval.FromOwnedCopy(c.last, arena), c.last != ""
}
func (c *fakeClipboard) Set(text string) bool {
	c.last = text
	return true
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	selected := handle.New(buffer.NewFromString("b1", "", "a.txt", "hello"))
	mini := handle.New(buffer.New("mini", "", "*mini*"))
	messages := handle.New(buffer.New("msgs", "", "*messages*"))
	return NewSession("c1", selected, mini, messages, &fakeClipboard{})
}

func TestNewSessionSelectsNormalWindowByDefault(t *testing.T) {
	s := newTestSession(t)
	if s.SelectedWindow() != s.SelectedNormalWindow {
		t.Fatal("expected the normal window to be selected by default")
	}
}

func TestSetSelectMiniBufferSwitchesSelection(t *testing.T) {
	s := newTestSession(t)
	s.SetSelectMiniBuffer(true)
	if s.SelectedWindow() != s.MiniBufferWindow() {
		t.Fatal("expected the mini-buffer window to be selected")
	}
	if !s.SelectMiniBuffer() {
		t.Fatal("SelectMiniBuffer() should report true")
	}
}

func TestShowMessageAndClear(t *testing.T) {
	s := newTestSession(t)
	now := time.Unix(1000, 0)
	s.ShowMessage("saved", now)
	if s.PendingMessage == nil || s.PendingMessage.Text != "saved" {
		t.Fatalf("PendingMessage = %+v", s.PendingMessage)
	}
	s.ClearMessage()
	if s.PendingMessage != nil {
		t.Fatal("expected PendingMessage to be cleared")
	}
}

func TestRaiseSetsPendingRaise(t *testing.T) {
	s := newTestSession(t)
	s.Raise()
	if !s.PendingRaise {
		t.Fatal("expected PendingRaise to be set")
	}
}

func TestPushJumpAndPop(t *testing.T) {
	s := newTestSession(t)
	s.PushJump("b1", 10, 0)
	s.PushJump("b1", 20, 1)

	j, ok := s.JumpChain.Pop()
	if !ok || j.Position != 20 {
		t.Fatalf("Pop() = %+v, %v, want position 20", j, ok)
	}
	j, ok = s.JumpChain.Pop()
	if !ok || j.Position != 10 {
		t.Fatalf("Pop() = %+v, %v, want position 10", j, ok)
	}
	if _, ok := s.JumpChain.Pop(); ok {
		t.Fatal("expected Pop to fail once the chain is exhausted")
	}
}

func TestJumpChainUnpopRedoesAPop(t *testing.T) {
	var c JumpChain
	c.Push(Jump{Position: 1})
	c.Push(Jump{Position: 2})
	c.Pop()
	c.Pop()

	j, ok := c.Unpop()
	if !ok || j.Position != 1 {
		t.Fatalf("Unpop() = %+v, %v, want position 1", j, ok)
	}
}

func TestJumpChainPushTruncatesForwardHistory(t *testing.T) {
	var c JumpChain
	c.Push(Jump{Position: 1})
	c.Push(Jump{Position: 2})
	c.Pop()
	c.Push(Jump{Position: 3})

	if len(c.Jumps) != 2 {
		t.Fatalf("len(Jumps) = %d, want 2 (position 2 should have been discarded)", len(c.Jumps))
	}
	if _, ok := c.Unpop(); ok {
		t.Fatal("expected no forward history after a push truncated it")
	}
}

func TestAppendGlobalCopyAndClipboard(t *testing.T) {
	s := newTestSession(t)
	s.AppendGlobalCopy([]string{"x", "y"})
	if len(s.GlobalCopyChain) != 2 {
		t.Fatalf("GlobalCopyChain = %v", s.GlobalCopyChain)
	}
	if s.Clipboard() == nil {
		t.Fatal("expected a non-nil clipboard")
	}
}
