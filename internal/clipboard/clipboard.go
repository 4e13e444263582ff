package clipboard

import (
	"sync"

	"github.com/mageditor/kernel/internal/engine/strval"
)

// InProcess is a process-local clipboard: Set publishes text, Get returns
// the last published text. It implements capability.Clipboard.
type InProcess struct {
	mu   sync.RWMutex
	text string
	set  bool
}

// New creates an empty in-process clipboard.
func New() *InProcess {
	return &InProcess{}
}

// Get returns the clipboard's current content as a Value allocated from
// arena, or ok=false if nothing has ever been set.
func (c *InProcess) Get(arena *strval.Arena) (strval.Value, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.set {
		return strval.Value{}, false
	}
	return strval.FromOwnedCopy(c.text, arena), true
}

// Set publishes text to the clipboard.
func (c *InProcess) Set(text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	c.set = true
	return true
}
