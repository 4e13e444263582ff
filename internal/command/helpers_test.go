package command

import (
	"github.com/mageditor/kernel/internal/client"
	"github.com/mageditor/kernel/internal/engine/buffer"
	"github.com/mageditor/kernel/internal/engine/handle"
)

// newSessionOver builds a single-window session over buf, with a plain
// mini-buffer and messages buffer, and no clipboard.
func newSessionOver(buf *buffer.Buffer) *client.Session {
	selected := handle.New(buf)
	mini := handle.New(buffer.New("mini", "", "*mini*"))
	messages := handle.New(buffer.New("msgs", "", "*messages*"))
	return client.NewSession("c1", selected, mini, messages, nil)
}
