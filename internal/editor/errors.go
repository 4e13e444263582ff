package editor

import "errors"

// Errors returned by Editor operations. Follows the teacher's
// internal/app/errors.go's flat sentinel-error style.
var (
	// ErrBufferNotFound indicates no buffer is registered under the given id.
	ErrBufferNotFound = errors.New("editor: buffer not found")

	// ErrSessionNotFound indicates no session is registered under the given id.
	ErrSessionNotFound = errors.New("editor: session not found")
)
