package config

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the configuration file doesn't exist. No
// function in this package returns it: Load treats a missing file as
// "use defaults," not an error, including a path given with -config.
var ErrFileNotFound = errors.New("config file not found")

// ParseError describes a malformed TOML configuration file. Mirrors the
// teacher's config.ParseError shape.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string
	// Message describes the parse error.
	Message string
	// Err is the underlying decoder error.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// BindingError describes a single malformed [[bindings]] table entry.
// ApplyBindings collects these rather than failing on the first one, so
// one bad entry in a user's config doesn't block every other binding
// from loading.
type BindingError struct {
	// Mode is the binding's mode, or "" for a global binding.
	Mode string
	// Keys is the raw key-sequence description that failed to parse.
	Keys string
	// Err is the underlying error (from keybind.ParseBinding or Map.Bind).
	Err error
}

func (e *BindingError) Error() string {
	if e.Mode == "" {
		return fmt.Sprintf("binding %q: %s", e.Keys, e.Err)
	}
	return fmt.Sprintf("binding %q (mode %s): %s", e.Keys, e.Mode, e.Err)
}

func (e *BindingError) Unwrap() error {
	return e.Err
}
