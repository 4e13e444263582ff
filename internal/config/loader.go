package config

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Loader reads Settings from a TOML file. Adapted from the teacher's
// loader.TOMLLoader, trimmed to this module's single-file, single-format
// use: no @include processing and no FileSystem abstraction, since
// nothing in this repository needs either.
type Loader struct {
	path string
}

// NewLoader returns a Loader for the file at path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and parses the configured file. A missing file is not an
// error: Load returns Default() unchanged, the same way a fresh editor
// behaves with no configuration at all.
func (l *Loader) Load() (*Settings, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", l.path, err)
	}
	return l.parse(data)
}

// LoadFromReader parses Settings from an already-open reader, for
// callers that already hold the file's content (tests, or a front end
// reading from an embedded default).
func (l *Loader) LoadFromReader(r io.Reader) (*Settings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return l.parse(data)
}

func (l *Loader) parse(data []byte) (*Settings, error) {
	var settings Settings
	if err := toml.Unmarshal(data, &settings); err != nil {
		return nil, &ParseError{Path: l.path, Message: err.Error(), Err: err}
	}
	applyDefaults(&settings)
	return &settings, nil
}

// applyDefaults fills in zero-valued fields a loaded file left
// unspecified. Parsing into a zero Settings rather than Default()
// avoids depending on whether the TOML decoder merges into a
// pre-populated struct or overwrites it wholesale.
func applyDefaults(s *Settings) {
	d := Default()
	if s.Editor.LogLevel == "" {
		s.Editor.LogLevel = d.Editor.LogLevel
	}
	if s.Editor.AsyncWorkers == 0 {
		s.Editor.AsyncWorkers = d.Editor.AsyncWorkers
	}
	if s.Editor.TabWidth == 0 {
		s.Editor.TabWidth = d.Editor.TabWidth
	}
}
