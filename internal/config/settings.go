package config

// Settings is the decoded contents of a TOML configuration file: the
// ambient editor options plus the user's key bindings.
type Settings struct {
	Editor   EditorOptions `toml:"editor"`
	Bindings []Binding     `toml:"bindings"`
}

// EditorOptions mirrors the subset of editor.Options a configuration
// file may override.
type EditorOptions struct {
	Debug        bool   `toml:"debug"`
	LogLevel     string `toml:"log_level"`
	ReadOnly     bool   `toml:"read_only"`
	AsyncWorkers int    `toml:"async_workers"`
	TabWidth     int    `toml:"tab_width"`
	UseTabs      bool   `toml:"use_tabs"`
}

// Binding is one [[bindings]] table entry: a key chord, the mode it
// applies in, and the command name to run. Mode is empty for a global
// binding.
type Binding struct {
	Mode    string `toml:"mode"`
	Keys    string `toml:"keys"`
	Command string `toml:"command"`
}

// Default returns the settings a fresh editor runs with when no
// configuration file is present: an empty binding table and the same
// option defaults editor.New already applies.
func Default() *Settings {
	return &Settings{
		Editor: EditorOptions{
			LogLevel:     "info",
			AsyncWorkers: 1,
			TabWidth:     8,
		},
	}
}
