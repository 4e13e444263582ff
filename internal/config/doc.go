// Package config loads editor settings and key bindings from a TOML file
// and, optionally, reloads them when the file changes on disk.
//
// Grounded on the teacher's internal/config package: the TOML parsing
// shape comes from config/loader/toml.go, the binding-table walk from
// config/keymap.go's KeymapManager, and the reload plumbing from
// project/watcher/fsnotify.go.
package config
