// Package main is the entry point for the kernel's headless driver: it
// wires a config.Settings into an editor.Editor, reads any files named
// on the command line, optionally feeds a scripted sequence of
// keystrokes, and prints the resulting buffer contents. It owns every
// bit of filesystem access the core editor deliberately stays out of.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mageditor/kernel/internal/capability"
	"github.com/mageditor/kernel/internal/config"
	"github.com/mageditor/kernel/internal/editor"
	"github.com/mageditor/kernel/internal/engine/buffer"
)

func main() {
	os.Exit(run())
}

type options struct {
	configPath string
	logLevel   string
	debug      bool
	readOnly   bool
	workers    int
	scriptPath string
	files      []string
}

func run() int {
	opts := parseFlags()

	settings, err := config.NewLoader(opts.configPath).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		settings.Editor.LogLevel = opts.logLevel
	}
	if opts.debug {
		settings.Editor.Debug = true
	}
	if opts.readOnly {
		settings.Editor.ReadOnly = true
	}
	if opts.workers > 0 {
		settings.Editor.AsyncWorkers = opts.workers
	}

	ed := editor.New(editor.Options{
		Debug:        settings.Editor.Debug,
		LogLevel:     settings.Editor.LogLevel,
		ReadOnly:     settings.Editor.ReadOnly,
		AsyncWorkers: settings.Editor.AsyncWorkers,
	})
	defer ed.Shutdown()

	if err := config.ApplyBindings(ed.Dispatcher, settings); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if opts.configPath != "" {
		watcher, err := config.NewWatcher(opts.configPath, 0, func() {
			reloaded, err := config.NewLoader(opts.configPath).Load()
			if err != nil {
				ed.Logger().WithComponent("config").Warn("reload failed: %v", err)
				return
			}
			if err := config.ApplyBindings(ed.Dispatcher, reloaded); err != nil {
				ed.Logger().WithComponent("config").Warn("reload applied with errors: %v", err)
			}
		})
		if err == nil {
			defer watcher.Close()
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		ed.Shutdown()
		os.Exit(0)
	}()

	mode := capability.NewTextMode("fundamental", settings.Editor.UseTabs, settings.Editor.TabWidth)

	_, sessID := ed.NewSession()
	var firstBufID string
	for _, path := range opts.files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: reading %s: %v\n", path, err)
			return 1
		}
		_, id := ed.NewBufferFromText(filepath.Dir(path), filepath.Base(path), string(data), buffer.WithMode(mode))
		if firstBufID == "" {
			firstBufID = id
		}
	}
	if firstBufID != "" {
		if err := ed.SelectBuffer(sessID, firstBufID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: selecting %s: %v\n", opts.files[0], err)
			return 1
		}
	}

	if opts.scriptPath != "" {
		script, err := os.ReadFile(opts.scriptPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: reading script %s: %v\n", opts.scriptPath, err)
			return 1
		}
		keys, err := parseScript(string(script))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: parsing script: %v\n", err)
			return 1
		}
		for _, key := range keys {
			if err := ed.HandleKey(sessID, key); err != nil {
				fmt.Fprintf(os.Stderr, "Error: dispatching key %s: %v\n", key, err)
				return 1
			}
			ed.Tick()
		}
	}

	for _, h := range ed.Buffers() {
		buf := h.LockReading()
		fmt.Printf("=== %s ===\n%s\n", buf.Name, buf.Contents.String())
		h.Unlock()
	}

	return 0
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to a TOML configuration file")
	flag.StringVar(&opts.configPath, "c", "", "path to a TOML configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flag.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flag.BoolVar(&opts.readOnly, "readonly", false, "open files read-only")
	flag.IntVar(&opts.workers, "workers", 0, "background job worker count")
	flag.StringVar(&opts.scriptPath, "script", "", "path to a scripted key-sequence file")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "kernel - headless text-editor core\n\n")
		fmt.Fprintf(os.Stderr, "Usage: kernel [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	opts.files = flag.Args()
	return opts
}
