package config

import (
	"github.com/mageditor/kernel/internal/command"
)

// ApplyBindings installs every binding in settings into d, routing each
// one to the named mode's keymap (or the global keymap, for a binding
// with no mode) the way the teacher's KeymapManager.LoadFromConfig walks
// a [[bindings]] table and registers each entry into its keymap
// registry. A malformed entry doesn't abort the whole file: it's
// collected and returned as part of a BindingErrors, while every
// well-formed binding alongside it still gets installed.
func ApplyBindings(d *command.Dispatcher, settings *Settings) error {
	var errs BindingErrors
	for _, b := range settings.Bindings {
		m := d.Global
		if b.Mode != "" {
			m = d.ModeKeymap(b.Mode)
		}
		if err := d.Bind(m, b.Keys, b.Command); err != nil {
			errs = append(errs, &BindingError{Mode: b.Mode, Keys: b.Keys, Err: err})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BindingErrors collects every BindingError encountered while applying a
// configuration file's binding table.
type BindingErrors []*BindingError

func (e BindingErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	s := e[0].Error()
	for _, err := range e[1:] {
		s += "; " + err.Error()
	}
	return s
}
