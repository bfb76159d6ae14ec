package decompiler

import (
	"github.com/deepnoodle-ai/codom/bytecode"
	"github.com/rs/zerolog"
)

// Option describes a function used to configure a Decompiler.
type Option func(*Decompiler)

// WithMode selects how errors are reported. The default is Strict.
func WithMode(mode Mode) Option {
	return func(d *Decompiler) {
		d.mode = mode
	}
}

// WithLenient is shorthand for WithMode(Lenient).
func WithLenient() Option {
	return WithMode(Lenient)
}

// WithLogger sets the logger every trace entry is mirrored to. Entries are
// logged with the "decompilation" and "method" fields attached.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Decompiler) {
		d.logger = logger
	}
}

// WithResolver supplies the resolver used for display names. Unless
// WithWellKnown is also given, its kind table is used as well.
func WithResolver(r bytecode.Resolver) Option {
	return func(d *Decompiler) {
		d.resolver = r
	}
}

// WithWellKnown supplies the table of built-in kinds.
func WithWellKnown(w *bytecode.WellKnown) Option {
	return func(d *Decompiler) {
		d.wellKnown = w
	}
}

// WithObserver attaches an observer that is called synchronously for every
// processed element and emitted statement.
func WithObserver(o Observer) Option {
	return func(d *Decompiler) {
		d.observer = o
	}
}
