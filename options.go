package ggscript

import "log/slog"

// DefaultTolerance is the distance below which two points are treated as
// coincident by the path helpers.
const DefaultTolerance = 0.01

// Option configures an Interpreter or RenderContext during creation.
//
// Example:
//
//	in := ggscript.New(backend, resolver,
//	    ggscript.WithDebug(true),
//	    ggscript.WithTolerance(0.001))
type Option func(*options)

type options struct {
	tolerance float64
	debug     bool
	logger    *slog.Logger
}

func defaultOptions() options {
	return options{tolerance: DefaultTolerance}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// log returns the configured logger, falling back to the package logger.
func (o *options) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return Logger()
}

// WithTolerance sets the distance tolerance used by arc_to and the other
// geometry helpers. Non-positive values are ignored.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.tolerance = tol
		}
	}
}

// WithDebug enables one debug record per dispatched opcode.
func WithDebug(enabled bool) Option {
	return func(o *options) {
		o.debug = enabled
	}
}

// WithLogger routes this interpreter's records, and those of a backend
// implementing LoggerSetter, to l instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
