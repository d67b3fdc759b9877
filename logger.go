package ggscript

import (
	"log/slog"
	"sync/atomic"
)

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(silentLogger())
}

func silentLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

// SetLogger sets the logger used by interpreters built without WithLogger
// and by backends that were not handed one. Nothing is logged until it is
// called; nil restores that default. It may be called at any time from
// any goroutine.
//
// Records written:
//   - debug: each dispatched opcode (WithDebug), each unresolved
//     image or font id
//   - warn: text that failed to shape, clamped stroke parameters,
//     fill and stroke errors from the raster backend
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silentLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the logger last set with SetLogger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// LoggerSetter is implemented by backends that log on their own. New
// hands them the logger given with WithLogger so an interpreter and its
// backend write to the same sink.
type LoggerSetter interface {
	SetLogger(*slog.Logger)
}
