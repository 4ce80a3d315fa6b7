package easel

import (
	"fmt"
	"os"
)

// Logger is the sink for recovered callback panics and internal warnings.
// The engine never lets a failing listener or gesture handler abort the
// frame; it recovers, reports here, and keeps going. Pass a custom Logger
// in ContextConfig to capture these reports.
type Logger interface {
	Errorf(format string, args ...any)
	Warnf(format string, args ...any)
}

// stderrLogger is the default Logger. It writes prefixed lines to stderr.
type stderrLogger struct{}

func (stderrLogger) Errorf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[easel] error: "+format+"\n", args...)
}

func (stderrLogger) Warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[easel] warning: "+format+"\n", args...)
}

// NewStderrLogger returns the default stderr Logger.
func NewStderrLogger() Logger {
	return stderrLogger{}
}

// safeCall invokes fn, converting a panic into a logged error. what names
// the dispatch site in the report.
func safeCall(log Logger, what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if log != nil {
				log.Errorf("%s panicked: %v", what, r)
			}
		}
	}()
	fn()
}
