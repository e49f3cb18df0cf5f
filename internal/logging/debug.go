package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// EnvDebug enables debug output when set to any non-empty value.
const EnvDebug = "TASKLOG_DEBUG"

var (
	mu      sync.RWMutex
	verbose bool
	out     io.Writer = os.Stderr
)

// SetVerbose forces debug output on or off regardless of TASKLOG_DEBUG.
// It is driven by the --verbose flag and the application.verbose setting.
func SetVerbose(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = enabled
}

// SetOutput redirects debug output and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

// DebugEnabled returns true if debug mode is enabled via SetVerbose or the
// TASKLOG_DEBUG environment variable
func DebugEnabled() bool {
	mu.RLock()
	v := verbose
	mu.RUnlock()
	return v || os.Getenv(EnvDebug) != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		mu.RLock()
		defer mu.RUnlock()
		fmt.Fprintf(out, format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		mu.RLock()
		defer mu.RUnlock()
		fmt.Fprintln(out, args...)
	}
}
