// Package monitoring holds the process-wide diagnostic logger.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf
// and may be swapped out with SetLogger; tests usually mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// Verbose gates Debugf output. The main binary sets it from -debug.
var Verbose bool

// SetLogger replaces the package logger. A nil f installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Debugf logs through Logf only when Verbose is set.
func Debugf(format string, v ...interface{}) {
	if Verbose {
		Logf(format, v...)
	}
}
