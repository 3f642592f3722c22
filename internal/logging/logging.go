// Package logging provides subsystem-prefixed logging on top of the
// standard library logger. Debug output is gated on DEBUG=true.
package logging

import (
	"log"
	"os"
	"strings"
)

var debugEnabled = os.Getenv("DEBUG") == "true"

// Info logs an informational message (always shown)
func Info(subsystem, format string, args ...any) {
	log.Printf("["+subsystem+"] "+format, args...)
}

// Error logs an error message (always shown)
func Error(subsystem, format string, args ...any) {
	log.Printf("["+subsystem+"] ERROR "+format, args...)
}

// Debug logs a debug message (only shown if DEBUG=true)
func Debug(subsystem, format string, args ...any) {
	if debugEnabled {
		log.Printf("["+subsystem+"] "+format, args...)
	}
}

// Truncate shortens a string to maxLen for one-line log output.
func Truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
