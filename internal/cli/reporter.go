package cli

import (
	"io"

	"github.com/fatih/color"
)

// consoleReporter delivers user-facing messages of an order run.
//
// In text mode errors are printed in red to stderr as they arrive.
// In JSON mode, and for the final status in either mode, messages are
// collected so the command can print them together with its result.
type consoleReporter struct {
	// stderr receives the red validation messages in text mode.
	stderr io.Writer

	// json suppresses direct printing; the command prints the collected
	// messages inside its JSON result instead.
	json bool

	// errors holds every validation message in the order received.
	errors []string

	// status is the last completion message ("Done!" after a full run).
	status string
}

// newConsoleReporter returns a reporter writing to stderr. With jsonMode
// set, messages are only collected.
func newConsoleReporter(stderr io.Writer, jsonMode bool) *consoleReporter {
	return &consoleReporter{stderr: stderr, json: jsonMode}
}

// Error records a validation message.
func (r *consoleReporter) Error(message string) {
	r.errors = append(r.errors, message)
	if !r.json {
		_, _ = color.New(color.FgRed).Fprintln(r.stderr, message)
	}
}

// Status records the completion message.
func (r *consoleReporter) Status(message string) {
	r.status = message
}

// Errors returns the collected validation messages.
func (r *consoleReporter) Errors() []string {
	if r.errors == nil {
		return []string{}
	}
	return r.errors
}
