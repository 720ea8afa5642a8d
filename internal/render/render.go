// Package render provides the human-readable console views of the naming
// engine's results. It is a pure rendering package: no metric computation,
// no validation and no I/O beyond the writer it is given.
package render

import "github.com/pankaj-dahiya-devops/namegov/internal/models"

// ANSI color codes used when Options.Colored is true.
const (
	ansiReset = "\033[0m"
	ansiGreen = "\033[0;32m"
	ansiRed   = "\033[1;31m"
)

// Options controls console rendering.
type Options struct {
	// Colored wraps PASS/FAIL and Valid/Invalid verdicts with ANSI codes.
	// Default false (CI-safe).
	Colored bool
}

// statusMark returns the emoji prefix used for a verdict line.
func statusMark(pass bool) string {
	if pass {
		return "✅"
	}
	return "❌"
}

// paint wraps s in the pass or fail color when colored is true.
func paint(s string, pass, colored bool) string {
	if !colored {
		return s
	}
	if pass {
		return ansiGreen + s + ansiReset
	}
	return ansiRed + s + ansiReset
}

// StatusLabel returns the status text, colored when requested.
func StatusLabel(s models.Status, colored bool) string {
	return paint(string(s), s == models.StatusPass, colored)
}
