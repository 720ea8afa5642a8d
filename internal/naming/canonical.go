// Package naming implements the resource naming convention: canonicalising
// free-form names, resolving resource-type codes, validating names against the
// grammar and composing candidate names from those pieces.
//
// Everything in this package is a pure, in-memory computation. No function
// reads the clock, the environment or the filesystem, so identical inputs
// always produce identical outputs.
package naming

import "strings"

// Canonicalize normalises raw into a token over the alphabet [a-z0-9-].
//
// The input is lower-cased, every character outside the alphabet becomes '-',
// runs of '-' collapse into one and a single leading or trailing '-' is
// removed. Canonicalize never fails; an input with no usable characters
// yields the empty string.
func Canonicalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	lastDash := false
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		// '-' and every other rune map to a single separator.
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}

	out := b.String()
	out = strings.TrimPrefix(out, "-")
	out = strings.TrimSuffix(out, "-")
	return out
}
