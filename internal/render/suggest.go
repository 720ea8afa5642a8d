package render

import (
	"fmt"
	"io"

	"github.com/pankaj-dahiya-devops/namegov/internal/naming"
)

// RenderSuggestion writes the naming suggestion view to w:
//
//	=== Naming Suggestion ===
//
//	Current Name:   My App!
//	Suggested Name: prod-my-app-deploy-v2.1.0
//
//	Pattern: ^(dev|staging|prod)-...$
//
//	Validation: ✅ Valid
func RenderSuggestion(w io.Writer, res naming.ValidationResult, pattern string, opts Options) {
	fmt.Fprintln(w, "=== Naming Suggestion ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Current Name:   %s\n", res.Original)
	fmt.Fprintf(w, "Suggested Name: %s\n", res.Candidate)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Pattern: %s\n", pattern)
	fmt.Fprintln(w)

	verdict := "Invalid"
	if res.MatchesGrammar {
		verdict = "Valid"
	}
	fmt.Fprintf(w, "Validation: %s %s\n", statusMark(res.MatchesGrammar), paint(verdict, res.MatchesGrammar, opts.Colored))
}
