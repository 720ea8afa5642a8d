package render

import (
	"encoding/json"
	"fmt"
	"io"
)

// NameCheck is the verdict for one name passed to the validate command.
type NameCheck struct {
	Name  string `json:"name"`
	Valid bool   `json:"valid"`
}

// RenderValidation writes one line per name followed by a totals line:
//
//	VALID    prod-my-app-api-deploy-v1.0.0
//	INVALID  prod-my-app-deploy
//
//	2 checked, 1 valid, 1 invalid
func RenderValidation(w io.Writer, checks []NameCheck, opts Options) {
	valid := 0
	for _, c := range checks {
		label := "INVALID"
		if c.Valid {
			label = "VALID"
			valid++
		}
		fmt.Fprintf(w, "%s  %s\n", paint(fmt.Sprintf("%-7s", label), c.Valid, opts.Colored), c.Name)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d checked, %d valid, %d invalid\n", len(checks), valid, len(checks)-valid)
}

// WriteValidationJSON writes checks as indented JSON to w:
//
//	{"pattern": "...", "results": [{"name": "...", "valid": true}]}
func WriteValidationJSON(w io.Writer, pattern string, checks []NameCheck) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if checks == nil {
		checks = []NameCheck{}
	}
	return enc.Encode(map[string]any{
		"pattern": pattern,
		"results": checks,
	})
}
