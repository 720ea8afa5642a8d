package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
)

// ANSI color codes for severity output (used when Colored=true).
const (
	ansiReset   = "\033[0m"
	ansiBoldRed = "\033[1;31m"
	ansiRed     = "\033[0;31m"
	ansiYellow  = "\033[0;33m"
	ansiBlue    = "\033[0;34m"
)

// SuggestedNameKey is the finding metadata key carrying a compliant replacement name.
const SuggestedNameKey = "suggested_name"

// TableOptions controls which columns RenderTable renders and how severity is coloured.
type TableOptions struct {
	// Colored wraps severity labels with ANSI codes. Default false (CI-safe).
	Colored bool

	// IncludeSuggestion adds a SUGGESTED NAME column when any finding carries one.
	IncludeSuggestion bool

	// IncludeDomain adds a DOMAIN column.
	IncludeDomain bool

	// IncludeRule adds a RULE column with the rule ID.
	IncludeRule bool

	// LocationLabel is the column header for the namespace column.
	// Defaults to "NAMESPACE".
	LocationLabel string
}

func severityColor(sev models.Severity) string {
	switch sev {
	case models.SeverityCritical:
		return ansiBoldRed
	case models.SeverityHigh:
		return ansiRed
	case models.SeverityMedium:
		return ansiYellow
	case models.SeverityLow:
		return ansiBlue
	default:
		return ""
	}
}

// ColorSeverity wraps a severity string with ANSI codes when colored is true.
// When colored is false the string is returned unchanged.
func ColorSeverity(sev models.Severity, colored bool) string {
	s := string(sev)
	code := severityColor(sev)
	if !colored || code == "" {
		return s
	}
	return code + s + ansiReset
}

// ShortenMessage truncates msg to at most max runes, appending "..." when truncated.
// max is treated as at least 4 to guarantee space for the ellipsis.
func ShortenMessage(msg string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(msg)
	if len(runes) <= max {
		return msg
	}
	return string(runes[:max-3]) + "..."
}

// SuggestedName returns the suggested replacement name recorded on f, if any.
func SuggestedName(f models.Finding) string {
	if f.Metadata == nil {
		return ""
	}
	s, _ := f.Metadata[SuggestedNameKey].(string)
	return s
}

func hasSuggestions(findings []models.Finding) bool {
	for _, f := range findings {
		if SuggestedName(f) != "" {
			return true
		}
	}
	return false
}

// severityCell returns the severity padded to width characters.
// ANSI codes wrap only the text; trailing padding stays plain so columns align.
func severityCell(sev models.Severity, width int, colored bool) string {
	text := string(sev)
	code := severityColor(sev)
	if !colored || code == "" {
		return fmt.Sprintf("%-*s", width, text)
	}
	spaces := width - len(text)
	if spaces < 0 {
		spaces = 0
	}
	return code + text + ansiReset + strings.Repeat(" ", spaces)
}

// truncateField shortens s to at most max runes for ID/label columns.
func truncateField(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// RenderTable writes a formatted findings table to w.
//
// Column order:
//
//	RESOURCE ID  NAMESPACE  SEVERITY  [DOMAIN]  [RULE]  TYPE  MESSAGE  [SUGGESTED NAME]
func RenderTable(w io.Writer, findings []models.Finding, opts TableOptions) {
	if opts.LocationLabel == "" {
		opts.LocationLabel = "NAMESPACE"
	}

	if len(findings) == 0 {
		fmt.Fprintln(w, "No findings.")
		return
	}

	showSuggestion := opts.IncludeSuggestion && hasSuggestions(findings)

	const (
		wResource = 36
		wLocation = 15
		wSeverity = 10
		wDomain   = 10
		wRule     = 28
		wType     = 16
		wMessage  = 55
	)

	var hb strings.Builder
	hb.WriteString(fmt.Sprintf("%-*s", wResource, "RESOURCE ID"))
	hb.WriteString(fmt.Sprintf("  %-*s", wLocation, opts.LocationLabel))
	hb.WriteString(fmt.Sprintf("  %-*s", wSeverity, "SEVERITY"))
	if opts.IncludeDomain {
		hb.WriteString(fmt.Sprintf("  %-*s", wDomain, "DOMAIN"))
	}
	if opts.IncludeRule {
		hb.WriteString(fmt.Sprintf("  %-*s", wRule, "RULE"))
	}
	hb.WriteString(fmt.Sprintf("  %-*s", wType, "TYPE"))
	hb.WriteString(fmt.Sprintf("  %-*s", wMessage, "MESSAGE"))
	if showSuggestion {
		hb.WriteString("  SUGGESTED NAME")
	}
	header := hb.String()

	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))

	for _, f := range findings {
		location := f.Namespace
		if location == "" {
			location = "-"
		}
		var rb strings.Builder
		rb.WriteString(fmt.Sprintf("%-*s", wResource, truncateField(f.ResourceID, wResource)))
		rb.WriteString(fmt.Sprintf("  %-*s", wLocation, truncateField(location, wLocation)))
		rb.WriteString("  " + severityCell(f.Severity, wSeverity, opts.Colored))
		if opts.IncludeDomain {
			rb.WriteString(fmt.Sprintf("  %-*s", wDomain, truncateField(f.Domain, wDomain)))
		}
		if opts.IncludeRule {
			rb.WriteString(fmt.Sprintf("  %-*s", wRule, truncateField(f.RuleID, wRule)))
		}
		rb.WriteString(fmt.Sprintf("  %-*s", wType, truncateField(string(f.ResourceType), wType)))
		rb.WriteString(fmt.Sprintf("  %-*s", wMessage, ShortenMessage(f.Explanation, wMessage)))
		if showSuggestion {
			rb.WriteString("  " + SuggestedName(f))
		}
		fmt.Fprintln(w, strings.TrimRight(rb.String(), " "))
	}
}
