package output_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
	"github.com/pankaj-dahiya-devops/namegov/internal/output"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func renderToString(findings []models.Finding, opts output.TableOptions) string {
	var buf bytes.Buffer
	output.RenderTable(&buf, findings, opts)
	return buf.String()
}

func oneFinding(overrides ...func(*models.Finding)) models.Finding {
	f := models.Finding{
		ID:           "K8S_NAME_POLICY_VIOLATION:Deployment/payments/PaymentsAPI",
		RuleID:       "K8S_NAME_POLICY_VIOLATION",
		ResourceID:   "Deployment/payments/PaymentsAPI",
		ResourceType: models.ResourceK8sDeployment,
		Namespace:    "payments",
		Domain:       "naming",
		Severity:     models.SeverityHigh,
		Explanation:  "Name does not match the naming pattern.",
		Metadata: map[string]any{
			output.SuggestedNameKey: "deploy-payments-api-dev-v1.0.0",
		},
	}
	for _, fn := range overrides {
		fn(&f)
	}
	return f
}

// ── SUGGESTED NAME column ─────────────────────────────────────────────────────

func TestRenderTable_SuggestionColumn_WhenEnabled(t *testing.T) {
	out := renderToString([]models.Finding{oneFinding()}, output.TableOptions{
		IncludeSuggestion: true,
	})
	if !strings.Contains(out, "SUGGESTED NAME") {
		t.Errorf("expected SUGGESTED NAME header\ngot:\n%s", out)
	}
	if !strings.Contains(out, "deploy-payments-api-dev-v1.0.0") {
		t.Errorf("expected suggested name in output\ngot:\n%s", out)
	}
}

func TestRenderTable_SuggestionColumn_AbsentWhenDisabled(t *testing.T) {
	out := renderToString([]models.Finding{oneFinding()}, output.TableOptions{})
	if strings.Contains(out, "SUGGESTED NAME") {
		t.Errorf("SUGGESTED NAME must not appear when IncludeSuggestion=false\ngot:\n%s", out)
	}
}

func TestRenderTable_SuggestionColumn_AbsentWhenNoFindingHasOne(t *testing.T) {
	f := oneFinding(func(f *models.Finding) { f.Metadata = nil })
	out := renderToString([]models.Finding{f}, output.TableOptions{
		IncludeSuggestion: true,
	})
	if strings.Contains(out, "SUGGESTED NAME") {
		t.Errorf("SUGGESTED NAME must not appear without suggestions\ngot:\n%s", out)
	}
}

// ── DOMAIN and RULE columns ───────────────────────────────────────────────────

func TestRenderTable_DomainColumn_WhenEnabled(t *testing.T) {
	out := renderToString([]models.Finding{oneFinding()}, output.TableOptions{
		IncludeDomain: true,
	})
	if !strings.Contains(out, "DOMAIN") {
		t.Errorf("expected DOMAIN column header in output\ngot:\n%s", out)
	}
	if !strings.Contains(out, "naming") {
		t.Errorf("expected domain value 'naming' in output\ngot:\n%s", out)
	}
}

func TestRenderTable_DomainColumn_WhenDisabled(t *testing.T) {
	out := renderToString([]models.Finding{oneFinding()}, output.TableOptions{})
	if strings.Contains(out, "DOMAIN") {
		t.Errorf("DOMAIN column must not appear when IncludeDomain=false\ngot:\n%s", out)
	}
}

func TestRenderTable_RuleColumn_WhenEnabled(t *testing.T) {
	out := renderToString([]models.Finding{oneFinding()}, output.TableOptions{
		IncludeRule: true,
	})
	if !strings.Contains(out, "RULE") || !strings.Contains(out, "K8S_NAME_POLICY_VIOLATION") {
		t.Errorf("expected RULE column with rule ID\ngot:\n%s", out)
	}
}

// ── message shortening ────────────────────────────────────────────────────────

func TestRenderTable_MessageIsTruncatedWhenTooLong(t *testing.T) {
	long := strings.Repeat("x", 100)
	f := oneFinding(func(f *models.Finding) { f.Explanation = long })
	out := renderToString([]models.Finding{f}, output.TableOptions{})

	if strings.Contains(out, long) {
		t.Errorf("full 100-char message must not appear verbatim in output\ngot:\n%s", out)
	}
	if !strings.Contains(out, "...") {
		t.Errorf("truncated message must end with ellipsis\ngot:\n%s", out)
	}
}

func TestRenderTable_LongResourceIDIsTruncated(t *testing.T) {
	id := "Deployment/payments/" + strings.Repeat("a", 60)
	f := oneFinding(func(f *models.Finding) { f.ResourceID = id })
	out := renderToString([]models.Finding{f}, output.TableOptions{})

	if strings.Contains(out, id) {
		t.Errorf("long resource ID must be truncated\ngot:\n%s", out)
	}
	if !strings.Contains(out, "…") {
		t.Errorf("truncated resource ID must end with an ellipsis\ngot:\n%s", out)
	}
}

// ── empty findings ────────────────────────────────────────────────────────────

func TestRenderTable_EmptyFindings_PrintsNoFindings(t *testing.T) {
	out := renderToString(nil, output.TableOptions{})
	if !strings.Contains(out, "No findings.") {
		t.Errorf("expected 'No findings.' for empty slice\ngot:\n%s", out)
	}
	if strings.Contains(out, "RESOURCE ID") {
		t.Errorf("column headers must not appear for empty findings\ngot:\n%s", out)
	}
}

// ── color mode ────────────────────────────────────────────────────────────────

func TestRenderTable_ColoredFalse_NoAnsiCodes(t *testing.T) {
	out := renderToString([]models.Finding{oneFinding()}, output.TableOptions{})
	if strings.Contains(out, "\033[") {
		t.Errorf("no ANSI codes must appear when Colored=false\ngot (hex): %q", out)
	}
}

func TestRenderTable_ColoredTrue_HasAnsiCodes(t *testing.T) {
	out := renderToString([]models.Finding{oneFinding()}, output.TableOptions{
		Colored: true,
	})
	if !strings.Contains(out, "\033[0;31mHIGH\033[0m") {
		t.Errorf("HIGH must be red when Colored=true\ngot: %q", out)
	}
}

func TestColorSeverity_InfoIsPlain(t *testing.T) {
	if got := output.ColorSeverity(models.SeverityInfo, true); got != "INFO" {
		t.Errorf("got %q; want plain INFO", got)
	}
}

// ── location label ────────────────────────────────────────────────────────────

func TestRenderTable_LocationLabel_DefaultsToNamespace(t *testing.T) {
	out := renderToString([]models.Finding{oneFinding()}, output.TableOptions{})
	if !strings.Contains(out, "NAMESPACE") {
		t.Errorf("default location label must be NAMESPACE\ngot:\n%s", out)
	}
	if !strings.Contains(out, "payments") {
		t.Errorf("namespace must appear in output\ngot:\n%s", out)
	}
}

func TestRenderTable_ClusterScopedShowsDash(t *testing.T) {
	f := oneFinding(func(f *models.Finding) {
		f.Namespace = ""
		f.ResourceID = "Deployment/PaymentsAPI"
	})
	out := renderToString([]models.Finding{f}, output.TableOptions{})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	row := lines[len(lines)-1]
	if !strings.Contains(row, "  -  ") {
		t.Errorf("empty namespace must render as '-'\ngot row: %q", row)
	}
}

// ── ShortenMessage unit tests ─────────────────────────────────────────────────

func TestShortenMessage_ShortString_Unchanged(t *testing.T) {
	s := "hello"
	if got := output.ShortenMessage(s, 80); got != s {
		t.Errorf("got %q; want %q", got, s)
	}
}

func TestShortenMessage_ExactLength_Unchanged(t *testing.T) {
	s := strings.Repeat("a", 80)
	if got := output.ShortenMessage(s, 80); got != s {
		t.Errorf("string of exact max length must not be truncated")
	}
}

func TestShortenMessage_TooLong_TruncatedWithEllipsis(t *testing.T) {
	got := output.ShortenMessage(strings.Repeat("a", 100), 80)
	if len([]rune(got)) != 80 {
		t.Errorf("truncated string should be 80 runes, got %d", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated string must end with '...', got %q", got)
	}
}

func TestShortenMessage_VerySmallMax_DoesNotPanic(t *testing.T) {
	if got := output.ShortenMessage("hello world", 2); got == "" {
		t.Error("ShortenMessage with tiny max must return non-empty string")
	}
}

// ── combined column set ───────────────────────────────────────────────────────

func TestRenderTable_AllColumns_AllPresent(t *testing.T) {
	out := renderToString([]models.Finding{oneFinding()}, output.TableOptions{
		IncludeSuggestion: true,
		IncludeDomain:     true,
		IncludeRule:       true,
	})
	for _, want := range []string{"RESOURCE ID", "NAMESPACE", "SEVERITY", "DOMAIN", "RULE", "TYPE", "MESSAGE", "SUGGESTED NAME"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected column %q in output\ngot:\n%s", want, out)
		}
	}
}
