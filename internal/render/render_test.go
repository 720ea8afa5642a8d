package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
	"github.com/pankaj-dahiya-devops/namegov/internal/naming"
)

func TestRenderSuggestion_Valid(t *testing.T) {
	res := naming.ValidationResult{
		Original:       "My App!",
		Candidate:      "prod-my-app-deploy-v2.1.0",
		MatchesGrammar: true,
	}
	var buf bytes.Buffer
	RenderSuggestion(&buf, res, naming.DefaultGrammar, Options{})
	out := buf.String()

	for _, want := range []string{
		"=== Naming Suggestion ===",
		"Current Name:   My App!",
		"Suggested Name: prod-my-app-deploy-v2.1.0",
		"Pattern: " + naming.DefaultGrammar,
		"Validation: ✅ Valid",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\ngot:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("uncolored output must not contain ANSI codes")
	}
}

func TestRenderSuggestion_InvalidColored(t *testing.T) {
	res := naming.ValidationResult{Original: "x", Candidate: "qa-x-deploy-v1.0.0"}
	var buf bytes.Buffer
	RenderSuggestion(&buf, res, naming.DefaultGrammar, Options{Colored: true})
	out := buf.String()

	if !strings.Contains(out, "❌") {
		t.Errorf("output missing failure mark\ngot:\n%s", out)
	}
	if !strings.Contains(out, ansiRed+"Invalid"+ansiReset) {
		t.Errorf("colored output missing red Invalid\ngot:\n%q", out)
	}
}

func sampleReport() models.ComplianceReport {
	return models.ComplianceReport{
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Metrics: models.MetricSet{
			{Name: models.MetricNCR, Value: 98.56, Target: 95, Unit: "%", Status: models.StatusPass},
			{Name: models.MetricVFC, Value: 36, Target: 48, Unit: "hours", Status: models.StatusPass},
			{Name: models.MetricMFR, Value: 25, Target: 20, Unit: "%", Status: models.StatusFail},
			{Name: models.MetricARS, Value: 100, Target: 80, Unit: "%", Status: models.StatusPass, NoData: true},
		},
		RawData: models.MetricsSnapshot{TotalResources: 1250, CompliantResources: 1232},
	}
}

func TestRenderSLAReport(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSLAReport(&buf, sampleReport(), Options{}); err != nil {
		t.Fatalf("RenderSLAReport error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"=== Naming Compliance SLA Report ===",
		"Generated: 2026-03-01T12:00:00Z",
		"✅ NCR: 98.56% (Target: 95%) - PASS",
		"✅ VFC: 36.00hours (Target: 48hours) - PASS",
		"❌ MFR: 25.00% (Target: 20%) - FAIL",
		"✅ ARS: 100.00% (Target: 80%) - PASS (no data)",
		"=== Raw Metrics ===",
		`"totalResources": 1250`,
		`"avgFixTime": 0`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\ngot:\n%s", want, out)
		}
	}

	// Metric lines keep report order.
	if strings.Index(out, "NCR:") > strings.Index(out, "ARS:") {
		t.Error("NCR must be printed before ARS")
	}
}

func TestMetricLine_Colored(t *testing.T) {
	m := models.ComplianceMetric{Name: models.MetricNCR, Value: 90, Target: 95, Unit: "%", Status: models.StatusFail}
	got := MetricLine(m, true)
	if !strings.HasSuffix(got, ansiRed+"FAIL"+ansiReset) {
		t.Errorf("MetricLine = %q; want red FAIL suffix", got)
	}
}

func TestRenderValidation(t *testing.T) {
	checks := []NameCheck{
		{Name: "prod-my-app-api-deploy-v1.0.0", Valid: true},
		{Name: "prod-my-app-deploy", Valid: false},
	}
	var buf bytes.Buffer
	RenderValidation(&buf, checks, Options{})
	out := buf.String()

	for _, want := range []string{
		"VALID    prod-my-app-api-deploy-v1.0.0",
		"INVALID  prod-my-app-deploy",
		"2 checked, 1 valid, 1 invalid",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\ngot:\n%s", want, out)
		}
	}
}

func TestWriteValidationJSON(t *testing.T) {
	var buf bytes.Buffer
	checks := []NameCheck{{Name: "dev-a-svc-v1.0.0", Valid: true}}
	if err := WriteValidationJSON(&buf, naming.DefaultGrammar, checks); err != nil {
		t.Fatalf("WriteValidationJSON error: %v", err)
	}

	var got struct {
		Pattern string      `json:"pattern"`
		Results []NameCheck `json:"results"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if got.Pattern != naming.DefaultGrammar {
		t.Errorf("pattern = %q", got.Pattern)
	}
	if len(got.Results) != 1 || !got.Results[0].Valid {
		t.Errorf("results = %+v", got.Results)
	}
}

func TestWriteValidationJSON_NilChecksIsEmptyArray(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteValidationJSON(&buf, "p", nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"results": []`) {
		t.Errorf("want empty results array, got:\n%s", buf.String())
	}
}
