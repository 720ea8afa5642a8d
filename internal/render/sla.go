package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
)

// RenderSLAReport writes the console summary of report to w: a header, the
// generation time, one verdict line per metric and the raw snapshot as
// indented JSON.
//
//	✅ NCR: 98.56% (Target: 95%) - PASS
//	✅ VFC: 36.00hours (Target: 48hours) - PASS
func RenderSLAReport(w io.Writer, report models.ComplianceReport, opts Options) error {
	fmt.Fprintln(w, "=== Naming Compliance SLA Report ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Generated: %s\n", report.Timestamp.UTC().Format(time.RFC3339Nano))
	fmt.Fprintln(w)

	for _, m := range report.Metrics {
		fmt.Fprintln(w, MetricLine(m, opts.Colored))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Raw Metrics ===")
	data, err := json.MarshalIndent(report.RawData, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal raw metrics: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// MetricLine formats a single metric verdict line.
func MetricLine(m models.ComplianceMetric, colored bool) string {
	pass := m.Status == models.StatusPass
	line := fmt.Sprintf("%s %s: %.2f%s (Target: %s%s) - %s",
		statusMark(pass),
		m.Name,
		m.Value,
		m.Unit,
		strconv.FormatFloat(m.Target, 'f', -1, 64),
		m.Unit,
		StatusLabel(m.Status, colored),
	)
	if m.NoData {
		line += " (no data)"
	}
	return line
}
