package report

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
)

// TextfileSink writes the report as Prometheus gauges in the text exposition
// format, for the node-exporter textfile collector. The file is replaced
// atomically on every write.
type TextfileSink struct {
	Path string
}

func (s *TextfileSink) Name() string { return "textfile" }

// Write implements Sink. The returned location is the textfile path.
func (s *TextfileSink) Write(_ context.Context, report models.ComplianceReport) (string, error) {
	reg, err := newReportRegistry(report)
	if err != nil {
		return "", err
	}
	if err := prometheus.WriteToTextfile(s.Path, reg); err != nil {
		return "", fmt.Errorf("write textfile %q: %w", s.Path, err)
	}
	return s.Path, nil
}

// newReportRegistry builds a registry holding one gauge set for report.
func newReportRegistry(report models.ComplianceReport) (*prometheus.Registry, error) {
	value := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "namegov_sla_metric_value",
		Help: "Computed naming-compliance SLA metric value",
	}, []string{"metric", "unit"})
	target := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "namegov_sla_metric_target",
		Help: "SLA target for the naming-compliance metric",
	}, []string{"metric", "unit"})
	pass := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "namegov_sla_metric_pass",
		Help: "Whether the naming-compliance metric met its target (1=PASS, 0=FAIL)",
	}, []string{"metric"})
	overall := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "namegov_sla_overall_pass",
		Help: "Whether every naming-compliance SLA metric met its target (1=PASS, 0=FAIL)",
	})
	generated := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "namegov_sla_report_timestamp_seconds",
		Help: "Unix time the SLA report was generated",
	})
	resources := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "namegov_snapshot_resources",
		Help: "Resource counters from the metrics snapshot",
	}, []string{"state"})

	reg := prometheus.NewRegistry()
	for _, c := range []prometheus.Collector{value, target, pass, overall, generated, resources} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register report gauge: %w", err)
		}
	}

	for _, m := range report.Metrics {
		name := string(m.Name)
		value.WithLabelValues(name, m.Unit).Set(m.Value)
		target.WithLabelValues(name, m.Unit).Set(m.Target)
		pass.WithLabelValues(name).Set(passValue(m.Status))
	}
	overall.Set(passValue(report.OverallStatus()))
	generated.Set(float64(report.Timestamp.Unix()))
	resources.WithLabelValues("total").Set(float64(report.RawData.TotalResources))
	resources.WithLabelValues("compliant").Set(float64(report.RawData.CompliantResources))
	resources.WithLabelValues("violating").Set(float64(report.RawData.Violations))

	return reg, nil
}
