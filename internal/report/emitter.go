// Package report assembles the naming-compliance SLA report, renders its
// console summary and writes it to one or more durable sinks.
package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
	"github.com/pankaj-dahiya-devops/namegov/internal/render"
)

// Sink persists a finished report. Implementations must not modify report.
type Sink interface {
	// Name returns a short identifier used in logs (e.g. "file", "s3").
	Name() string

	// Write persists report and returns a human-readable location such as a
	// file path or an s3:// URL.
	Write(ctx context.Context, report models.ComplianceReport) (string, error)
}

// Result is the outcome of Emitter.Emit.
type Result struct {
	Report        models.ComplianceReport
	OverallStatus models.Status

	// ExitCode is 0 when OverallStatus is PASS and 1 otherwise. It is the only
	// control-flow signal exposed to orchestrating callers.
	ExitCode int

	// Locations lists where the report was written, in sink order.
	Locations []string
}

// Emitter builds reports and delivers them to the console and its sinks.
type Emitter struct {
	console io.Writer
	sinks   []Sink
	opts    render.Options
	now     func() time.Time
	logger  *logrus.Logger
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithClock replaces the clock used to stamp reports.
func WithClock(now func() time.Time) Option {
	return func(e *Emitter) { e.now = now }
}

// WithRenderOptions sets console rendering options.
func WithRenderOptions(opts render.Options) Option {
	return func(e *Emitter) { e.opts = opts }
}

// WithLogger sets the logger used for sink diagnostics.
func WithLogger(logger *logrus.Logger) Option {
	return func(e *Emitter) { e.logger = logger }
}

// NewEmitter returns an Emitter that renders to console and writes to sinks
// in the given order.
func NewEmitter(console io.Writer, sinks []Sink, opts ...Option) *Emitter {
	e := &Emitter{
		console: console,
		sinks:   sinks,
		now:     time.Now,
		logger:  discardLogger(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Build assembles a report from evaluated metrics and the raw snapshot
// without rendering or persisting it.
func (e *Emitter) Build(metrics models.MetricSet, raw models.MetricsSnapshot) Result {
	cp := make(models.MetricSet, len(metrics))
	copy(cp, metrics)

	report := models.ComplianceReport{
		Timestamp: e.now().UTC().Truncate(time.Millisecond),
		Metrics:   cp,
		RawData:   raw,
	}
	status := report.OverallStatus()
	exit := 0
	if status != models.StatusPass {
		exit = 1
	}
	return Result{Report: report, OverallStatus: status, ExitCode: exit}
}

// Emit builds the report, renders the console summary and writes the report
// to every sink. Rendering always happens before persistence so the summary
// is visible even when a sink fails. The first sink error aborts the
// remaining sinks and is returned together with the partial Result.
func (e *Emitter) Emit(ctx context.Context, metrics models.MetricSet, raw models.MetricsSnapshot) (Result, error) {
	res := e.Build(metrics, raw)

	if err := render.RenderSLAReport(e.console, res.Report, e.opts); err != nil {
		return res, err
	}

	for _, s := range e.sinks {
		loc, err := s.Write(ctx, res.Report)
		if err != nil {
			e.logger.WithError(err).WithField("sink", s.Name()).Error("Failed to write report")
			return res, fmt.Errorf("write report to %s sink: %w", s.Name(), err)
		}
		e.logger.WithFields(logrus.Fields{
			"sink":     s.Name(),
			"location": loc,
		}).Debug("Report written")
		res.Locations = append(res.Locations, loc)
		fmt.Fprintf(e.console, "\nReport saved to: %s\n", loc)
	}

	return res, nil
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
