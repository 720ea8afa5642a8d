// Package prometheus reads a metrics snapshot from a Prometheus server with
// one instant query per snapshot field.
package prometheus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
)

// Name is the source kind selected with --source prometheus.
const Name = "prometheus"

// DefaultTimeout bounds each query when config leaves it unset.
const DefaultTimeout = 10 * time.Second

// maxConcurrentQueries bounds the in-flight queries of one Snapshot.
const maxConcurrentQueries = 4

// ErrNoAddress is returned when the source is built without a server address.
var ErrNoAddress = errors.New("prometheus address is required")

// QueryAPI is the subset of v1.API the source uses.
type QueryAPI interface {
	Query(ctx context.Context, query string, ts time.Time, opts ...v1.Option) (model.Value, v1.Warnings, error)
}

// Config configures a Source.
type Config struct {
	// Address is the Prometheus base URL (e.g. http://prometheus:9090).
	Address string
	// Timeout bounds each query. Zero means DefaultTimeout.
	Timeout time.Duration
	// Queries overrides DefaultQueries per snapshot field.
	Queries map[string]string
}

// Source issues the configured queries and assembles a snapshot.
type Source struct {
	api     QueryAPI
	queries map[string]string
	timeout time.Duration
	now     func() time.Time
	logger  *logrus.Logger
}

// New builds a Source talking to cfg.Address over HTTP.
func New(cfg Config, logger *logrus.Logger) (*Source, error) {
	if cfg.Address == "" {
		return nil, ErrNoAddress
	}
	client, err := api.NewClient(api.Config{Address: cfg.Address})
	if err != nil {
		return nil, fmt.Errorf("create prometheus client for %s: %w", cfg.Address, err)
	}
	return NewWithAPI(v1.NewAPI(client), cfg, logger)
}

// NewWithAPI builds a Source over an existing query API.
func NewWithAPI(queryAPI QueryAPI, cfg Config, logger *logrus.Logger) (*Source, error) {
	queries, err := resolveQueries(cfg.Queries)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	return &Source{
		api:     queryAPI,
		queries: queries,
		timeout: timeout,
		now:     time.Now,
		logger:  logger,
	}, nil
}

func (s *Source) Name() string { return Name }

// Snapshot evaluates every query at one shared instant so the counters are
// consistent with each other. Queries run concurrently, at most
// maxConcurrentQueries at a time; the first failure cancels the rest.
func (s *Source) Snapshot(ctx context.Context) (models.MetricsSnapshot, error) {
	ts := s.now()
	values := make([]float64, len(fieldOrder))
	errs := make([]error, len(fieldOrder))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentQueries)
	for i, field := range fieldOrder {
		g.Go(func() error {
			v, err := s.query(gctx, field, s.queries[field], ts)
			values[i], errs[i] = v, err
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return models.MetricsSnapshot{}, firstCause(errs, err)
	}

	var snap models.MetricsSnapshot
	for i, field := range fieldOrder {
		setField(&snap, field, values[i])
	}
	if err := snap.Validate(); err != nil {
		return models.MetricsSnapshot{}, fmt.Errorf("prometheus snapshot: %w", err)
	}
	return snap, nil
}

// firstCause returns the first error in field order that is not a
// cancellation caused by another query failing.
func firstCause(errs []error, fallback error) error {
	for _, err := range errs {
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	return fallback
}

func (s *Source) query(ctx context.Context, field, expr string, ts time.Time) (float64, error) {
	qctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	log := s.logger.WithFields(logrus.Fields{"field": field, "query": expr})
	log.Debug("Querying Prometheus")

	result, warnings, err := s.api.Query(qctx, expr, ts)
	if err != nil {
		return 0, fmt.Errorf("query %s (%s): %w", field, expr, err)
	}
	for _, w := range warnings {
		log.WithField("warning", w).Warn("Prometheus query warning")
	}

	v, err := scalarValue(result)
	if err != nil {
		return 0, fmt.Errorf("query %s (%s): %w", field, expr, err)
	}
	return v, nil
}

// scalarValue reduces an instant query result to one number. An empty
// vector means the series does not exist yet and reads as zero.
func scalarValue(v model.Value) (float64, error) {
	if v == nil {
		return 0, errors.New("empty result")
	}
	switch r := v.(type) {
	case *model.Scalar:
		return float64(r.Value), nil
	case model.Vector:
		switch len(r) {
		case 0:
			return 0, nil
		case 1:
			return float64(r[0].Value), nil
		default:
			return 0, fmt.Errorf("expected a single sample, got %d series; aggregate the query with sum()", len(r))
		}
	default:
		return 0, fmt.Errorf("unsupported result type %s", v.Type())
	}
}
