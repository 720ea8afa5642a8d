package report

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
	"github.com/pankaj-dahiya-devops/namegov/internal/providers/aws/common"
)

// DefaultCloudWatchNamespace is the metric namespace used when none is set.
const DefaultCloudWatchNamespace = "NamingCompliance"

// CloudWatchSink publishes each SLA metric value, its pass flag and the
// overall pass flag as CloudWatch custom metrics, stamped with the report
// timestamp.
type CloudWatchSink struct {
	Client    common.CloudWatchClient
	Namespace string
}

func (s *CloudWatchSink) Name() string { return "cloudwatch" }

// Write implements Sink. The returned location is cloudwatch://<namespace>.
func (s *CloudWatchSink) Write(ctx context.Context, report models.ComplianceReport) (string, error) {
	ns := s.Namespace
	if ns == "" {
		ns = DefaultCloudWatchNamespace
	}

	ts := report.Timestamp
	data := make([]cwtypes.MetricDatum, 0, 2*len(report.Metrics)+1)
	for _, m := range report.Metrics {
		dims := []cwtypes.Dimension{{Name: aws.String("Metric"), Value: aws.String(string(m.Name))}}
		data = append(data,
			cwtypes.MetricDatum{
				MetricName: aws.String("Value"),
				Dimensions: dims,
				Value:      aws.Float64(m.Value),
				Unit:       cloudWatchUnit(m.Unit),
				Timestamp:  aws.Time(ts),
			},
			cwtypes.MetricDatum{
				MetricName: aws.String("Pass"),
				Dimensions: dims,
				Value:      aws.Float64(passValue(m.Status)),
				Unit:       cwtypes.StandardUnitNone,
				Timestamp:  aws.Time(ts),
			},
		)
	}
	data = append(data, cwtypes.MetricDatum{
		MetricName: aws.String("OverallPass"),
		Value:      aws.Float64(passValue(report.OverallStatus())),
		Unit:       cwtypes.StandardUnitNone,
		Timestamp:  aws.Time(ts),
	})

	_, err := s.Client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(ns),
		MetricData: data,
	})
	if err != nil {
		return "", fmt.Errorf("CloudWatch PutMetricData %s: %w", ns, err)
	}
	return "cloudwatch://" + ns, nil
}

// cloudWatchUnit maps a report unit to a CloudWatch standard unit. Hours
// have no standard unit and are published unitless.
func cloudWatchUnit(unit string) cwtypes.StandardUnit {
	if unit == "%" {
		return cwtypes.StandardUnitPercent
	}
	return cwtypes.StandardUnitNone
}

func passValue(s models.Status) float64 {
	if s == models.StatusPass {
		return 1
	}
	return 0
}
