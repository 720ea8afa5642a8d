package report

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
)

type mockS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (m *mockS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.input = in
	if in.Body != nil {
		m.body, _ = io.ReadAll(in.Body)
	}
	return &s3.PutObjectOutput{}, m.err
}

type mockCloudWatch struct {
	input *cloudwatch.PutMetricDataInput
	err   error
}

func (m *mockCloudWatch) PutMetricData(_ context.Context, in *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	m.input = in
	return &cloudwatch.PutMetricDataOutput{}, m.err
}

func sampleReport() models.ComplianceReport {
	return NewEmitter(io.Discard, nil, WithClock(fixedClock)).
		Build(evaluate(referenceSnapshot()), referenceSnapshot()).Report
}

func TestS3Sink_Write(t *testing.T) {
	client := &mockS3{}
	sink := &S3Sink{Client: client, Bucket: "compliance-reports", Key: "/team-a/sla.json"}

	loc, err := sink.Write(context.Background(), sampleReport())
	require.NoError(t, err)

	assert.Equal(t, "s3://compliance-reports/team-a/sla.json", loc)
	require.NotNil(t, client.input)
	assert.Equal(t, "compliance-reports", aws.ToString(client.input.Bucket))
	assert.Equal(t, "team-a/sla.json", aws.ToString(client.input.Key))
	assert.Equal(t, "application/json", aws.ToString(client.input.ContentType))
	assert.Contains(t, string(client.body), `"rawData"`)
}

func TestS3Sink_DefaultKey(t *testing.T) {
	client := &mockS3{}
	sink := &S3Sink{Client: client, Bucket: "b"}

	loc, err := sink.Write(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.Equal(t, "s3://b/"+DefaultS3Key, loc)
}

func TestS3Sink_Errors(t *testing.T) {
	_, err := (&S3Sink{Client: &mockS3{}}).Write(context.Background(), sampleReport())
	assert.Error(t, err, "missing bucket must fail")

	sink := &S3Sink{Client: &mockS3{err: errors.New("AccessDenied")}, Bucket: "b"}
	_, err = sink.Write(context.Background(), sampleReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessDenied")
}

func TestCloudWatchSink_Write(t *testing.T) {
	client := &mockCloudWatch{}
	sink := &CloudWatchSink{Client: client}

	loc, err := sink.Write(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.Equal(t, "cloudwatch://"+DefaultCloudWatchNamespace, loc)

	require.NotNil(t, client.input)
	assert.Equal(t, DefaultCloudWatchNamespace, aws.ToString(client.input.Namespace))
	// Value + Pass per metric, plus OverallPass.
	require.Len(t, client.input.MetricData, 9)

	first := client.input.MetricData[0]
	assert.Equal(t, "Value", aws.ToString(first.MetricName))
	assert.Equal(t, "NCR", aws.ToString(first.Dimensions[0].Value))
	assert.Equal(t, 98.56, aws.ToFloat64(first.Value))
	assert.Equal(t, cwtypes.StandardUnitPercent, first.Unit)

	vfc := client.input.MetricData[2]
	assert.Equal(t, "VFC", aws.ToString(vfc.Dimensions[0].Value))
	assert.Equal(t, cwtypes.StandardUnitNone, vfc.Unit)

	last := client.input.MetricData[8]
	assert.Equal(t, "OverallPass", aws.ToString(last.MetricName))
	assert.Equal(t, 1.0, aws.ToFloat64(last.Value))
}

func TestCloudWatchSink_Error(t *testing.T) {
	sink := &CloudWatchSink{Client: &mockCloudWatch{err: errors.New("throttled")}, Namespace: "Custom"}
	_, err := sink.Write(context.Background(), sampleReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Custom")
}
