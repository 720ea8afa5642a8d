package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
	"github.com/pankaj-dahiya-devops/namegov/internal/providers/aws/common"
)

// DefaultS3Key is the object key used when S3Sink.Key is empty.
const DefaultS3Key = "namegov/sla-report.json"

// S3Sink uploads the report document to an S3 bucket. Each run overwrites
// the same key, matching the local file sink's last-writer-wins behaviour.
type S3Sink struct {
	Client common.S3Client
	Bucket string
	Key    string
}

func (s *S3Sink) Name() string { return "s3" }

// Write implements Sink. The returned location is an s3:// URL.
func (s *S3Sink) Write(ctx context.Context, report models.ComplianceReport) (string, error) {
	if s.Bucket == "" {
		return "", fmt.Errorf("s3 sink: bucket is required")
	}
	key := strings.TrimPrefix(s.Key, "/")
	if key == "" {
		key = DefaultS3Key
	}

	data, err := Marshal(report)
	if err != nil {
		return "", err
	}

	_, err = s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("S3 PutObject s3://%s/%s: %w", s.Bucket, key, err)
	}
	return fmt.Sprintf("s3://%s/%s", s.Bucket, key), nil
}
