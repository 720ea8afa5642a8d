package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
)

// DefaultFilePath is the report path used when none is configured. It is
// relative to the working directory.
const DefaultFilePath = "sla-report.json"

// FileSink writes the report as indented JSON to a local file, creating or
// overwriting it. Concurrent runs targeting the same path are last-writer-wins.
type FileSink struct {
	Path string
}

// NewFileSink returns a FileSink for path, or for DefaultFilePath when path
// is empty.
func NewFileSink(path string) *FileSink {
	if path == "" {
		path = DefaultFilePath
	}
	return &FileSink{Path: path}
}

func (s *FileSink) Name() string { return "file" }

// Write implements Sink. The returned location is the absolute file path.
func (s *FileSink) Write(_ context.Context, report models.ComplianceReport) (string, error) {
	data, err := Marshal(report)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report file %q: %w", s.Path, err)
	}
	abs, err := filepath.Abs(s.Path)
	if err != nil {
		return s.Path, nil
	}
	return abs, nil
}

// Marshal serialises report as indented JSON, the format shared by every
// sink that stores the whole document.
func Marshal(report models.ComplianceReport) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}
