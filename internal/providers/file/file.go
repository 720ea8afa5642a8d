// Package file reads a metrics snapshot from a YAML or JSON document.
package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
)

// Name is the source kind selected with --source file.
const Name = "file"

// ErrNoPath is returned when the source is built without a snapshot path.
var ErrNoPath = errors.New("snapshot file path is required")

// Source loads a snapshot from Path on every call, so edits between runs are
// picked up without restarting anything.
type Source struct {
	Path string
}

// New returns a Source reading path.
func New(path string) (*Source, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	return &Source{Path: path}, nil
}

func (s *Source) Name() string { return Name }

// Snapshot reads and validates the snapshot file. Unknown keys are rejected
// so that a misspelled counter does not silently read as zero.
func (s *Source) Snapshot(ctx context.Context) (models.MetricsSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.MetricsSnapshot{}, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return models.MetricsSnapshot{}, fmt.Errorf("read snapshot file %q: %w", s.Path, err)
	}
	snap, err := Decode(data)
	if err != nil {
		return models.MetricsSnapshot{}, fmt.Errorf("snapshot file %q: %w", s.Path, err)
	}
	return snap, nil
}

// Decode parses a snapshot document. JSON documents are accepted as YAML.
func Decode(data []byte) (models.MetricsSnapshot, error) {
	var snap models.MetricsSnapshot
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&snap); err != nil {
		if errors.Is(err, io.EOF) {
			return models.MetricsSnapshot{}, errors.New("empty snapshot document")
		}
		return models.MetricsSnapshot{}, fmt.Errorf("parse snapshot: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return models.MetricsSnapshot{}, err
	}
	return snap, nil
}
