// Package manifests collects governed resources from Kubernetes YAML
// manifests on disk.
package manifests

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
)

// Source is the inventory source name stamped on manifest audits.
const Source = "manifests"

// object is the part of a manifest document the audit reads.
type object struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
	Metadata   struct {
		Name      string            `yaml:"name"`
		Namespace string            `yaml:"namespace"`
		Labels    map[string]string `yaml:"labels"`
	} `yaml:"metadata"`
	Items []object `yaml:"items"`
}

// Collector walks a file or directory tree and decodes every *.yaml and
// *.yml file, including multi-document files and v1 List objects.
type Collector struct {
	root   string
	logger *logrus.Logger
}

// NewCollector returns a collector rooted at path.
func NewCollector(path string, logger *logrus.Logger) *Collector {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Collector{root: path, logger: logger}
}

// Collect implements engine.InventoryCollector.
func (c *Collector) Collect(ctx context.Context) (*models.ResourceInventory, error) {
	inv := &models.ResourceInventory{
		Source:          Source,
		NamespaceLabels: make(map[string]map[string]string),
		Metadata:        map[string]any{"path": c.root},
	}

	files, err := manifestFiles(c.root)
	if err != nil {
		return nil, err
	}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := c.collectFile(path, inv); err != nil {
			return nil, err
		}
	}
	inv.Resources = c.dedupe(inv.Resources)
	inv.Metadata["files"] = len(files)
	return inv, nil
}

// dedupe keeps the first occurrence of each resource ID. The same object
// declared in two files (an overlay and its base, say) is one resource.
func (c *Collector) dedupe(resources []models.NamedResource) []models.NamedResource {
	first := make(map[string]string, len(resources))
	out := resources[:0]
	for _, r := range resources {
		id := r.ID()
		if origin, dup := first[id]; dup {
			c.logger.WithFields(logrus.Fields{
				"resource": id,
				"file":     r.Origin,
				"first":    origin,
			}).Warn("Skipping duplicate resource")
			continue
		}
		first[id] = r.Origin
		out = append(out, r)
	}
	return out
}

// manifestFiles lists YAML files under root in lexical order. A root that
// is itself a file is returned as is, whatever its extension.
func manifestFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat manifests path %q: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk manifests path %q: %w", root, err)
	}
	return files, nil
}

func (c *Collector) collectFile(path string, inv *models.ResourceInventory) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open manifest %q: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	for doc := 1; ; doc++ {
		var obj object
		err := dec.Decode(&obj)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode manifest %q document %d: %w", path, doc, err)
		}
		c.addObject(obj, path, inv)
	}
}

func (c *Collector) addObject(obj object, path string, inv *models.ResourceInventory) {
	if strings.HasSuffix(obj.Kind, "List") {
		for _, item := range obj.Items {
			c.addObject(item, path, inv)
		}
		return
	}

	if obj.Kind == "Namespace" {
		inv.NamespaceLabels[obj.Metadata.Name] = obj.Metadata.Labels
		return
	}

	if !governed(obj.Kind) {
		if obj.Kind != "" {
			c.logger.WithFields(logrus.Fields{"file": path, "kind": obj.Kind}).Debug("Skipping ungoverned kind")
		}
		return
	}
	if obj.Metadata.Name == "" {
		c.logger.WithFields(logrus.Fields{"file": path, "kind": obj.Kind}).Warn("Skipping manifest without metadata.name")
		return
	}

	inv.Resources = append(inv.Resources, models.NamedResource{
		Kind:      obj.Kind,
		Name:      obj.Metadata.Name,
		Namespace: obj.Metadata.Namespace,
		Labels:    obj.Metadata.Labels,
		Origin:    path,
	})
}

func governed(kind string) bool {
	for _, k := range models.GovernedKinds {
		if k == kind {
			return true
		}
	}
	return false
}
