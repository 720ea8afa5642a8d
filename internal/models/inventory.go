package models

import "strings"

// Governed Kubernetes kinds. Each maps to a type code in the naming registry
// through its lower-cased form.
const (
	KindDeployment = "Deployment"
	KindService    = "Service"
	KindIngress    = "Ingress"
	KindConfigMap  = "ConfigMap"
	KindSecret     = "Secret"
)

// GovernedKinds lists the kinds covered by the naming convention, in the
// order they are collected and reported.
var GovernedKinds = []string{KindDeployment, KindService, KindIngress, KindConfigMap, KindSecret}

// ResourceTypeForKind returns the finding resource type for a governed kind.
// Unknown kinds map to an upper-cased K8S_ prefix form.
func ResourceTypeForKind(kind string) ResourceType {
	switch kind {
	case KindDeployment:
		return ResourceK8sDeployment
	case KindService:
		return ResourceK8sService
	case KindIngress:
		return ResourceK8sIngress
	case KindConfigMap:
		return ResourceK8sConfigMap
	case KindSecret:
		return ResourceK8sSecret
	}
	return ResourceType("K8S_" + strings.ToUpper(kind))
}

// NamedResource is one governed object whose name is subject to the naming
// convention.
type NamedResource struct {
	Kind      string            `json:"kind"`
	Name      string            `json:"name"`
	Namespace string            `json:"namespace,omitempty"`
	Labels    map[string]string `json:"labels,omitempty"`
	// Origin locates the object: a manifest file path or a cluster context.
	Origin string `json:"origin,omitempty"`
}

// ID returns the stable resource identifier used in findings:
// kind/namespace/name, or kind/name for cluster-scoped objects.
func (r NamedResource) ID() string {
	if r.Namespace == "" {
		return r.Kind + "/" + r.Name
	}
	return r.Kind + "/" + r.Namespace + "/" + r.Name
}

// ResourceInventory is the input of a naming audit: the governed resources
// and the labels of the namespaces that own them.
type ResourceInventory struct {
	// Source names where the inventory was collected (e.g. "kubernetes",
	// "manifests").
	Source string `json:"source"`

	Resources []NamedResource `json:"resources"`

	// NamespaceLabels maps a namespace name to a copy of its label map.
	// Namespaces absent from the map have no known labels.
	NamespaceLabels map[string]map[string]string `json:"namespace_labels,omitempty"`

	// Metadata carries source-specific details copied into the audit report.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// DistinctResources counts resources by ID, so an object listed twice is
// counted once.
func (inv ResourceInventory) DistinctResources() int {
	seen := make(map[string]struct{}, len(inv.Resources))
	for _, r := range inv.Resources {
		seen[r.ID()] = struct{}{}
	}
	return len(seen)
}

// Namespaces returns the namespaces that own at least one resource, in order
// of first appearance.
func (inv ResourceInventory) Namespaces() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range inv.Resources {
		if r.Namespace == "" {
			continue
		}
		if _, ok := seen[r.Namespace]; ok {
			continue
		}
		seen[r.Namespace] = struct{}{}
		out = append(out, r.Namespace)
	}
	return out
}
