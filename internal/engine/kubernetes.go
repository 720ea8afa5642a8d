package engine

import (
	"context"
	"fmt"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
	kube "github.com/pankaj-dahiya-devops/namegov/internal/providers/kubernetes"
)

// KubernetesCollector is an InventoryCollector backed by a live cluster.
type KubernetesCollector struct {
	provider kube.KubeClientProvider
	opts     KubernetesAuditOptions
}

// KubernetesAuditOptions carries the parameters for a single cluster audit.
type KubernetesAuditOptions struct {
	// ContextName is the kubeconfig context to connect to.
	// An empty string means use the current context.
	ContextName string

	// Namespaces restricts the audit. Empty means all non-system namespaces.
	Namespaces []string
}

// NewKubernetesCollector returns a collector that connects through provider.
func NewKubernetesCollector(provider kube.KubeClientProvider, opts KubernetesAuditOptions) *KubernetesCollector {
	return &KubernetesCollector{provider: provider, opts: opts}
}

// Collect implements InventoryCollector.
func (c *KubernetesCollector) Collect(ctx context.Context) (*models.ResourceInventory, error) {
	clientset, info, err := c.provider.ClientsetForContext(c.opts.ContextName)
	if err != nil {
		return nil, fmt.Errorf("connect to cluster: %w", err)
	}

	clusterData, err := kube.CollectClusterData(ctx, clientset, info, kube.CollectOptions{
		Namespaces: c.opts.Namespaces,
	})
	if err != nil {
		return nil, fmt.Errorf("collect cluster data: %w", err)
	}

	return convertClusterData(clusterData), nil
}

// convertClusterData maps the provider's cluster inventory onto the
// source-independent ResourceInventory.
func convertClusterData(data *kube.ClusterData) *models.ResourceInventory {
	inv := &models.ResourceInventory{
		Source:          string(AuditTypeKubernetes),
		Resources:       make([]models.NamedResource, 0, len(data.Objects)),
		NamespaceLabels: make(map[string]map[string]string, len(data.Namespaces)),
		Metadata: map[string]any{
			"context": data.ClusterInfo.ContextName,
			"server":  data.ClusterInfo.Server,
		},
	}
	for _, ns := range data.Namespaces {
		inv.NamespaceLabels[ns.Name] = ns.Labels
	}
	for _, o := range data.Objects {
		inv.Resources = append(inv.Resources, models.NamedResource{
			Kind:      o.Kind,
			Name:      o.Name,
			Namespace: o.Namespace,
			Labels:    o.Labels,
			Origin:    data.ClusterInfo.ContextName,
		})
	}
	return inv
}
