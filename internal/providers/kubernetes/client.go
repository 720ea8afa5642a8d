package kubernetes

import (
	k8sclient "k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// KubeClientProvider creates kubernetes clientsets for named kubeconfig contexts.
// Tests inject a fake clientset through it.
type KubeClientProvider interface {
	// ClientsetForContext returns a clientset and the resolved ClusterInfo for
	// the given kubeconfig context. An empty name selects the current context.
	ClientsetForContext(contextName string) (k8sclient.Interface, ClusterInfo, error)
}

// DefaultKubeClientProvider builds real clientsets from a kubeconfig file.
type DefaultKubeClientProvider struct {
	// Kubeconfig is an explicit kubeconfig path. Empty means the standard
	// lookup: every file listed in $KUBECONFIG, else ~/.kube/config.
	Kubeconfig string
}

// NewDefaultKubeClientProvider returns a provider backed by the system kubeconfig.
func NewDefaultKubeClientProvider() *DefaultKubeClientProvider {
	return &DefaultKubeClientProvider{}
}

// NewKubeClientProviderForFile returns a provider reading only path.
func NewKubeClientProviderForFile(path string) *DefaultKubeClientProvider {
	return &DefaultKubeClientProvider{Kubeconfig: path}
}

// ClientsetForContext implements KubeClientProvider.
func (p *DefaultKubeClientProvider) ClientsetForContext(contextName string) (k8sclient.Interface, ClusterInfo, error) {
	return LoadClientset(p.loadingRules(), contextName)
}

func (p *DefaultKubeClientProvider) loadingRules() *clientcmd.ClientConfigLoadingRules {
	if p.Kubeconfig != "" {
		return &clientcmd.ClientConfigLoadingRules{ExplicitPath: p.Kubeconfig}
	}
	return clientcmd.NewDefaultClientConfigLoadingRules()
}
