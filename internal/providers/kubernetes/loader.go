package kubernetes

import (
	"fmt"
	"os"
	"strings"
	"time"

	k8sclient "k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

const (
	// userAgent identifies namegov in API server audit logs.
	userAgent = "namegov"

	// requestTimeout bounds each list call made by the collector.
	requestTimeout = 30 * time.Second
)

// LoadClientset builds a clientset from the kubeconfig files selected by
// rules, targeting contextName (empty = current context). The returned
// ClusterInfo carries the effective context name and API server URL.
func LoadClientset(rules *clientcmd.ClientConfigLoadingRules, contextName string) (k8sclient.Interface, ClusterInfo, error) {
	overrides := &clientcmd.ConfigOverrides{CurrentContext: contextName}
	cfg := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides)

	rawCfg, err := cfg.RawConfig()
	if err != nil {
		return nil, ClusterInfo{}, fmt.Errorf("load kubeconfig %s: %w", describeRules(rules), err)
	}

	info := ClusterInfo{ContextName: rawCfg.CurrentContext}
	if contextName != "" {
		info.ContextName = contextName
	}
	if info.ContextName == "" {
		return nil, ClusterInfo{}, fmt.Errorf("kubeconfig %s: no current context set", describeRules(rules))
	}
	kctx, ok := rawCfg.Contexts[info.ContextName]
	if !ok {
		return nil, ClusterInfo{}, fmt.Errorf("kubeconfig %s: context %q not found", describeRules(rules), info.ContextName)
	}
	if cluster, ok := rawCfg.Clusters[kctx.Cluster]; ok {
		info.Server = cluster.Server
	}

	restCfg, err := cfg.ClientConfig()
	if err != nil {
		return nil, ClusterInfo{}, fmt.Errorf("build REST config for context %q: %w", info.ContextName, err)
	}
	restCfg.UserAgent = userAgent
	restCfg.Timeout = requestTimeout

	clientset, err := k8sclient.NewForConfig(restCfg)
	if err != nil {
		return nil, ClusterInfo{}, fmt.Errorf("build clientset for context %q: %w", info.ContextName, err)
	}
	return clientset, info, nil
}

// describeRules names the kubeconfig file(s) rules read, for error messages.
func describeRules(rules *clientcmd.ClientConfigLoadingRules) string {
	if rules.ExplicitPath != "" {
		return fmt.Sprintf("%q", rules.ExplicitPath)
	}
	if len(rules.Precedence) > 0 {
		return fmt.Sprintf("%q", strings.Join(rules.Precedence, string(os.PathListSeparator)))
	}
	return "(default)"
}
