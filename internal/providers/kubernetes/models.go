package kubernetes

// ClusterInfo identifies a Kubernetes cluster and the kubeconfig context used
// to connect to it.
type ClusterInfo struct {
	// ContextName is the kubeconfig context name used to connect.
	ContextName string

	// Server is the Kubernetes API server URL resolved from the kubeconfig.
	Server string
}

// NamespaceInfo holds basic namespace metadata.
type NamespaceInfo struct {
	Name string

	// Labels is a copy of the namespace's label map, used to resolve the
	// environment a namespace belongs to.
	Labels map[string]string
}

// ObjectInfo holds the naming-relevant metadata of one governed object.
type ObjectInfo struct {
	// Kind is the Kubernetes kind (e.g. "Deployment", "ConfigMap").
	Kind string

	Name string

	// Namespace is the Kubernetes namespace that owns this object.
	Namespace string

	// Labels is a copy of the object's label map.
	Labels map[string]string
}

// CollectOptions narrows a collection run.
type CollectOptions struct {
	// Namespaces restricts collection to the listed namespaces. Empty means
	// every namespace except the system ones.
	Namespaces []string
}

// ClusterData is the inventory collected from a single Kubernetes cluster.
type ClusterData struct {
	ClusterInfo ClusterInfo
	Namespaces  []NamespaceInfo
	Objects     []ObjectInfo
}
