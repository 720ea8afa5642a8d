package kubernetes

import (
	"context"
	"fmt"
	"sort"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	k8sclient "k8s.io/client-go/kubernetes"
)

// systemNamespaces are never collected: their object names are owned by the
// control plane, not by application teams.
var systemNamespaces = map[string]struct{}{
	"kube-system":     {},
	"kube-public":     {},
	"kube-node-lease": {},
}

// managedSecretTypes are Secret types generated by controllers or tooling.
var managedSecretTypes = map[corev1.SecretType]struct{}{
	corev1.SecretTypeServiceAccountToken: {},
	"helm.sh/release.v1":                 {},
}

// rootCAConfigMap is published into every namespace by kube-controller-manager.
const rootCAConfigMap = "kube-root-ca.crt"

// CollectClusterData collects namespaces and the governed objects they own
// (Deployments, Services, Ingresses, ConfigMaps, Secrets) and attaches the
// resolved ClusterInfo to the result.
//
// The clientset parameter is an interface so tests can inject a fake clientset.
func CollectClusterData(ctx context.Context, clientset k8sclient.Interface, info ClusterInfo, opts CollectOptions) (*ClusterData, error) {
	namespaces, err := collectNamespaces(ctx, clientset, opts.Namespaces)
	if err != nil {
		return nil, fmt.Errorf("collect namespaces: %w", err)
	}

	var objects []ObjectInfo
	for _, ns := range namespaces {
		nsObjects, err := collectNamespaceObjects(ctx, clientset, ns.Name)
		if err != nil {
			return nil, fmt.Errorf("collect objects in namespace %q: %w", ns.Name, err)
		}
		objects = append(objects, nsObjects...)
	}

	return &ClusterData{
		ClusterInfo: info,
		Namespaces:  namespaces,
		Objects:     objects,
	}, nil
}

// collectNamespaces lists namespaces and converts them to NamespaceInfo.
// When only is non-empty, namespaces outside it are skipped; system
// namespaces are always skipped.
func collectNamespaces(ctx context.Context, clientset k8sclient.Interface, only []string) ([]NamespaceInfo, error) {
	nsList, err := clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, err
	}

	var wanted map[string]struct{}
	if len(only) > 0 {
		wanted = make(map[string]struct{}, len(only))
		for _, n := range only {
			wanted[n] = struct{}{}
		}
	}

	namespaces := make([]NamespaceInfo, 0, len(nsList.Items))
	for _, ns := range nsList.Items {
		if _, skip := systemNamespaces[ns.Name]; skip {
			continue
		}
		if wanted != nil {
			if _, ok := wanted[ns.Name]; !ok {
				continue
			}
		}
		namespaces = append(namespaces, NamespaceInfo{
			Name:   ns.Name,
			Labels: copyLabels(ns.Labels),
		})
	}
	sort.Slice(namespaces, func(i, j int) bool { return namespaces[i].Name < namespaces[j].Name })
	return namespaces, nil
}

// collectNamespaceObjects lists every governed kind in one namespace, in
// Deployment, Service, Ingress, ConfigMap, Secret order and by name within
// each kind.
func collectNamespaceObjects(ctx context.Context, clientset k8sclient.Interface, namespace string) ([]ObjectInfo, error) {
	var objects []ObjectInfo
	add := func(kind string, meta metav1.ObjectMeta) {
		objects = append(objects, ObjectInfo{
			Kind:      kind,
			Name:      meta.Name,
			Namespace: namespace,
			Labels:    copyLabels(meta.Labels),
		})
	}

	deployments, err := clientset.AppsV1().Deployments(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list deployments: %w", err)
	}
	for _, d := range deployments.Items {
		add("Deployment", d.ObjectMeta)
	}

	services, err := clientset.CoreV1().Services(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	for _, s := range services.Items {
		if namespace == metav1.NamespaceDefault && s.Name == "kubernetes" {
			continue
		}
		add("Service", s.ObjectMeta)
	}

	ingresses, err := clientset.NetworkingV1().Ingresses(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list ingresses: %w", err)
	}
	for _, i := range ingresses.Items {
		add("Ingress", i.ObjectMeta)
	}

	configMaps, err := clientset.CoreV1().ConfigMaps(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list configmaps: %w", err)
	}
	for _, cm := range configMaps.Items {
		if cm.Name == rootCAConfigMap {
			continue
		}
		add("ConfigMap", cm.ObjectMeta)
	}

	secrets, err := clientset.CoreV1().Secrets(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list secrets: %w", err)
	}
	for _, s := range secrets.Items {
		if _, managed := managedSecretTypes[s.Type]; managed {
			continue
		}
		add("Secret", s.ObjectMeta)
	}

	sort.SliceStable(objects, func(i, j int) bool {
		if objects[i].Kind != objects[j].Kind {
			return kindOrder[objects[i].Kind] < kindOrder[objects[j].Kind]
		}
		return objects[i].Name < objects[j].Name
	})
	return objects, nil
}

var kindOrder = map[string]int{
	"Deployment": 0,
	"Service":    1,
	"Ingress":    2,
	"ConfigMap":  3,
	"Secret":     4,
}

func copyLabels(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
