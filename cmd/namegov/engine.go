package main

import (
	"errors"
	"fmt"

	"github.com/pankaj-dahiya-devops/namegov/internal/engine"
	"github.com/pankaj-dahiya-devops/namegov/internal/naming"
	"github.com/pankaj-dahiya-devops/namegov/internal/policy"
	kube "github.com/pankaj-dahiya-devops/namegov/internal/providers/kubernetes"
	namingpack "github.com/pankaj-dahiya-devops/namegov/internal/rulepacks/naming"
	"github.com/pankaj-dahiya-devops/namegov/internal/rules"
)

// newNamingEngine wires the naming rule pack into an engine.
func newNamingEngine(policyCfg *policy.PolicyConfig, environmentLabel string, opts ...engine.Option) *engine.NamingEngine {
	registry := rules.NewDefaultRuleRegistry()
	for _, r := range namingpack.New() {
		registry.Register(r)
	}
	opts = append([]engine.Option{engine.WithEnvironmentLabel(environmentLabel)}, opts...)
	return engine.NewNamingEngine(registry, naming.NewDefaultSuggester(), policyCfg, opts...)
}

// newKubeProvider returns a client provider reading kubeconfig, or the
// standard kubeconfig lookup when it is empty.
func newKubeProvider(kubeconfig string) kube.KubeClientProvider {
	if kubeconfig != "" {
		return kube.NewKubeClientProviderForFile(kubeconfig)
	}
	return kube.NewDefaultKubeClientProvider()
}

// loadPolicy loads the policy at path, or namegov-policy.yaml in the working
// directory when path is empty, and validates it against the rule pack. A
// missing default file yields a nil policy.
func loadPolicy(path string) (*policy.PolicyConfig, error) {
	cfg, err := policy.LoadOptional(path)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, nil
	}
	if errs := policy.Validate(cfg, namingpack.RuleIDs()); len(errs) > 0 {
		return nil, fmt.Errorf("invalid policy: %w", errors.Join(errs...))
	}
	return cfg, nil
}
