package rules

import (
	"github.com/pankaj-dahiya-devops/namegov/internal/models"
	"github.com/pankaj-dahiya-devops/namegov/internal/naming"
	"github.com/pankaj-dahiya-devops/namegov/internal/policy"
)

// DefaultEnvironmentLabel is the namespace label that names the environment
// ("dev", "staging", "prod") a namespace belongs to.
const DefaultEnvironmentLabel = "environment"

// VersionLabel is the well-known label carrying an application's version.
const VersionLabel = "app.kubernetes.io/version"

// RuleContext carries the collected inventory for one audit run.
// It is the sole input to Rule.Evaluate and must contain everything a rule
// needs; rules must never make network calls or read external state.
type RuleContext struct {
	// Inventory holds the governed resources and their namespace labels.
	Inventory *models.ResourceInventory

	// Suggester builds compliant replacement names and exposes the grammar
	// validator and type registry. Nil means the built-in convention.
	Suggester *naming.Suggester

	// EnvironmentLabel is the label key read from namespaces (then from the
	// resource itself) to find the expected environment. Empty means
	// DefaultEnvironmentLabel.
	EnvironmentLabel string

	// Policy holds the active PolicyConfig for threshold overrides. May be nil
	// when no policy file is loaded; rules must treat nil as "use defaults".
	Policy *policy.PolicyConfig
}

func (c RuleContext) suggester() *naming.Suggester {
	if c.Suggester == nil {
		return naming.NewDefaultSuggester()
	}
	return c.Suggester
}

// environmentOf returns the environment a resource is expected to carry, or
// "" when neither its namespace nor the resource declares one.
func (c RuleContext) environmentOf(r models.NamedResource) string {
	key := c.EnvironmentLabel
	if key == "" {
		key = DefaultEnvironmentLabel
	}
	if c.Inventory != nil {
		if env := c.Inventory.NamespaceLabels[r.Namespace][key]; env != "" {
			return env
		}
	}
	return r.Labels[key]
}

// Rule is a single deterministic naming rule.
// Rules must be stateless and safe to call concurrently.
type Rule interface {
	// ID returns the unique, stable identifier for this rule (e.g. "K8S_NAME_TOO_LONG").
	ID() string

	// Name returns a short human-readable rule name.
	Name() string

	// Evaluate inspects the provided context and returns zero or more findings.
	// An empty slice means no issue was detected.
	Evaluate(ctx RuleContext) []models.Finding
}

// RuleRegistry manages the set of active rules and drives evaluation.
type RuleRegistry interface {
	// Register adds a rule to the registry. Panics on duplicate ID.
	Register(rule Rule)

	// All returns all registered rules in registration order.
	All() []Rule

	// Get looks a rule up by ID.
	Get(id string) (Rule, bool)

	// EvaluateAll runs every enabled rule against ctx and merges results.
	EvaluateAll(ctx RuleContext) []models.Finding
}
