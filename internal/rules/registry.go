package rules

import (
	"fmt"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
	"github.com/pankaj-dahiya-devops/namegov/internal/policy"
)

// DefaultRuleRegistry keeps rules in registration order and evaluates them
// sequentially. Registering the same ID twice panics.
type DefaultRuleRegistry struct {
	rules []Rule
	byID  map[string]Rule
}

// NewDefaultRuleRegistry returns an empty registry.
func NewDefaultRuleRegistry() *DefaultRuleRegistry {
	return &DefaultRuleRegistry{byID: make(map[string]Rule)}
}

// Register adds rule. It panics on a duplicate ID.
func (r *DefaultRuleRegistry) Register(rule Rule) {
	id := rule.ID()
	if _, dup := r.byID[id]; dup {
		panic(fmt.Sprintf("duplicate rule ID: %q", id))
	}
	r.rules = append(r.rules, rule)
	r.byID[id] = rule
}

// All returns the registered rules in registration order.
func (r *DefaultRuleRegistry) All() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Get returns the rule registered under id.
func (r *DefaultRuleRegistry) Get(id string) (Rule, bool) {
	rule, ok := r.byID[id]
	return rule, ok
}

// EvaluateAll runs every rule the policy in ctx leaves enabled and
// concatenates their findings in registration order.
func (r *DefaultRuleRegistry) EvaluateAll(ctx RuleContext) []models.Finding {
	var findings []models.Finding
	for _, rule := range r.rules {
		if !policy.RuleEnabled(rule.ID(), ctx.Policy) {
			continue
		}
		findings = append(findings, rule.Evaluate(ctx)...)
	}
	return findings
}
