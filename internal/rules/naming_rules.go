package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
	"github.com/pankaj-dahiya-devops/namegov/internal/naming"
	"github.com/pankaj-dahiya-devops/namegov/internal/policy"
)

// newFinding fills the fields shared by every naming finding.
func newFinding(ruleID string, ctx RuleContext, r models.NamedResource, sev models.Severity) models.Finding {
	source := ""
	if ctx.Inventory != nil {
		source = ctx.Inventory.Source
	}
	f := models.Finding{
		ID:           fmt.Sprintf("%s:%s", ruleID, r.ID()),
		RuleID:       ruleID,
		ResourceID:   r.ID(),
		ResourceType: models.ResourceTypeForKind(r.Kind),
		Namespace:    r.Namespace,
		Source:       source,
		Severity:     sev,
		DetectedAt:   time.Now().UTC(),
		Metadata:     map[string]any{"name": r.Name},
	}
	if r.Origin != "" {
		f.Metadata["origin"] = r.Origin
	}
	return f
}

func resources(ctx RuleContext) []models.NamedResource {
	if ctx.Inventory == nil {
		return nil
	}
	return ctx.Inventory.Resources
}

// ── K8S_NAME_POLICY_VIOLATION ────────────────────────────────────────────────

// K8SNamePolicyViolationRule fires for each resource whose name does not match
// the naming grammar. The recommendation carries a compliant replacement
// built from the resource kind, its environment and its version label.
type K8SNamePolicyViolationRule struct{}

func (r K8SNamePolicyViolationRule) ID() string   { return "K8S_NAME_POLICY_VIOLATION" }
func (r K8SNamePolicyViolationRule) Name() string { return "Resource Name Violates Naming Convention" }

func (r K8SNamePolicyViolationRule) Evaluate(ctx RuleContext) []models.Finding {
	s := ctx.suggester()
	var findings []models.Finding
	for _, res := range resources(ctx) {
		if s.Validator().Validate(res.Name) {
			continue
		}
		suggestion := s.Suggest(suggestInputFor(ctx, res))

		f := newFinding(r.ID(), ctx, res, models.SeverityHigh)
		f.Explanation = fmt.Sprintf("%s %q does not match the naming convention %s.", res.Kind, res.Name, s.Validator().Pattern())
		if suggestion.MatchesGrammar {
			f.Recommendation = fmt.Sprintf("Rename to %q.", suggestion.Candidate)
		} else {
			f.Recommendation = fmt.Sprintf(
				"Rename following {environment}-{name}-{type}-{version}; the derived candidate %q is itself invalid, check the environment and version labels.",
				suggestion.Candidate,
			)
		}
		f.Metadata["suggested_name"] = suggestion.Candidate
		f.Metadata["suggestion_valid"] = suggestion.MatchesGrammar
		findings = append(findings, f)
	}
	return findings
}

// suggestInputFor derives suggest arguments from a resource: its kind as the
// resource type, the namespace environment and the version label, falling
// back to the suggest defaults.
func suggestInputFor(ctx RuleContext, res models.NamedResource) naming.SuggestInput {
	in := naming.SuggestInput{
		CurrentName:  res.Name,
		ResourceType: res.Kind,
		Environment:  ctx.environmentOf(res),
		Version:      res.Labels[VersionLabel],
	}
	if in.Environment == "" {
		in.Environment = naming.DefaultEnvironment
	}
	switch {
	case in.Version == "":
		in.Version = naming.DefaultVersion
	case !strings.HasPrefix(in.Version, "v"):
		in.Version = "v" + in.Version
	}
	return in
}

// ── K8S_NAME_TYPE_MISMATCH ───────────────────────────────────────────────────

// K8SNameTypeMismatchRule fires when a grammar-valid name carries a type code
// that does not belong to the resource's kind (e.g. a Service named *-deploy-*).
type K8SNameTypeMismatchRule struct{}

func (r K8SNameTypeMismatchRule) ID() string   { return "K8S_NAME_TYPE_MISMATCH" }
func (r K8SNameTypeMismatchRule) Name() string { return "Resource Name Type Code Mismatch" }

func (r K8SNameTypeMismatchRule) Evaluate(ctx RuleContext) []models.Finding {
	s := ctx.suggester()
	var findings []models.Finding
	for _, res := range resources(ctx) {
		_, code, ok := s.Validator().Parts(res.Name)
		if !ok {
			continue
		}
		want := s.Registry().Resolve(res.Kind)
		if code == want {
			continue
		}
		f := newFinding(r.ID(), ctx, res, models.SeverityMedium)
		f.Explanation = fmt.Sprintf("%s %q carries type code %q; %s resources use %q.", res.Kind, res.Name, code, res.Kind, want)
		f.Recommendation = fmt.Sprintf("Replace the %q segment with %q.", code, want)
		f.Metadata["type_code"] = code
		f.Metadata["expected_type_code"] = want
		findings = append(findings, f)
	}
	return findings
}

// ── K8S_NAME_ENV_MISMATCH ────────────────────────────────────────────────────

// K8SNameEnvMismatchRule fires when a grammar-valid name's environment prefix
// differs from the environment declared on its namespace.
type K8SNameEnvMismatchRule struct{}

func (r K8SNameEnvMismatchRule) ID() string   { return "K8S_NAME_ENV_MISMATCH" }
func (r K8SNameEnvMismatchRule) Name() string { return "Resource Name Environment Mismatch" }

func (r K8SNameEnvMismatchRule) Evaluate(ctx RuleContext) []models.Finding {
	s := ctx.suggester()
	var findings []models.Finding
	for _, res := range resources(ctx) {
		env, _, ok := s.Validator().Parts(res.Name)
		if !ok {
			continue
		}
		want := ctx.environmentOf(res)
		if want == "" || strings.EqualFold(env, want) {
			continue
		}
		f := newFinding(r.ID(), ctx, res, models.SeverityMedium)
		f.Explanation = fmt.Sprintf("%s %q is prefixed %q but its namespace %q is labelled %q.", res.Kind, res.Name, env, res.Namespace, want)
		f.Recommendation = fmt.Sprintf("Rename with the %q prefix or move the resource to a %s namespace.", want, env)
		f.Metadata["environment"] = env
		f.Metadata["expected_environment"] = want
		findings = append(findings, f)
	}
	return findings
}

// ── K8S_NAME_TOO_LONG ────────────────────────────────────────────────────────

// defaultMaxNameLength is the DNS-1123 label limit most resource names must
// also satisfy.
const defaultMaxNameLength = 63

// K8SNameTooLongRule fires for each resource name longer than max_length
// (policy param, default 63).
type K8SNameTooLongRule struct{}

func (r K8SNameTooLongRule) ID() string   { return "K8S_NAME_TOO_LONG" }
func (r K8SNameTooLongRule) Name() string { return "Resource Name Exceeds Length Limit" }

func (r K8SNameTooLongRule) Evaluate(ctx RuleContext) []models.Finding {
	limit := policy.IntParam(r.ID(), "max_length", defaultMaxNameLength, ctx.Policy)
	var findings []models.Finding
	for _, res := range resources(ctx) {
		if len(res.Name) <= limit {
			continue
		}
		f := newFinding(r.ID(), ctx, res, models.SeverityLow)
		f.Explanation = fmt.Sprintf("%s name is %d characters long (limit: %d).", res.Kind, len(res.Name), limit)
		f.Recommendation = "Shorten the name segment between the environment and the type code."
		f.Metadata["length"] = len(res.Name)
		f.Metadata["max_length"] = limit
		findings = append(findings, f)
	}
	return findings
}
