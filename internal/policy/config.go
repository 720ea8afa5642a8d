package policy

// DefaultPolicyFile is the policy file name looked up in the working
// directory when no --policy flag is given.
const DefaultPolicyFile = "namegov-policy.yaml"

// DomainNaming is the only audit domain: naming-convention findings.
const DomainNaming = "naming"

type PolicyConfig struct {
	Version     int                          `yaml:"version"`
	Domains     map[string]DomainConfig      `yaml:"domains"`
	Rules       map[string]RuleConfig        `yaml:"rules"`
	Enforcement map[string]EnforcementConfig `yaml:"enforcement"`
}

type DomainConfig struct {
	Enabled bool `yaml:"enabled"`
	// MinSeverity drops findings below this level. Empty keeps everything.
	MinSeverity string `yaml:"min_severity,omitempty"`
}

type RuleConfig struct {
	Enabled  *bool              `yaml:"enabled,omitempty"`
	Severity string             `yaml:"severity,omitempty"`
	Params   map[string]float64 `yaml:"params,omitempty"`
}

type EnforcementConfig struct {
	FailOnSeverity string `yaml:"fail_on_severity"`
}
