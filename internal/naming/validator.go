package naming

import (
	"fmt"
	"regexp"
)

// DefaultGrammar is the naming convention every resource name must match:
// environment, canonical name, type code and a semantic version with an
// optional suffix. The environment and type-code sets are closed.
const DefaultGrammar = `^(dev|staging|prod)-[a-z0-9-]+-(deploy|svc|ing|cm|secret)-v\d+\.\d+\.\d+(-[A-Za-z0-9]+)?$`

// Validator checks names against a compiled grammar. Matching is always
// against the whole string.
type Validator struct {
	re *regexp.Regexp
}

// NewValidator compiles pattern into a Validator.
func NewValidator(pattern string) (*Validator, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile naming grammar: %w", err)
	}
	return &Validator{re: re}, nil
}

// DefaultValidator returns a Validator for DefaultGrammar.
func DefaultValidator() *Validator {
	return &Validator{re: regexp.MustCompile(DefaultGrammar)}
}

// Validate reports whether name matches the grammar.
func (v *Validator) Validate(name string) bool {
	return v.re.MatchString(name)
}

// Pattern returns the source text of the grammar.
func (v *Validator) Pattern() string {
	return v.re.String()
}

// Parts splits a grammar-valid name into its environment and type-code
// segments. ok is false when name does not match or the grammar has no
// capture groups for them.
func (v *Validator) Parts(name string) (environment, typeCode string, ok bool) {
	m := v.re.FindStringSubmatch(name)
	if len(m) < 3 {
		return "", "", false
	}
	return m[1], m[2], true
}
