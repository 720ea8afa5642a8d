package naming

import "fmt"

// Defaults applied by ParseSuggestArgs to omitted trailing arguments.
const (
	DefaultResourceType = "deploy"
	DefaultEnvironment  = "dev"
	DefaultVersion      = "v1.0.0"
)

// SuggestInput is the full set of inputs to Suggester.Suggest. Every field is
// used as given; defaults are resolved earlier by ParseSuggestArgs.
type SuggestInput struct {
	CurrentName  string
	ResourceType string
	Environment  string
	Version      string
}

// ValidationResult is the outcome of a suggestion: the composed candidate and
// whether it matches the grammar. A non-matching candidate is a normal result,
// not an error.
type ValidationResult struct {
	Original       string `json:"original"`
	Canonical      string `json:"canonical"`
	TypeCode       string `json:"type_code"`
	Candidate      string `json:"candidate"`
	MatchesGrammar bool   `json:"matches_grammar"`
}

// Suggester composes candidate names from the canonicaliser, a type registry
// and a validator.
type Suggester struct {
	registry  TypeRegistry
	validator *Validator
}

// NewSuggester returns a Suggester over the given registry and validator.
func NewSuggester(registry TypeRegistry, validator *Validator) *Suggester {
	return &Suggester{registry: registry, validator: validator}
}

// NewDefaultSuggester returns a Suggester over the fixed type table and grammar.
func NewDefaultSuggester() *Suggester {
	return NewSuggester(DefaultTypeRegistry(), DefaultValidator())
}

// Validator returns the validator used to check candidates.
func (s *Suggester) Validator() *Validator { return s.validator }

// Registry returns the type registry used to resolve type codes.
func (s *Suggester) Registry() TypeRegistry { return s.registry }

// Suggest builds "{environment}-{canonical}-{typeCode}-{version}" from in and
// validates it. The candidate is always produced, even when it does not match.
func (s *Suggester) Suggest(in SuggestInput) ValidationResult {
	canonical := Canonicalize(in.CurrentName)
	code := s.registry.Resolve(in.ResourceType)
	candidate := fmt.Sprintf("%s-%s-%s-%s", in.Environment, canonical, code, in.Version)

	return ValidationResult{
		Original:       in.CurrentName,
		Canonical:      canonical,
		TypeCode:       code,
		Candidate:      candidate,
		MatchesGrammar: s.validator.Validate(candidate),
	}
}

// ParseSuggestArgs maps positional arguments
// <current-name> [resource-type] [environment] [version] onto a SuggestInput.
//
// Defaults fill only positions that were omitted entirely. A present but empty
// or invalid argument is kept as given so that the grammar rejects it.
func ParseSuggestArgs(args []string) (SuggestInput, error) {
	switch {
	case len(args) == 0:
		return SuggestInput{}, &MissingInputError{}
	case len(args) > 4:
		return SuggestInput{}, &TooManyArgumentsError{Got: len(args)}
	}

	in := SuggestInput{
		CurrentName:  args[0],
		ResourceType: DefaultResourceType,
		Environment:  DefaultEnvironment,
		Version:      DefaultVersion,
	}
	if len(args) > 1 {
		in.ResourceType = args[1]
	}
	if len(args) > 2 {
		in.Environment = args[2]
	}
	if len(args) > 3 {
		in.Version = args[3]
	}
	return in, nil
}
