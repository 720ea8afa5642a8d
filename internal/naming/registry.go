package naming

import "strings"

// Resource type codes used as the type segment of a compliant name.
const (
	CodeDeployment = "deploy"
	CodeService    = "svc"
	CodeIngress    = "ing"
	CodeConfigMap  = "cm"
	CodeSecret     = "secret"
)

// TypeRegistry maps human resource-type names to their short type codes.
// The zero value has no entries and resolves every input to itself.
type TypeRegistry struct {
	codes map[string]string
}

// NewTypeRegistry returns a registry over table. Keys are matched
// case-insensitively; the table is copied so later changes to it have no
// effect on the registry.
func NewTypeRegistry(table map[string]string) TypeRegistry {
	codes := make(map[string]string, len(table))
	for k, v := range table {
		codes[strings.ToLower(k)] = v
	}
	return TypeRegistry{codes: codes}
}

// DefaultTypeRegistry returns the registry for the fixed resource-type table.
func DefaultTypeRegistry() TypeRegistry {
	return NewTypeRegistry(map[string]string{
		"deployment": CodeDeployment,
		"service":    CodeService,
		"ingress":    CodeIngress,
		"configmap":  CodeConfigMap,
		"secret":     CodeSecret,
	})
}

// Resolve returns the type code for resourceType. Inputs that are not in the
// table resolve to the lower-cased input unchanged, so arbitrary text flows
// through to the candidate name and is rejected later by the grammar.
func (r TypeRegistry) Resolve(resourceType string) string {
	key := strings.ToLower(resourceType)
	if code, ok := r.codes[key]; ok {
		return code
	}
	return key
}

// Known reports whether resourceType has an entry in the table.
func (r TypeRegistry) Known(resourceType string) bool {
	_, ok := r.codes[strings.ToLower(resourceType)]
	return ok
}
