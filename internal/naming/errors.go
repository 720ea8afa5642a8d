package naming

import "fmt"

// SuggestUsage is the usage line for the positional suggest arguments.
const SuggestUsage = "<current-name> [resource-type] [environment] [version]"

// MissingInputError is returned when no current name was supplied. It is a
// precondition failure, distinct from a candidate that fails the grammar.
type MissingInputError struct{}

func (e *MissingInputError) Error() string {
	return "missing input: a current name is required (usage: " + SuggestUsage + ")"
}

// TooManyArgumentsError is returned when more positional arguments were
// supplied than the suggest operation accepts.
type TooManyArgumentsError struct {
	Got int
}

func (e *TooManyArgumentsError) Error() string {
	return fmt.Sprintf("too many arguments: got %d, accepts at most 4 (usage: %s)", e.Got, SuggestUsage)
}
