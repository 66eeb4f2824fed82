package trace

import "fmt"

// Field scopes for ParseError.
const (
	ScopeRun  = "run"
	ScopeStep = "step"
)

// ParseError reports the first missing required field found while parsing a
// run log. Parsing stops at the first offense; there is no partial-parse
// tolerance. Match with errors.As.
type ParseError struct {
	// Scope is "run" or "step", depending on where the field was expected.
	Scope string
	// Field is the name of the missing field.
	Field string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("missing required %s field: %s", e.Scope, e.Field)
}

func missingRunField(field string) *ParseError {
	return &ParseError{Scope: ScopeRun, Field: field}
}

func missingStepField(field string) *ParseError {
	return &ParseError{Scope: ScopeStep, Field: field}
}
