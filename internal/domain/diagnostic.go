package domain

import "fmt"

// Kind classifies why a marked function could not be expanded.
type Kind string

const (
	// MalformedInput: the marker is attached to something that cannot
	// become a test (non-function declaration, method, generic function,
	// wrong signature shape, non-Test name).
	MalformedInput Kind = "MalformedInput"
	// AmbiguousParameterCount: the test declares two or more parameters
	// after *testing.T.
	AmbiguousParameterCount Kind = "AmbiguousParameterCount"
	// MissingSetup: a one-parameter test has no matching setup function.
	MissingSetup Kind = "MissingSetup"
	// SetupHasArguments: the located setup function declares parameters.
	SetupHasArguments Kind = "SetupHasArguments"
	// TypeMismatch: the test parameter type differs from the setup return type.
	TypeMismatch Kind = "TypeMismatch"
)

// Diagnostic describes a single expansion failure. Diagnostics are values,
// not errors: one bad function never aborts expansion of its siblings.
type Diagnostic struct {
	Kind      Kind   `json:"kind"`
	File      string `json:"file"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Function  string `json:"function"`
	Message   string `json:"message"`
	SetupFile string `json:"setup_file,omitempty"`
	SetupLine int    `json:"setup_line,omitempty"`
	Resolved  bool   `json:"resolved,omitempty"` // Track if diagnostic is marked as resolved
}

// Position returns the location of the marked function as file:line:column.
func (d Diagnostic) Position() string {
	return fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Position(), d.Kind, d.Message)
}
