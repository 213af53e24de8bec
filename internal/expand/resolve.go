package expand

import (
	"gotestx/internal/domain"
	"gotestx/internal/parser"
)

// DefaultSetupName is the function name looked up when the directive does
// not name a setup function explicitly.
const DefaultSetupName = "setup"

// Resolver locates a function by exact name in some scope. It is an
// interface so the pipeline can be exercised with synthetic scopes instead
// of parsed files; parser.Scope is the production implementation.
type Resolver interface {
	Resolve(name string) (*parser.Setup, bool)
}

// Plan describes how one marked function will be rewritten.
type Plan struct {
	RequiresSetup bool
	Setup         *parser.Setup
	SetupName     string
	ParamName     string
	ParamType     string
}

// resolve decides whether a descriptor needs a setup function and, if so,
// locates it in the scope. A zero-parameter test never triggers a lookup,
// which keeps it drop-in compatible with a plain test function.
func resolve(d *parser.Descriptor, scope Resolver) (*Plan, *domain.Diagnostic) {
	switch {
	case d.ExtraParams == 0:
		return &Plan{}, nil
	case d.ExtraParams > 1:
		dg := diag(domain.AmbiguousParameterCount, d.Pos, d.Name,
			"test function %s declares %d parameters after *testing.T; at most one is supported",
			d.Name, d.ExtraParams)
		return nil, &dg
	}

	if d.Directive.NoSetup {
		dg := diag(domain.MissingSetup, d.Pos, d.Name,
			"test function %s needs a value for parameter %s, but setup resolution is disabled by no_setup",
			d.Name, d.Param.Name)
		return nil, &dg
	}

	name := d.Directive.Setup
	if name == "" {
		name = DefaultSetupName
	}

	s, ok := scope.Resolve(name)
	if !ok {
		dg := diag(domain.MissingSetup, d.Pos, d.Name,
			"test function %s needs a value for parameter %s %s, but no function named %s exists in the same file",
			d.Name, d.Param.Name, d.Param.Type, name)
		return nil, &dg
	}
	if s.Generic {
		dg := diag(domain.MissingSetup, d.Pos, d.Name,
			"setup candidate %s is generic and cannot seed parameter %s of %s",
			name, d.Param.Name, d.Name)
		dg.SetupFile, dg.SetupLine = s.Pos.Filename, s.Pos.Line
		return nil, &dg
	}

	return &Plan{
		RequiresSetup: true,
		Setup:         s,
		SetupName:     name,
		ParamName:     d.Param.Name,
		ParamType:     d.Param.Type,
	}, nil
}
