package expand

import (
	"gotestx/internal/domain"
	"gotestx/internal/parser"
)

// validate checks a located setup function against the test signature.
// Compatibility is exact equality of the written type expressions; no
// numeric widening, no interface satisfaction, no nominal-to-underlying
// unwrapping.
func validate(d *parser.Descriptor, p *Plan) *domain.Diagnostic {
	if !p.RequiresSetup {
		return nil
	}

	s := p.Setup
	if s.Params > 0 {
		dg := diag(domain.SetupHasArguments, d.Pos, d.Name,
			"setup function %s (declared at line %d) must not take arguments, it declares %d",
			s.Name, s.Pos.Line, s.Params)
		dg.SetupFile, dg.SetupLine = s.Pos.Filename, s.Pos.Line
		return &dg
	}

	if len(s.Results) != 1 {
		dg := diag(domain.TypeMismatch, d.Pos, d.Name,
			"setup function %s (declared at line %d) must return exactly one value of type %s, it returns %d values",
			s.Name, s.Pos.Line, p.ParamType, len(s.Results))
		dg.SetupFile, dg.SetupLine = s.Pos.Filename, s.Pos.Line
		return &dg
	}

	if s.Results[0] != p.ParamType {
		dg := diag(domain.TypeMismatch, d.Pos, d.Name,
			"parameter %s of %s has type %s, but setup function %s (declared at line %d) returns %s",
			p.ParamName, d.Name, p.ParamType, s.Name, s.Pos.Line, s.Results[0])
		dg.SetupFile, dg.SetupLine = s.Pos.Filename, s.Pos.Line
		return &dg
	}

	return nil
}
