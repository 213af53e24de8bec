package expand

import (
	"bytes"

	"gotestx/internal/domain"
	"gotestx/internal/parser"
)

// Expander rewrites testx source files into runner-compatible test files.
// Each file is expanded independently and deterministically; an Expander
// carries no state between calls and is safe for concurrent use.
type Expander struct{}

// New creates a new Expander
func New() *Expander {
	return &Expander{}
}

// Result is the outcome of expanding one source file held in memory.
type Result struct {
	Output      []byte // generated file content, nil unless the file is clean
	Marked      int
	Expanded    int
	Diagnostics []domain.Diagnostic
}

// Source runs the full pipeline over one testx source file: parse the
// declarations, resolve and validate a plan per marked function, and
// synthesize the replacement definitions. A failure on one function is
// recorded as a diagnostic and never blocks its siblings; the generated
// output is produced only when every marked function expanded, since a
// partial file could reference imports its failed functions no longer use.
func (e *Expander) Source(path string, src []byte) (*Result, error) {
	f, err := parser.ParseSource(path, src)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	var buf bytes.Buffer
	writeFileHeader(&buf, f)

	for _, decl := range f.Ast.Decls {
		m := f.MarkedFor(decl)
		if m == nil {
			writeVerbatim(&buf, f, decl)
			continue
		}

		res.Marked++
		if m.Desc == nil {
			res.Diagnostics = append(res.Diagnostics,
				diag(domain.MalformedInput, m.Pos, m.Name, "%s", m.Reason))
			writeVerbatim(&buf, f, decl)
			continue
		}

		plan, dg := resolve(m.Desc, f.Scope)
		if dg == nil {
			dg = validate(m.Desc, plan)
		}
		if dg != nil {
			res.Diagnostics = append(res.Diagnostics, *dg)
			continue
		}

		synthesize(&buf, f, m.Desc, plan)
		res.Expanded++
	}

	if len(res.Diagnostics) == 0 && res.Expanded > 0 {
		out := bytes.TrimRight(buf.Bytes(), "\n")
		res.Output = append(out, '\n')
	}
	return res, nil
}
