package expand

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"

	"gotestx/internal/parser"
)

// Header is the first line of every generated file. The clean command
// refuses to delete files that do not start with it.
const Header = "// Code generated by gotestx. DO NOT EDIT."

// writeFileHeader emits the generated-code header and the package clause.
// The build tag of the source file is intentionally not carried over: the
// generated file must be visible to the test runner.
func writeFileHeader(buf *bytes.Buffer, f *parser.File) {
	fmt.Fprintf(buf, "%s\n// Source: %s\n\npackage %s\n\n", Header, filepath.Base(f.Path), f.Package)
}

// writeVerbatim copies an unmarked declaration, including its doc comment,
// with a line directive anchoring it to the source file.
func writeVerbatim(buf *bytes.Buffer, f *parser.File, decl ast.Decl) {
	start := decl.Pos()
	if doc := declDoc(decl); doc != nil {
		start = doc.Pos()
	}
	fmt.Fprintf(buf, "//line %s:%d\n", filepath.Base(f.Path), f.Fset.Position(start).Line)
	buf.Write(declText(f, start, decl))
	buf.WriteString("\n\n")
}

// synthesize emits the replacement definition for one validated plan.
//
// Without setup the original definition is spliced unchanged, so a
// zero-parameter test behaves bit for bit like a hand-written one. With
// setup, the emitted body calls the setup function, binds its result to the
// original parameter name, and splices the original body verbatim after the
// binding. Line directives keep failure output pointing at the author's file.
func synthesize(buf *bytes.Buffer, f *parser.File, d *parser.Descriptor, p *Plan) {
	base := filepath.Base(f.Path)
	for _, line := range d.Doc {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	fmt.Fprintf(buf, "//line %s:%d\n", base, d.Pos.Line)

	if !p.RequiresSetup {
		buf.Write(declText(f, d.Decl.Pos(), d.Decl))
		buf.WriteString("\n\n")
		return
	}

	fmt.Fprintf(buf, "func %s(%s *testing.T) {\n", d.Name, d.TName)
	if p.ParamName == "_" {
		// The author discards the value but still wants setup's effects.
		fmt.Fprintf(buf, "\t_ = %s()\n", p.SetupName)
	} else {
		fmt.Fprintf(buf, "\t%s := %s()\n", p.ParamName, p.SetupName)
		fmt.Fprintf(buf, "\t_ = %s\n", p.ParamName)
	}
	writeBodyInterior(buf, f, d.Decl)
	buf.WriteString("}\n\n")
}

// writeBodyInterior splices the statements between the original body braces
// without touching their text, preceded by a line directive so every spliced
// line keeps its original number.
func writeBodyInterior(buf *bytes.Buffer, f *parser.File, decl *ast.FuncDecl) {
	base := filepath.Base(f.Path)
	lbrace := f.Fset.Position(decl.Body.Lbrace)
	lo := f.Fset.Position(decl.Body.Lbrace).Offset + 1
	hi := f.Fset.Position(decl.Body.Rbrace).Offset
	interior := f.Src[lo:hi]

	idx := bytes.IndexByte(interior, '\n')
	if idx < 0 {
		// Single-line body. An inline directive still maps it back.
		if stmt := bytes.TrimSpace(interior); len(stmt) > 0 {
			fmt.Fprintf(buf, "\t/*line %s:%d*/ %s\n", base, lbrace.Line, stmt)
		}
		return
	}

	// Anything on the opening-brace line itself is spliced first, with an
	// inline directive mapping it back to that line.
	if first := bytes.TrimSpace(interior[:idx]); len(first) > 0 {
		fmt.Fprintf(buf, "\t/*line %s:%d*/ %s\n", base, lbrace.Line, first)
	}

	rest := interior[idx+1:]
	fmt.Fprintf(buf, "//line %s:%d\n", base, lbrace.Line+1)
	buf.Write(rest)
	if len(rest) > 0 && rest[len(rest)-1] != '\n' {
		buf.WriteByte('\n')
	}
}

func declText(f *parser.File, start token.Pos, decl ast.Decl) []byte {
	lo := f.Fset.Position(start).Offset
	hi := f.Fset.Position(decl.End()).Offset
	return f.Src[lo:hi]
}

func declDoc(decl ast.Decl) *ast.CommentGroup {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		return d.Doc
	case *ast.GenDecl:
		return d.Doc
	}
	return nil
}
