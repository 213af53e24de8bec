package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Param is the single author-declared parameter of a marked function,
// the one that will be seeded by the setup function.
type Param struct {
	Name string
	Type string // written type expression, ExprString-normalized
}

// Descriptor is the normalized description of one marker-annotated function.
type Descriptor struct {
	Name        string
	Exported    bool
	Directive   Directive
	TName       string   // name of the *testing.T parameter as written ("_" if unnamed)
	Param       *Param   // parameter after *testing.T, nil if none
	ExtraParams int      // number of parameters after *testing.T
	Doc         []string // doc comment lines with the directive removed
	Decl        *ast.FuncDecl
	Pos         token.Position // position of the func keyword
}

// Marked is one occurrence of the marker directive in a file. When the
// directive is attached to something that cannot be expanded, Desc is nil
// and Reason explains why.
type Marked struct {
	Desc   *Descriptor
	Name   string
	Reason string
	Pos    token.Position
}

// Setup describes a candidate setup function found in the file scope.
type Setup struct {
	Name    string
	Params  int      // declared parameter count
	Results []string // written result types, ExprString-normalized
	Generic bool
	Pos     token.Position
}

// Scope holds the sibling top-level functions of one file. Marked functions
// and methods are not part of the scope; only plain functions can act as
// setup routines.
type Scope struct {
	funcs map[string]*Setup
}

func newScope() *Scope {
	return &Scope{funcs: make(map[string]*Setup)}
}

// Resolve looks up a function by exact name. Only this file's top-level
// functions are visible; there is no fallback to other files and no fuzzy
// matching.
func (s *Scope) Resolve(name string) (*Setup, bool) {
	f, ok := s.funcs[name]
	return f, ok
}

func (s *Scope) add(fset *token.FileSet, d *ast.FuncDecl) {
	s.funcs[d.Name.Name] = &Setup{
		Name:    d.Name.Name,
		Params:  countParams(d.Type.Params),
		Results: resultTypes(d.Type.Results),
		Generic: d.Type.TypeParams != nil && len(d.Type.TypeParams.List) > 0,
		Pos:     fset.Position(d.Pos()),
	}
}

// File is the parsed form of one testx source file.
type File struct {
	Path    string
	Package string
	Src     []byte
	Fset    *token.FileSet
	Ast     *ast.File
	Scope   *Scope

	marked map[ast.Decl]*Marked
	order  []*Marked
}

// MarkedFor returns the marker record for a declaration, or nil if the
// declaration is unmarked.
func (f *File) MarkedFor(d ast.Decl) *Marked {
	return f.marked[d]
}

// Marked returns all marker occurrences in declaration order.
func (f *File) Marked() []*Marked {
	return f.order
}

// MarkedNames returns the names of all marked declarations in order.
func (f *File) MarkedNames() []string {
	names := make([]string, 0, len(f.order))
	for _, m := range f.order {
		names = append(names, m.Name)
	}
	return names
}

// Parse reads and parses a testx source file from disk.
func Parse(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseSource(path, src)
}

// ParseSource parses testx source held in memory. It returns an error only
// for syntactically invalid Go; everything about the marker shape itself is
// reported per declaration through Marked records.
func ParseSource(filename string, src []byte) (*File, error) {
	fset := token.NewFileSet()
	astFile, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	f := &File{
		Path:    filename,
		Package: astFile.Name.Name,
		Src:     src,
		Fset:    fset,
		Ast:     astFile,
		Scope:   newScope(),
		marked:  make(map[ast.Decl]*Marked),
	}

	for _, decl := range astFile.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			dir, found, derr := directiveOf(d.Doc)
			if !found {
				if d.Recv == nil {
					f.Scope.add(fset, d)
				}
				continue
			}
			f.addMarkedFunc(d, dir, derr)
		case *ast.GenDecl:
			if _, found, _ := directiveOf(d.Doc); found {
				f.addMarked(decl, &Marked{
					Name:   d.Tok.String(),
					Reason: "testx directive attached to a non-function declaration",
					Pos:    fset.Position(d.Pos()),
				})
				continue
			}
			for _, spec := range d.Specs {
				if doc := specDoc(spec); doc != nil {
					if _, found, _ := directiveOf(doc); found {
						f.addMarked(decl, &Marked{
							Name:   d.Tok.String(),
							Reason: "testx directive attached to a non-function declaration",
							Pos:    fset.Position(spec.Pos()),
						})
						break
					}
				}
			}
		}
	}

	return f, nil
}

func (f *File) addMarked(decl ast.Decl, m *Marked) {
	f.marked[decl] = m
	f.order = append(f.order, m)
}

func (f *File) addMarkedFunc(d *ast.FuncDecl, dir Directive, derr error) {
	pos := f.Fset.Position(d.Pos())
	m := &Marked{Name: d.Name.Name, Pos: pos}
	f.addMarked(d, m)

	if derr != nil {
		m.Reason = fmt.Sprintf("invalid testx directive: %v", derr)
		return
	}
	if reason := testShapeProblem(d); reason != "" {
		m.Reason = reason
		return
	}

	params := flattenParams(d.Type.Params)
	tname := params[0].name
	if tname == "" {
		tname = "_"
	}

	desc := &Descriptor{
		Name:        d.Name.Name,
		Exported:    ast.IsExported(d.Name.Name),
		Directive:   dir,
		TName:       tname,
		ExtraParams: len(params) - 1,
		Doc:         docLines(d.Doc),
		Decl:        d,
		Pos:         pos,
	}
	if desc.ExtraParams >= 1 {
		desc.Param = &Param{Name: params[1].name, Type: params[1].typ}
	}
	if desc.ExtraParams == 1 && desc.Param.Name == "" {
		m.Reason = "setup parameter must be named"
		return
	}
	m.Desc = desc
}

// testShapeProblem checks whether a marked function can become a test the
// runner discovers: a plain, non-generic, Test-named function whose first
// parameter is *testing.T and which returns nothing.
func testShapeProblem(d *ast.FuncDecl) string {
	if d.Recv != nil {
		return "testx directive attached to a method"
	}
	if d.Type.TypeParams != nil && len(d.Type.TypeParams.List) > 0 {
		return "testx directive attached to a generic function"
	}
	if d.Body == nil {
		return "marked function has no body"
	}
	if !isTestName(d.Name.Name) {
		return fmt.Sprintf("function %s cannot be discovered as a test: name must have the form TestXxx", d.Name.Name)
	}
	if d.Type.Results != nil && len(d.Type.Results.List) > 0 {
		return fmt.Sprintf("test function %s must not return values", d.Name.Name)
	}
	params := flattenParams(d.Type.Params)
	if len(params) == 0 || params[0].typ != "*testing.T" {
		return fmt.Sprintf("first parameter of %s must be *testing.T", d.Name.Name)
	}
	return ""
}

// isTestName mirrors the runner's discovery rule: the name starts with
// "Test" and the next character is not a lowercase letter.
func isTestName(name string) bool {
	if !strings.HasPrefix(name, "Test") {
		return false
	}
	if len(name) == len("Test") {
		return true
	}
	r, _ := utf8.DecodeRuneInString(name[len("Test"):])
	return !unicode.IsLower(r)
}

type flatParam struct {
	name string
	typ  string
}

// flattenParams expands grouped parameters (a, b int) into one entry per name.
func flattenParams(fields *ast.FieldList) []flatParam {
	if fields == nil {
		return nil
	}
	var out []flatParam
	for _, field := range fields.List {
		typ := types.ExprString(field.Type)
		if len(field.Names) == 0 {
			out = append(out, flatParam{typ: typ})
			continue
		}
		for _, name := range field.Names {
			out = append(out, flatParam{name: name.Name, typ: typ})
		}
	}
	return out
}

func countParams(fields *ast.FieldList) int {
	return len(flattenParams(fields))
}

func resultTypes(fields *ast.FieldList) []string {
	if fields == nil {
		return nil
	}
	var out []string
	for _, field := range fields.List {
		typ := types.ExprString(field.Type)
		n := len(field.Names)
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			out = append(out, typ)
		}
	}
	return out
}

// directiveOf scans a doc comment group for the marker. The first marker
// line wins.
func directiveOf(doc *ast.CommentGroup) (Directive, bool, error) {
	if doc == nil {
		return Directive{}, false, nil
	}
	for _, c := range doc.List {
		if isDirective(c.Text) {
			d, err := parseDirective(c.Text)
			return d, true, err
		}
	}
	return Directive{}, false, nil
}

// docLines returns the raw doc comment lines with directive lines removed.
func docLines(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}
	var out []string
	for _, c := range doc.List {
		if isDirective(c.Text) {
			continue
		}
		out = append(out, c.Text)
	}
	return out
}

func specDoc(spec ast.Spec) *ast.CommentGroup {
	switch s := spec.(type) {
	case *ast.TypeSpec:
		return s.Doc
	case *ast.ValueSpec:
		return s.Doc
	}
	return nil
}
