// Package schema loads record descriptions from a versioned YAML document.
//
// A schema declares records which do not exist in Go source yet. Namedarray
// generates both their type declarations and their accessors:
//
//	version: 1
//	package: color
//	imports: [time]
//	records:
//	  - name: RGB
//	    doc: RGB is a color.
//	    fields:
//	      - {name: red, type: uint8}
//	      - {name: green, type: uint8}
//	      - {name: blue, type: uint8}
//	  - name: Triple
//	    shape: positional
//	    len: "-"
//	    fields:
//	      - type: time.Duration
//	      - type: time.Duration
//	      - type: time.Duration
//
// Shape is one of "named" (default), "positional", and "unit". Field names are
// exported to Go, so "red" is declared as "Red". Positional fields are declared
// as F0, F1, and so on.
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/sublee/namedarray"
	"github.com/sublee/namedarray/internal/codefmt"
	"github.com/sublee/namedarray/internal/lcs"
	"github.com/sublee/namedarray/internal/namedarray/accessor"
)

// Version is the only supported schema version.
const Version = 1

// Schema is a loaded schema document.
type Schema struct {
	Fset    *token.FileSet
	Package string

	// Imports maps package names to import paths used by field types.
	Imports map[string]string

	Records []*Record
}

// Record is a record declared by a schema.
type Record struct {
	namedarray.Record
	Methods accessor.Methods
	Doc     string

	// FieldDocs are the doc comments of the fields in declaration order.
	FieldDocs []string

	pos token.Pos
}

// Pos returns the position of the record in the schema file.
func (r *Record) Pos() token.Pos { return r.pos }

type document struct {
	Version int           `yaml:"version"`
	Package string        `yaml:"package"`
	Imports []string      `yaml:"imports"`
	Records []recordEntry `yaml:"records"`
}

type recordEntry struct {
	Name   string       `yaml:"name"`
	Doc    string       `yaml:"doc"`
	Shape  string       `yaml:"shape"`
	Read   *string      `yaml:"read"`
	Write  *string      `yaml:"write"`
	Len    *string      `yaml:"len"`
	Fields []fieldEntry `yaml:"fields"`

	line, column int
}

type fieldEntry struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Doc  string `yaml:"doc"`

	line, column         int
	typeLine, typeColumn int
}

// UnmarshalYAML keeps the position of the record in the document.
func (e *recordEntry) UnmarshalYAML(node *yaml.Node) error {
	type plain recordEntry
	if err := node.Decode((*plain)(e)); err != nil {
		return err
	}
	e.line, e.column = node.Line, node.Column
	return nil
}

// UnmarshalYAML keeps the positions of the field and its type in the document.
func (e *fieldEntry) UnmarshalYAML(node *yaml.Node) error {
	type plain fieldEntry
	if err := node.Decode((*plain)(e)); err != nil {
		return err
	}
	e.line, e.column = node.Line, node.Column
	e.typeLine, e.typeColumn = e.line, e.column
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "type" {
			e.typeLine, e.typeColumn = node.Content[i+1].Line, node.Content[i+1].Column
		}
	}
	return nil
}

// Load reads and parses the schema file.
func Load(filename string) (*Schema, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(filename, data)
}

// Parse parses the schema document. It collects all errors instead of stopping
// at the first error. Field types are not compared here; see
// [namedarray.Derive].
func Parse(filename string, data []byte) (*Schema, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	fset := token.NewFileSet()
	file := fset.AddFile(filename, -1, len(data))
	file.SetLinesForContent(data)

	if doc.Version != Version {
		return nil, fmt.Errorf("%s: unsupported schema version %d; want %d", filename, doc.Version, Version)
	}
	if !token.IsIdentifier(doc.Package) {
		return nil, fmt.Errorf("%s: package must be a Go package name; got %q", filename, doc.Package)
	}

	s := &Schema{
		Fset:    fset,
		Package: doc.Package,
		Imports: make(map[string]string),
	}
	l := &loader{
		fmt:     codefmt.Formatter{Fset: fset},
		file:    file,
		imports: s.Imports,
	}

	var errs error
	for _, imp := range doc.Imports {
		name := path.Base(imp)
		if !token.IsIdentifier(name) {
			errs = errors.Join(errs, fmt.Errorf("%s: import %s: the last path element must be the package name", filename, imp))
			continue
		}
		if prev, ok := s.Imports[name]; ok {
			errs = errors.Join(errs, fmt.Errorf("%s: import %s conflicts with %s", filename, imp, prev))
			continue
		}
		s.Imports[name] = imp
	}

	seen := make(map[string]bool)
	for _, entry := range doc.Records {
		rec, err := l.record(entry)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		if seen[rec.Name] {
			errs = errors.Join(errs, l.fmt.Errorf(rec, "record %s redeclared", rec.Name))
			continue
		}
		seen[rec.Name] = true
		s.Records = append(s.Records, rec)
	}
	if errs != nil {
		return nil, errs
	}
	return s, nil
}

type loader struct {
	fmt     codefmt.Formatter
	file    *token.File
	imports map[string]string
}

// pos maps a 1-based YAML line and column to a position in the file set.
func (l *loader) pos(line, column int) token.Pos {
	if line < 1 || line > l.file.LineCount() {
		return token.NoPos
	}
	return l.file.LineStart(line) + token.Pos(column-1)
}

func parseShape(s string) (namedarray.Shape, bool) {
	switch s {
	case "", "named":
		return namedarray.ShapeNamed, true
	case "positional":
		return namedarray.ShapePositional, true
	case "unit":
		return namedarray.ShapeUnit, true
	}
	return 0, false
}

var shapes = []string{"named", "positional", "unit"}

func (l *loader) record(e recordEntry) (*Record, error) {
	at := codefmt.Pos(l.pos(e.line, e.column))
	if !token.IsIdentifier(e.Name) {
		return nil, l.fmt.Errorf(at, "record name must be a Go identifier; got %q", e.Name)
	}

	shape, ok := parseShape(e.Shape)
	if !ok {
		if suggestion, ok := lcs.Closest(e.Shape, shapes); ok {
			return nil, l.fmt.Errorf(at, "%s: unknown shape %q; did you mean %q?", e.Name, e.Shape, suggestion)
		}
		return nil, l.fmt.Errorf(at, "%s: unknown shape %q; want one of %s", e.Name, e.Shape, strings.Join(shapes, ", "))
	}

	methods, err := l.methods(at, e)
	if err != nil {
		return nil, err
	}

	rec := &Record{
		Record:  namedarray.Record{Name: e.Name, Shape: shape},
		Methods: methods,
		Doc:     e.Doc,
		pos:     at.Pos(),
	}
	if shape == namedarray.ShapeUnit {
		if len(e.Fields) != 0 {
			return nil, l.fmt.Errorf(at, "%s: unit record cannot have fields", e.Name)
		}
		return rec, nil
	}

	var errs error
	for i, fe := range e.Fields {
		f, err := l.field(i, shape, fe)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		rec.Fields = append(rec.Fields, f)
		rec.FieldDocs = append(rec.FieldDocs, fe.Doc)
	}
	if errs != nil {
		return nil, errs
	}

	// Positional fields are declared as F0, F1, ... so they may collide too.
	for _, f := range rec.Fields {
		if name := accessor.FieldName(f.Selector); slices.Contains(methods.Names(), name) {
			return nil, l.fmt.Errorf(codefmt.Span(f.Pos, f.End), "%s.%s conflicts with the generated method", e.Name, name)
		}
	}
	return rec, nil
}

func (l *loader) field(i int, shape namedarray.Shape, e fieldEntry) (namedarray.Field, error) {
	at := codefmt.Pos(l.pos(e.line, e.column))

	var sel namedarray.Selector
	switch shape {
	case namedarray.ShapePositional:
		if e.Name != "" {
			return namedarray.Field{}, l.fmt.Errorf(at, "positional field %d cannot have a name; got %q", i, e.Name)
		}
		sel = namedarray.Positional(i)
	default:
		name := ExportName(e.Name)
		if !token.IsIdentifier(name) || name == "_" {
			return namedarray.Field{}, l.fmt.Errorf(at, "field %d must have a name which can be a Go identifier; got %q", i, e.Name)
		}
		sel = namedarray.Named(name)
	}

	pos := l.pos(e.typeLine, e.typeColumn)
	typ, err := l.normalizeType(e.Type)
	if err != nil {
		return namedarray.Field{}, l.fmt.Errorf(codefmt.Pos(pos), "field %s: invalid type %q", sel, e.Type)
	}
	if pkg, ok := l.unimported(typ); ok {
		return namedarray.Field{}, l.fmt.Errorf(codefmt.Pos(pos), "field %s: package %s is not imported", sel, pkg)
	}

	return namedarray.Field{
		Selector: sel,
		Type:     typ,
		Pos:      pos,
		End:      pos + token.Pos(len(e.Type)),
	}, nil
}

// normalizeType formats the type expression as gofmt does, so that type
// signatures differing only in spacing are written identically.
func (l *loader) normalizeType(typ string) (string, error) {
	if strings.TrimSpace(typ) == "" {
		return "", errors.New("empty type")
	}
	expr, err := parser.ParseExpr(typ)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := format.Node(&buf, token.NewFileSet(), expr); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// unimported returns the first package qualifier in the type which is not
// imported by the schema.
func (l *loader) unimported(typ string) (string, bool) {
	expr, err := parser.ParseExpr(typ)
	if err != nil {
		return "", false
	}
	var missing string
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok || missing != "" {
			return missing == ""
		}
		if x, ok := sel.X.(*ast.Ident); ok {
			if _, ok := l.imports[x.Name]; !ok {
				missing = x.Name
			}
		}
		return true
	})
	return missing, missing != ""
}

func (l *loader) methods(at codefmt.Poser, e recordEntry) (accessor.Methods, error) {
	methods := accessor.DefaultMethods
	var errs error
	for _, opt := range []struct {
		key   string
		value *string
		dst   *string
	}{
		{"read", e.Read, &methods.Read},
		{"write", e.Write, &methods.Write},
		{"len", e.Len, &methods.Len},
	} {
		if opt.value == nil {
			continue
		}
		if opt.key == "len" && *opt.value == "-" {
			*opt.dst = ""
			continue
		}
		if !token.IsIdentifier(*opt.value) {
			errs = errors.Join(errs, l.fmt.Errorf(at, "%s: %s must be a method name; got %q", e.Name, opt.key, *opt.value))
			continue
		}
		*opt.dst = *opt.value
	}
	if errs != nil {
		return accessor.Methods{}, errs
	}

	if methods.Read == methods.Write || methods.Read == methods.Len || methods.Write == methods.Len {
		return accessor.Methods{}, l.fmt.Errorf(at, "%s: method names must be distinct; got read=%s write=%s len=%s", e.Name, methods.Read, methods.Write, methods.Len)
	}
	return methods, nil
}

// ExportName converts a schema field name to an exported Go identifier.
// Underscores separate words:
//
//	red       -> Red
//	red_level -> RedLevel
//	getID     -> GetID
func ExportName(name string) string {
	title := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, word := range lcs.SplitWords(name) {
		if strings.Trim(word, "_") == "" {
			continue
		}
		b.WriteString(title.String(word))
	}
	return b.String()
}

// Diagnose converts diagnostics of the record into positioned errors.
func (s *Schema) Diagnose(rec *Record, diags []namedarray.Diagnostic) error {
	f := codefmt.Formatter{Fset: s.Fset}
	var errs error
	for _, diag := range diags {
		errs = errors.Join(errs, f.Errorf(diag, "%s.%s: %s", rec.Name, diag.Field.Selector, diag.Message))
	}
	return errs
}

// Wrap attaches the position of the record to err.
func (s *Schema) Wrap(rec *Record, err error) error {
	return codefmt.Formatter{Fset: s.Fset}.Wrap(rec, err)
}
