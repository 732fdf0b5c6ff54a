package parse

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/packages"

	"github.com/sublee/namedarray"
	"github.com/sublee/namedarray/internal/codefmt"
	"github.com/sublee/namedarray/internal/namedarray/accessor"
	"github.com/sublee/namedarray/internal/typeinfo"
)

// Record is a type declaration marked by the namedarray directive.
type Record struct {
	namedarray.Record
	Methods accessor.Methods

	// Spec is the type declaration. TypeExprs are the type expressions of
	// the fields in declaration order.
	Spec      *ast.TypeSpec
	TypeExprs []ast.Expr

	pkg *packages.Package
}

// Pkg returns the package where the record is declared. Record implements
// [codefmt.Pkger] by this method.
func (r *Record) Pkg() *packages.Package { return r.pkg }

// Pos returns the position of the type name. Record implements
// [codefmt.Poser] by this method.
func (r *Record) Pos() token.Pos { return r.Spec.Name.Pos() }

// End returns the end of the type name.
func (r *Record) End() token.Pos { return r.Spec.Name.End() }

// Type returns the declared type.
func (r *Record) Type() typeinfo.Type {
	return typeinfo.TypeOf(r.pkg.TypesInfo.TypeOf(r.Spec.Name))
}

// TypeParams returns the names of the type parameters of the record.
func (r *Record) TypeParams() []string {
	if r.Spec.TypeParams == nil {
		return nil
	}
	var names []string
	for _, field := range r.Spec.TypeParams.List {
		for _, name := range field.Names {
			names = append(names, name.Name)
		}
	}
	return names
}

// ParseRecords finds all type declarations marked by the namedarray directive
// in the source files. It collects all errors instead of stopping at the first
// error. Mismatching field types are not errors here; see [namedarray.Derive].
func (p *Parser) ParseRecords() ([]*Record, error) {
	var records []*Record
	var errs error

	for _, file := range p.SourceFiles() {
		used := make(map[*ast.Comment]bool)

		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				spec := spec.(*ast.TypeSpec)

				// A single type declaration has its doc comment on GenDecl.
				doc := spec.Doc
				if doc == nil && !gen.Lparen.IsValid() {
					doc = gen.Doc
				}

				c, ok := findDirective(doc)
				if !ok {
					continue
				}
				used[c] = true

				rec, err := p.parseRecord(spec, c)
				if err != nil {
					errs = errors.Join(errs, err)
					continue
				}
				records = append(records, rec)
			}
		}

		errs = errors.Join(errs, p.validateDirectivePlacement(file, used))
	}

	return records, errs
}

// validateDirectivePlacement reports directives which are not attached to any
// type declaration. They would be silently ignored otherwise.
func (p *Parser) validateDirectivePlacement(file *ast.File, used map[*ast.Comment]bool) error {
	var errs error
	for _, group := range file.Comments {
		for _, c := range group.List {
			if isDirective(c) && !used[c] {
				errs = errors.Join(errs, codefmt.Errorf(p, c, "misplaced %s; it must be in the doc comment of a type declaration", DirectivePrefix))
			}
		}
	}
	return errs
}

// parseRecord builds a record from the type declaration. Only struct type
// literals have fields. Any other type is unit-shaped, which is rejected later
// by [namedarray.Extract].
func (p *Parser) parseRecord(spec *ast.TypeSpec, c *ast.Comment) (*Record, error) {
	methods, err := p.parseDirective(c)
	if err != nil {
		return nil, err
	}

	rec := &Record{
		Record:  namedarray.Record{Name: spec.Name.Name, Shape: namedarray.ShapeUnit},
		Methods: methods,
		Spec:    spec,
		pkg:     p.pkg,
	}

	if spec.Assign.IsValid() {
		return nil, codefmt.Errorf(p, rec, "cannot derive alias %s; derive the aliased type instead", spec.Name.Name)
	}

	st, ok := spec.Type.(*ast.StructType)
	if !ok {
		if rec.Type().IsStruct() {
			return nil, codefmt.Errorf(p, rec, "cannot derive %s declared by %c; derive the struct type literal instead", spec.Name.Name, spec.Type)
		}
		return rec, nil
	}

	rec.Shape = namedarray.ShapeNamed
	var errs error
	for _, field := range st.Fields.List {
		typ := p.fmt.Expr(field.Type)

		if len(field.Names) == 0 {
			// Embedded field is selected by its type name.
			name, ok := embeddedName(field.Type)
			if !ok {
				errs = errors.Join(errs, codefmt.Errorf(p, field.Type, "cannot select embedded field %c by name", field.Type))
				continue
			}
			rec.Fields = append(rec.Fields, namedarray.Field{
				Selector: namedarray.Named(name),
				Type:     typ,
				Pos:      field.Type.Pos(),
				End:      field.Type.End(),
			})
			rec.TypeExprs = append(rec.TypeExprs, field.Type)
			continue
		}

		for _, name := range field.Names {
			if name.Name == "_" {
				errs = errors.Join(errs, codefmt.Errorf(p, name, "cannot index blank field of %s", spec.Name.Name))
				continue
			}
			rec.Fields = append(rec.Fields, namedarray.Field{
				Selector: namedarray.Named(name.Name),
				Type:     typ,
				Pos:      field.Type.Pos(),
				End:      field.Type.End(),
			})
			rec.TypeExprs = append(rec.TypeExprs, field.Type)
		}
	}

	errs = errors.Join(errs, p.validateMethods(rec))
	if errs != nil {
		return nil, errs
	}
	return rec, nil
}

// validateMethods checks that the methods to generate do not conflict with
// fields or methods declared by the user.
func (p *Parser) validateMethods(rec *Record) error {
	typ := rec.Type()

	var errs error
	for _, name := range rec.Methods.Names() {
		for _, f := range rec.Fields {
			if f.Name == name {
				errs = errors.Join(errs, codefmt.Errorf(p, rec, "cannot generate method %s.%s; field %s has the same name", rec.Name, name, name))
			}
		}

		method, ok := typ.Method(name)
		if !ok || p.isGeneratedPos(method.Pos()) {
			continue
		}
		errs = errors.Join(errs, codefmt.Errorf(p, rec, "cannot generate method %s.%s; already declared at %b", rec.Name, name, method.Pos()))
	}
	return errs
}

// isGeneratedPos reports whether the position is in a file generated by
// namedarray.
func (p *Parser) isGeneratedPos(pos token.Pos) bool {
	for _, file := range p.Pkg().Syntax {
		if file.FileStart <= pos && pos <= file.FileEnd {
			return IsGenerated(file)
		}
	}
	return false
}

// embeddedName returns the field name of an embedded field.
//
//	Foo, *Foo, pkg.Foo, Foo[T] => Foo
func embeddedName(expr ast.Expr) (string, bool) {
	switch x := ast.Unparen(expr).(type) {
	case *ast.Ident:
		return x.Name, true
	case *ast.StarExpr:
		return embeddedName(x.X)
	case *ast.SelectorExpr:
		return x.Sel.Name, true
	case *ast.IndexExpr:
		return embeddedName(x.X)
	case *ast.IndexListExpr:
		return embeddedName(x.X)
	}
	return "", false
}

// Diagnose converts diagnostics of the record into positioned errors. If two
// spellings are proven to denote the identical type, a hint is attached
// because the spelling alone makes the difference.
func (p *Parser) Diagnose(rec *Record, diags []namedarray.Diagnostic) error {
	var errs error
	for _, diag := range diags {
		msg := diag.Message

		want, got := p.typeAt(rec, rec.Fields[0].Pos), p.typeAt(rec, diag.Pos())
		if want.Identical(got) {
			msg += fmt.Sprintf("\n\t%s and %s are identical types but written differently", diag.Want, diag.Field.Type)
		}

		errs = errors.Join(errs, codefmt.Errorf(p, diag, "%s.%s: %s", rec.Name, diag.Field.Name, msg))
	}
	return errs
}

// typeAt returns the type of the field type expression at pos.
func (p *Parser) typeAt(rec *Record, pos token.Pos) typeinfo.Type {
	for _, expr := range rec.TypeExprs {
		if expr.Pos() == pos {
			return typeinfo.TypeOf(p.pkg.TypesInfo.TypeOf(expr))
		}
	}
	return typeinfo.TypeOf(types.Typ[types.Invalid])
}
