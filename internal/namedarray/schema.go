package namedarrayinternal

import (
	"bytes"
	"errors"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/sublee/namedarray"
	"github.com/sublee/namedarray/internal/codefmt"
	"github.com/sublee/namedarray/internal/namedarray/accessor"
	"github.com/sublee/namedarray/internal/schema"
)

// MainSchema generates a Go file from the schema file at path. The file
// declares the records of the schema and their accessors. It is written next
// to the schema as outFile.
//
// Like [Main], it may return both the generated file and a non-fatal error
// when some records have fields of different types.
func MainSchema(path, outFile string) (map[string][]byte, error) {
	s, err := schema.Load(path)
	if err != nil {
		return nil, reorderErrors(err)
	}

	code, err := GenerateSchema(s)
	if code == nil {
		return nil, reorderErrors(err)
	}

	out := filepath.Join(filepath.Dir(path), outFile)
	return map[string][]byte{out: code}, reorderErrors(err)
}

// GenerateSchema generates the Go code for the schema. It returns nil code
// with a fatal error. Otherwise the error is nil or a [*StubError].
func GenerateSchema(s *schema.Schema) ([]byte, error) {
	// The generated file is the only file of its package as far as
	// namedarray knows. Record names are declared in the package scope so
	// that imports never collide with them.
	tpkg := types.NewPackage(s.Package, s.Package)
	for _, rec := range s.Records {
		tpkg.Scope().Insert(types.NewTypeName(token.NoPos, tpkg, rec.Name, nil))
	}
	pkg := &packages.Package{
		ID:      s.Package,
		Name:    s.Package,
		PkgPath: s.Package,
		Fset:    s.Fset,
		Types:   tpkg,
	}

	var buf bytes.Buffer
	w := codefmt.NewWriter(&buf, pkg)

	var errs error
	var diagErrs []error
	var accs []*accessor.Accessors
	for _, rec := range s.Records {
		res, err := namedarray.Derive(rec.Record)
		if err != nil {
			errs = errors.Join(errs, s.Wrap(rec, err))
			continue
		}
		if res.Stubbed() {
			diagErrs = append(diagErrs, s.Diagnose(rec, res.Diagnostics))
		}

		fieldTypes := make([]string, len(rec.Fields))
		for i, f := range rec.Fields {
			fieldTypes[i] = qualify(w, s.Imports, f.Type)
		}
		writeRecord(w, rec, fieldTypes)

		acc := accessor.New(res.Artifact, rec.Methods, rec.Name, nil, fieldTypes[0], rec.Pos())
		accs = append(accs, acc)
	}
	if errs != nil {
		return nil, errs
	}
	if len(accs) == 0 {
		return nil, nil
	}

	writeAccessors(w, accs)
	code := frameCode(s.Package, w.Imports(), &buf, false)

	if len(diagErrs) != 0 {
		return code, &StubError{errs: diagErrs}
	}
	return code, nil
}

// writeRecord writes the type declaration of the record. fieldTypes are the Go
// code of the field types.
func writeRecord(w *codefmt.Writer, rec *schema.Record, fieldTypes []string) {
	if rec.Doc != "" {
		writeDoc(w, rec.Doc)
	}
	w.Printf("type %s struct {\n", rec.Name)
	for i, f := range rec.Fields {
		if doc := rec.FieldDocs[i]; doc != "" {
			writeDoc(w, doc)
		}
		w.Printf("%s %s\n", accessor.FieldName(f.Selector), fieldTypes[i])
	}
	w.Printf("}\n\n")
}

func writeDoc(w *codefmt.Writer, doc string) {
	for _, line := range strings.Split(strings.TrimRight(doc, "\n"), "\n") {
		if line == "" {
			w.Printf("//\n")
			continue
		}
		w.Printf("// %s\n", line)
	}
}

// qualify rewrites package qualifiers in the type to the names imported by the
// writer. The type must be normalized by the schema loader.
func qualify(w *codefmt.Writer, imports map[string]string, typ string) string {
	expr, err := parser.ParseExpr(typ)
	if err != nil {
		return typ
	}
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if x, ok := sel.X.(*ast.Ident); ok {
			if path, ok := imports[x.Name]; ok {
				x.Name = w.Import(path, x.Name)
			}
		}
		return true
	})

	var buf bytes.Buffer
	if err := format.Node(&buf, token.NewFileSet(), expr); err != nil {
		return typ
	}
	return buf.String()
}
