package namedarrayinternal

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"io"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/sublee/namedarray"
	"github.com/sublee/namedarray/internal/codefmt"
	"github.com/sublee/namedarray/internal/namedarray/accessor"
	"github.com/sublee/namedarray/internal/namedarray/parse"
)

// Namedarray generates accessor code for the target package. Call [Build] and
// then [Generate] to get the generated code. All potential errors are returned
// by [Build]. Unless [Build] fails with a fatal error, [Generate] never fails.
type Namedarray struct {
	p    *parse.Parser
	buf  *bytes.Buffer
	w    *codefmt.Writer

	accs []*accessor.Accessors
}

// StubError is returned by [Namedarray.Build] when some records have fields of
// different types. Stub accessors are still generated for them, so it is not
// fatal.
type StubError struct{ errs []error }

func (e *StubError) Error() string   { return errors.Join(e.errs...).Error() }
func (e *StubError) Unwrap() []error { return e.errs }

// IsFatal reports whether err prevents code generation. Only a [*StubError]
// is not fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*StubError)
	return !ok
}

// New creates a new [Namedarray] for the given package. If the package does
// not satisfy the requirements, an error is returned. The package must have
// its Syntax, Types and TypesInfo.
func New(pkg *packages.Package) (*Namedarray, error) {
	parser, err := parse.New(pkg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	return &Namedarray{
		p:   parser,
		buf: &buf,
		w:   codefmt.NewWriter(&buf, pkg),
	}, nil
}

// Build prepares code generation by parsing records and deriving their
// accessors. All potential errors are returned by this method. It must be
// called before [Generate].
//
// Unsupported records and invalid directives are fatal. Fields of different
// types are reported by a [*StubError] with one error per field; stubs are
// prepared for them and [Generate] can still be called.
func (na *Namedarray) Build() error {
	// Records parsed without errors are still derived, so that all errors
	// are reported at once.
	records, errs := na.p.ParseRecords()

	var diagErrs []error
	for _, rec := range records {
		res, err := namedarray.Derive(rec.Record)
		if err != nil {
			errs = errors.Join(errs, codefmt.Wrap(rec, rec, err))
			continue
		}

		if res.Stubbed() {
			diagErrs = append(diagErrs, na.p.Diagnose(rec, res.Diagnostics))
		}

		// The element type is written in the source file of the record. It
		// is rewritten to refer to packages imported by the generated file.
		elemExpr := codefmt.RewriteImports(na.w, rec.TypeExprs[0])
		elem := na.w.Sprintf("%c", elemExpr)

		acc := accessor.New(res.Artifact, rec.Methods, rec.Name, rec.TypeParams(), elem, rec.Pos())
		na.accs = append(na.accs, acc)
	}
	if errs != nil {
		return errors.Join(append([]error{errs}, diagErrs...)...)
	}
	if len(diagErrs) != 0 {
		return &StubError{errs: diagErrs}
	}
	return nil
}

// Generate generates accessor code for the package. It must be called after
// [Build] succeeds or fails with a [*StubError]. It returns nil if the package
// has no records to derive.
func (na *Namedarray) Generate() []byte {
	if len(na.accs) == 0 {
		return nil
	}
	writeAccessors(na.w, na.accs)
	return frameCode(na.p.Pkg().Name, na.w.Imports(), na.buf, true)
}

// writeAccessors writes accessors in the order of declaration.
func writeAccessors(w *codefmt.Writer, accs []*accessor.Accessors) {
	accs = slices.Clone(accs)
	slices.SortStableFunc(accs, func(a, b *accessor.Accessors) int {
		return cmpPos(a.Pos(), b.Pos())
	})

	for _, acc := range accs {
		w.Printf("// namedarray: %s\n\n", acc.Record)
		acc.WriteDefineCode(w)
	}
}

func cmpPos(a, b token.Pos) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// frameCode prepends the header and imports to the body and formats the code.
// A constrained file is excluded from builds with the namedarray tag, so that
// stale accessors never affect parsing.
func frameCode(pkgName string, imports map[string]codefmt.Import, body io.Reader, constrained bool) []byte {
	versionSuffix := ""
	if Version != "" {
		versionSuffix = "@" + Version
	}

	var buf bytes.Buffer
	if constrained {
		fmt.Fprintf(&buf, "//go:build !%s\n\n", parse.BuildTag)
	}
	fmt.Fprintf(&buf, "// Code generated by github.com/sublee/namedarray%s. DO NOT EDIT.\n\n", versionSuffix)
	fmt.Fprintf(&buf, "package %s\n", pkgName)

	if len(imports) != 0 {
		names := make([]string, 0, len(imports))
		for name := range imports {
			names = append(names, name)
		}
		// A package may be imported by multiple names.
		slices.SortFunc(names, func(a, b string) int {
			if c := strings.Compare(imports[a].Path(), imports[b].Path()); c != 0 {
				return c
			}
			return strings.Compare(a, b)
		})

		fmt.Fprintf(&buf, "import (\n")
		for _, name := range names {
			imp := imports[name]
			if imp.HasAlias {
				fmt.Fprintf(&buf, "%s %q\n", name, imp.Path())
			} else {
				fmt.Fprintf(&buf, "%q\n", imp.Path())
			}
		}
		fmt.Fprintf(&buf, ")\n")
	}

	_, _ = io.Copy(&buf, body)
	code := buf.Bytes()

	// Apply gofmt if succeeded
	if fmtCode, err := format.Source(code); err == nil {
		code = fmtCode
	}
	return code
}
