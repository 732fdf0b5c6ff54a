// Package namedarrayanalysis reports namedarray errors as analysis
// diagnostics, so that they show up in editors and linters before the code is
// generated.
package namedarrayanalysis

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"

	"github.com/sublee/namedarray/internal/codefmt"
	namedarrayinternal "github.com/sublee/namedarray/internal/namedarray"
)

// Analyzer validates the records marked by namedarray directives in the
// package.
var Analyzer = &analysis.Analyzer{
	Name: "namedarray",
	Doc:  "check records to derive index-based accessors by namedarray",
	Run:  run,
}

func run(pass *analysis.Pass) (any, error) {
	pkg := &packages.Package{
		Name:      pass.Pkg.Name(),
		PkgPath:   pass.Pkg.Path(),
		Types:     pass.Pkg,
		Fset:      pass.Fset,
		Syntax:    pass.Files,
		TypesInfo: pass.TypesInfo,
	}

	na, err := namedarrayinternal.New(pkg)
	if err != nil {
		return nil, err
	}

	// Both fatal errors and stub errors are reported. They are nested by
	// errors.Join.
	errs := []error{na.Build()}
	for len(errs) != 0 {
		err := errs[0]
		errs = errs[1:]

		if codeErr, ok := err.(*codefmt.CodeError); ok {
			pass.Report(analysis.Diagnostic{
				Pos:     codeErr.Pos(),
				End:     codeErr.End(),
				Message: codeErr.Unwrap().Error(),
			})
			continue
		}

		if u, ok := err.(interface{ Unwrap() []error }); ok {
			errs = append(errs, u.Unwrap()...)
		}
	}

	return nil, nil
}
