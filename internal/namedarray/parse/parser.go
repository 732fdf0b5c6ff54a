package parse

import (
	"fmt"
	"go/ast"
	"go/build/constraint"

	"golang.org/x/tools/go/packages"

	"github.com/sublee/namedarray/internal/codefmt"
)

// BuildTag is the build tag set while namedarray loads packages. Generated
// files are constrained by "//go:build !namedarray" so that stale output never
// takes part in code generation.
const BuildTag = "namedarray"

// Parser parses an AST of the underlying package to collect records to derive.
type Parser struct {
	pkg *packages.Package
	fmt codefmt.Formatter
}

func (p *Parser) Pkg() *packages.Package { return p.pkg }

// New creates a new [Parser].
func New(pkg *packages.Package) (*Parser, error) {
	if pkg.Name == "" {
		return nil, fmt.Errorf("need pkg name")
	}
	if pkg.PkgPath == "" {
		return nil, fmt.Errorf("need pkg path")
	}
	if pkg.Types == nil {
		return nil, fmt.Errorf("need pkg types")
	}
	if pkg.Fset == nil {
		return nil, fmt.Errorf("need pkg fset")
	}
	if pkg.Syntax == nil {
		return nil, fmt.Errorf("need pkg syntax")
	}
	if pkg.TypesInfo == nil {
		return nil, fmt.Errorf("need pkg types info")
	}
	return &Parser{pkg: pkg, fmt: codefmt.New(pkg)}, nil
}

// SourceFiles returns the Go files of the package except files generated by
// namedarray.
func (p *Parser) SourceFiles() []*ast.File {
	var files []*ast.File
	for _, file := range p.Pkg().Syntax {
		if !IsGenerated(file) {
			files = append(files, file)
		}
	}
	return files
}

// IsGenerated checks if the file has a build constraint on the namedarray tag,
// which only generated files have.
func IsGenerated(file *ast.File) bool {
	ok := false
	for _, group := range file.Comments {
		if group.Pos() >= file.Package {
			break
		}
		for _, comment := range group.List {
			if constraint.IsGoBuild(comment.Text) {
				expr, _ := constraint.Parse(comment.Text)
				if expr == nil {
					continue
				}
				expr.Eval(func(tag string) bool {
					if tag == BuildTag {
						ok = true
					}
					return true
				})
			}
		}
	}
	return ok
}
