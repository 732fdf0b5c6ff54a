// golangcilintnamedarray package provides a plugin for golangci-lint to
// integrate the namedarray analyzer. To build a custom golangci-lint binary with
// this plugin, use the following command at this package's directory:
//
//	golangci-lint custom
//
// Now you will have a golangci-lint-namedarray binary that reports records
// which namedarray cannot derive accessors for.
package golangcilintnamedarray

import (
	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"

	"github.com/sublee/namedarray/pkg/namedarrayanalysis"
)

func init() {
	register.Plugin("namedarray", New)
}

func New(settings any) (register.LinterPlugin, error) {
	return NamedarrayLinter{}, nil
}

type NamedarrayLinter struct{}

func (NamedarrayLinter) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	return []*analysis.Analyzer{namedarrayanalysis.Analyzer}, nil
}

func (NamedarrayLinter) GetLoadMode() string {
	return register.LoadModeTypesInfo
}
