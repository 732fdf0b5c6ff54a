package namedarrayinternal_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	namedarrayinternal "github.com/sublee/namedarray/internal/namedarray"
	"github.com/sublee/namedarray/internal/schema"
)

// loadSource type-checks the source as the only file of package p. Type errors
// are ignored because the source may call accessors to generate.
func loadSource(t *testing.T, src string) *packages.Package {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", src, parser.ParseComments)
	require.NoError(t, err)

	info := &types.Info{
		Types: make(map[ast.Expr]types.TypeAndValue),
		Defs:  make(map[*ast.Ident]types.Object),
		Uses:  make(map[*ast.Ident]types.Object),
	}
	conf := types.Config{Error: func(error) {}}
	pkg, _ := conf.Check("example.com/p", fset, []*ast.File{file}, info)

	return &packages.Package{
		Name:      "p",
		PkgPath:   "example.com/p",
		Fset:      fset,
		Syntax:    []*ast.File{file},
		Types:     pkg,
		TypesInfo: info,
	}
}

func TestGenerate(t *testing.T) {
	pkg := loadSource(t, `package p

//namedarray:derive
type ABC struct {
	A, B, C uint32
}

//namedarray:derive read=Get write=Ref len=-
type Pair[r any] struct {
	X, Y r
}

func use() {
	var abc ABC
	_ = abc.At(0)
}
`)
	na, err := namedarrayinternal.New(pkg)
	require.NoError(t, err)
	require.NoError(t, na.Build())

	code := string(na.Generate())
	t.Log(code)

	assert.Contains(t, code, "//go:build !namedarray\n")
	assert.Contains(t, code, "// Code generated by github.com/sublee/namedarray. DO NOT EDIT.\n")
	assert.Contains(t, code, "package p\n")
	assert.Contains(t, code, `"fmt"`)

	assert.Contains(t, code, "func (r *ABC) At(index int) uint32 {\n")
	assert.Contains(t, code, "\tcase 0:\n\t\treturn r.A\n\tcase 1:\n\t\treturn r.B\n\tcase 2:\n\t\treturn r.C\n")
	assert.Contains(t, code, "\tpanic(fmt.Sprintf(\"index out of bounds: the len is 3 but the index is %d\", index))\n")
	assert.Contains(t, code, "func (r *ABC) Ptr(index int) *uint32 {\n")
	assert.Contains(t, code, "\t\treturn &r.A\n")
	assert.Contains(t, code, "func (*ABC) Len() int {\n\treturn 3\n}")

	// The receiver does not shadow the type parameter.
	assert.Contains(t, code, "func (r2 *Pair[r]) Get(index int) r {\n")
	assert.Contains(t, code, "func (r2 *Pair[r]) Ref(index int) *r {\n")
	assert.Contains(t, code, "\t\treturn &r2.Y\n")
	assert.NotContains(t, code, ") Len() int {\n\treturn 2")

	// Declaration order.
	assert.Less(t, strings.Index(code, "// namedarray: ABC"), strings.Index(code, "// namedarray: Pair"))
}

func TestGenerateFmtShadowed(t *testing.T) {
	pkg := loadSource(t, `package p

var fmt = "not fmt"

//namedarray:derive
type XY struct{ X, Y string }
`)
	na, err := namedarrayinternal.New(pkg)
	require.NoError(t, err)
	require.NoError(t, na.Build())

	code := string(na.Generate())
	assert.Contains(t, code, `fmt2 "fmt"`)
	assert.Contains(t, code, "panic(fmt2.Sprintf(")
}

func TestGenerateFmtTypeParam(t *testing.T) {
	pkg := loadSource(t, `package p

//namedarray:derive
type Pair[fmt any] struct{ A, B fmt }

//namedarray:derive
type XY struct{ X, Y int }
`)
	na, err := namedarrayinternal.New(pkg)
	require.NoError(t, err)
	require.NoError(t, na.Build())

	code := string(na.Generate())
	assert.Contains(t, code, `fmt2 "fmt"`)
	assert.Contains(t, code, "func (r *Pair[fmt]) At(index int) fmt {")
	assert.Contains(t, code, "panic(fmt2.Sprintf(")
	assert.Contains(t, code, "panic(fmt.Sprintf(")
}

func TestGenerateStub(t *testing.T) {
	pkg := loadSource(t, `package p

//namedarray:derive
type Mixed struct {
	A int
	B string
}
`)
	na, err := namedarrayinternal.New(pkg)
	require.NoError(t, err)

	err = na.Build()
	require.Error(t, err)
	assert.False(t, namedarrayinternal.IsFatal(err))
	assert.EqualError(t, err, "p.go:6:4: Mixed.B: all fields must have the same type int; got string")

	code := string(na.Generate())
	assert.Contains(t, code, "func (*Mixed) At(int) int {\n\tpanic(\"namedarray: unable to generate code due to previous errors\")\n}")
	assert.Contains(t, code, "func (*Mixed) Ptr(int) *int {\n")
	assert.Contains(t, code, "func (*Mixed) Len() int {\n\treturn 2\n}")
	assert.NotContains(t, code, `"fmt"`)
}

func TestBuildFatal(t *testing.T) {
	pkg := loadSource(t, `package p

//namedarray:derive
type Empty struct{}

//namedarray:derive
type Mixed struct {
	A int
	B string
}
`)
	na, err := namedarrayinternal.New(pkg)
	require.NoError(t, err)

	err = na.Build()
	require.Error(t, err)
	assert.True(t, namedarrayinternal.IsFatal(err))

	// Every error is reported at once.
	assert.ErrorContains(t, err, "p.go:4:6: unsupported record shape: Empty must have at least one field")
	assert.ErrorContains(t, err, "p.go:9:4: Mixed.B: all fields must have the same type int; got string")
}

func TestGenerateNothing(t *testing.T) {
	pkg := loadSource(t, `package p

type XY struct{ X, Y int }
`)
	na, err := namedarrayinternal.New(pkg)
	require.NoError(t, err)
	require.NoError(t, na.Build())
	assert.Nil(t, na.Generate())
}

func TestGenerateSchema(t *testing.T) {
	s, err := schema.Parse("color.yaml", []byte(`version: 1
package: color
imports: [time]
records:
  - name: RGB
    doc: |
      RGB is a color.

      Each channel is 8 bits.
    fields:
      - {name: red, type: uint8, doc: Red is the first channel.}
      - {name: green, type: uint8}
      - {name: blue, type: uint8}
  - name: Window
    shape: positional
    read: Get
    fields:
      - type: time.Duration
      - type: time.Duration
`))
	require.NoError(t, err)

	code, err := namedarrayinternal.GenerateSchema(s)
	require.NoError(t, err)
	t.Log(string(code))

	assert.NotContains(t, string(code), "//go:build")
	assert.Contains(t, string(code), "package color\n")
	assert.Contains(t, string(code), "// RGB is a color.\n//\n// Each channel is 8 bits.\ntype RGB struct {\n")
	assert.Contains(t, string(code), "\t// Red is the first channel.\n\tRed   uint8\n")
	assert.Contains(t, string(code), "type Window struct {\n\tF0 time.Duration\n\tF1 time.Duration\n}")
	assert.Contains(t, string(code), "func (r *RGB) At(index int) uint8 {\n")
	assert.Contains(t, string(code), "\t\treturn r.Blue\n")
	assert.Contains(t, string(code), "func (r *Window) Get(index int) time.Duration {\n")
	assert.Contains(t, string(code), "\t\treturn &r.F1\n")
	assert.Contains(t, string(code), "\"time\"\n")
}

func TestGenerateSchemaImportConflict(t *testing.T) {
	s, err := schema.Parse("x.yaml", []byte(`version: 1
package: x
imports: [time]
records:
  - name: time
    fields:
      - {name: a, type: time.Duration}
`))
	require.NoError(t, err)

	code, err := namedarrayinternal.GenerateSchema(s)
	require.NoError(t, err)
	assert.Contains(t, string(code), `time2 "time"`)
	assert.Contains(t, string(code), "A time2.Duration")
}
