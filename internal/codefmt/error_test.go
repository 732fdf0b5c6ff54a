package codefmt_test

import (
	"errors"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/tools/go/packages"

	"github.com/sublee/namedarray/internal/codefmt"
)

type pkger struct{}

func (pkger) Pkg() *packages.Package {
	var pkg packages.Package
	pkg.Fset = token.NewFileSet()
	pkg.Fset.AddFile("test.go", -1, 100).AddLine(10)
	return &pkg
}

type poser struct{ pos int }

func (p poser) Pos() token.Pos { return token.Pos(p.pos) }

type span struct{ pos, end int }

func (s span) Pos() token.Pos { return token.Pos(s.pos) }
func (s span) End() token.Pos { return token.Pos(s.end) }

func TestErrorfNilNil(t *testing.T) {
	err := codefmt.Errorf(nil, nil, "simple error")
	assert.Equal(t, "simple error", err.Error())
}

func TestErrorfPos(t *testing.T) {
	err := codefmt.Errorf(pkger{}, poser{1}, "error")
	assert.Equal(t, "test.go:1:1: error", err.Error())
}

func TestErrorfSecondLine(t *testing.T) {
	err := codefmt.Errorf(pkger{}, poser{12}, "error")
	assert.Equal(t, "test.go:2:2: error", err.Error())
}

func TestErrorfW(t *testing.T) {
	assert.Panics(t, func() {
		_ = codefmt.Errorf(pkger{}, poser{1}, "error: %w", assert.AnError)
	})
}

func TestErrorfEnd(t *testing.T) {
	err := codefmt.Errorf(pkger{}, span{1, 5}, "error")

	var codeErr *codefmt.CodeError
	if assert.ErrorAs(t, err, &codeErr) {
		assert.Equal(t, token.Pos(1), codeErr.Pos())
		assert.Equal(t, token.Pos(5), codeErr.End())
	}
}

func TestWrapKeepsChain(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := codefmt.Wrap(pkger{}, poser{1}, sentinel)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, "test.go:1:1: sentinel", err.Error())
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, codefmt.Wrap(pkger{}, poser{1}, nil))
}
