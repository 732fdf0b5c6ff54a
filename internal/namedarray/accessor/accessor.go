// Package accessor writes Go code of accessors derived by namedarray.
package accessor

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"

	"github.com/sublee/namedarray"
	"github.com/sublee/namedarray/internal/codefmt"
)

// Methods names the generated methods. An empty Len omits the length method.
type Methods struct {
	Read  string
	Write string
	Len   string
}

// DefaultMethods are used unless a record overrides them.
var DefaultMethods = Methods{Read: "At", Write: "Ptr", Len: "Len"}

// Names returns the non-empty method names.
func (m Methods) Names() []string {
	var names []string
	for _, name := range []string{m.Read, m.Write, m.Len} {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// FieldName returns the Go field name selected by sel. A positional field i is
// declared as "F<i>".
func FieldName(sel namedarray.Selector) string {
	if sel.Kind == namedarray.ByPosition {
		return "F" + strconv.Itoa(sel.Position)
	}
	return sel.Name
}

// Accessors is an artifact ready to be written as Go code.
type Accessors struct {
	namedarray.Artifact
	Methods Methods

	// Type is the receiver base type name and TypeParams are the names of its
	// type parameters, if generic.
	Type       string
	TypeParams []string

	// Elem is the Go code of the element type. It must be valid in the
	// generated file, with imports already recorded by the writer.
	Elem string

	pos token.Pos
}

// New creates [Accessors] for the artifact. pos is the position of the record
// declaration and used to sort generated code.
func New(art namedarray.Artifact, methods Methods, typeName string, typeParams []string, elem string, pos token.Pos) *Accessors {
	return &Accessors{
		Artifact:   art,
		Methods:    methods,
		Type:       typeName,
		TypeParams: typeParams,
		Elem:       elem,
		pos:        pos,
	}
}

// Pos returns the position of the record declaration.
func (a *Accessors) Pos() token.Pos { return a.pos }

// Recv returns the receiver type, like "*Pair[T]".
func (a *Accessors) Recv() string {
	if len(a.TypeParams) == 0 {
		return "*" + a.Type
	}
	return fmt.Sprintf("*%s[%s]", a.Type, strings.Join(a.TypeParams, ", "))
}

// WriteDefineCode writes method declarations of the accessors.
func (a *Accessors) WriteDefineCode(w *codefmt.Writer) {
	// Type parameters are visible in method bodies. The receiver, the index
	// and the fmt import must not be shadowed by them.
	ns := codefmt.NewNS(nil)
	for _, name := range a.TypeParams {
		ns.Reserve(name)
	}

	w = w.WithNS(ns)

	fmtName := ""
	if !a.Stub {
		fmtName = w.Import("fmt", "fmt")
		ns.Reserve(fmtName)
	}
	varR := w.Name("r")
	varIndex := w.Name("index")

	if a.Methods.Read != "" {
		a.writeRead(w, varR, varIndex, fmtName)
	}
	if a.Methods.Write != "" {
		a.writeWrite(w, varR, varIndex, fmtName)
	}
	if a.Methods.Len != "" {
		a.writeLen(w)
	}
}

func (a *Accessors) writeRead(w *codefmt.Writer, varR, varIndex, fmtName string) {
	if a.Stub {
		w.Printf("// %s is a stub. Fix the errors reported by namedarray to generate it.\n", a.Methods.Read)
		w.Printf("func (%s) %s(int) %s {\n", a.Recv(), a.Methods.Read, a.Elem)
		w.Printf("panic(%s)\n", strconv.Quote(namedarray.StubMessage))
		w.Printf("}\n\n")
		return
	}

	w.Printf("// %s returns the field of %s at the index in declaration order. It panics\n", a.Methods.Read, a.Record)
	w.Printf("// if the index is out of bounds.\n")
	w.Printf("func (%s %s) %s(%s int) %s {\n", varR, a.Recv(), a.Methods.Read, varIndex, a.Elem)
	a.writeSwitch(w, varIndex, func(field string) string {
		return varR + "." + field
	})
	a.writePanic(w, varIndex, fmtName, a.Read)
	w.Printf("}\n\n")
}

func (a *Accessors) writeWrite(w *codefmt.Writer, varR, varIndex, fmtName string) {
	if a.Stub {
		w.Printf("// %s is a stub. Fix the errors reported by namedarray to generate it.\n", a.Methods.Write)
		w.Printf("func (%s) %s(int) *%s {\n", a.Recv(), a.Methods.Write, a.Elem)
		w.Printf("panic(%s)\n", strconv.Quote(namedarray.StubMessage))
		w.Printf("}\n\n")
		return
	}

	w.Printf("// %s returns a pointer to the field of %s at the index in declaration\n", a.Methods.Write, a.Record)
	w.Printf("// order. It panics if the index is out of bounds.\n")
	w.Printf("func (%s %s) %s(%s int) *%s {\n", varR, a.Recv(), a.Methods.Write, varIndex, a.Elem)
	a.writeSwitch(w, varIndex, func(field string) string {
		return "&" + varR + "." + field
	})
	a.writePanic(w, varIndex, fmtName, a.Write)
	w.Printf("}\n\n")
}

func (a *Accessors) writeLen(w *codefmt.Writer) {
	w.Printf("// %s returns the number of fields of %s.\n", a.Methods.Len, a.Record)
	w.Printf("func (%s) %s() int {\n", a.Recv(), a.Methods.Len)
	w.Printf("return %d\n", a.Len)
	w.Printf("}\n\n")
}

// writeSwitch writes the dispatch table as a switch statement. Each case
// returns the expression built by ref for the selected field.
func (a *Accessors) writeSwitch(w *codefmt.Writer, varIndex string, ref func(field string) string) {
	w.Printf("switch %s {\n", varIndex)
	for i, sel := range a.Read.Table {
		w.Printf("case %d:\n", i)
		w.Printf("return %s\n", ref(FieldName(sel)))
	}
	w.Printf("}\n")
}

func (a *Accessors) writePanic(w *codefmt.Writer, varIndex, fmtName string, acc namedarray.Accessor) {
	w.Printf("panic(%s.Sprintf(%s, %s))\n", fmtName, strconv.Quote(acc.Format()), varIndex)
}
