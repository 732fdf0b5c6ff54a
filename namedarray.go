// Package namedarray derives index-based accessors for record types.
//
// A record with named fields can also be treated as a fixed-size array when
// all of its fields share one type. Namedarray turns the description of such a
// record into two accessors which read and write a field by its position in
// declaration order:
//
//	// source:
//	//namedarray:derive
//	type RGB struct {
//		R, G, B uint8
//	}
//
//	// generated: (simplified)
//	func (r *RGB) At(index int) uint8 {
//		switch index {
//		case 0:
//			return r.R
//		case 1:
//			return r.G
//		case 2:
//			return r.B
//		}
//		panic(fmt.Sprintf("index out of bounds: the len is 3 but the index is %d", index))
//	}
//
// The write accessor (Ptr by default) dispatches the same way but returns a
// pointer to the field.
//
// # Type signatures
//
// All fields must have the same type, and it must be written identically. The
// type signatures are compared by their written form before any type checking,
// so Option[int] and opt.Option[int] are rejected even if they refer to the
// same type.
//
// # Failures
//
// A record without any field cannot be derived. It is reported by [Derive] as
// an error wrapping [ErrUnsupportedShape], and nothing is generated.
//
// A record whose fields have different types is reported by one [Diagnostic]
// per mismatching field. In that case [Derive] still returns a stub [Artifact]
// whose accessors have the correct signatures but always panic with
// [StubMessage]. It keeps code calling the accessors compilable, so that only
// the real errors are reported.
//
// This package is the pure transformation. Source code parsing and code
// emission live in the namedarray command.
package namedarray

import (
	"errors"
	"fmt"
	"go/token"
	"strconv"
)

// OutOfBoundsFormat is the panic message of an accessor called with an index
// out of bounds. The first verb is the number of fields and the second one is
// the index.
const OutOfBoundsFormat = "index out of bounds: the len is %d but the index is %d"

// StubMessage is the panic message of stub accessors.
const StubMessage = "namedarray: unable to generate code due to previous errors"

// ErrUnsupportedShape is wrapped by errors about records which cannot be
// derived at all.
var ErrUnsupportedShape = errors.New("unsupported record shape")

// Shape classifies a record by how its fields are selected.
type Shape int

const (
	// ShapeUnit is a record without a field list, like "struct Unit;".
	ShapeUnit Shape = iota
	// ShapeNamed is a record with named fields.
	ShapeNamed
	// ShapePositional is a tuple-like record whose fields are selected by
	// their positions.
	ShapePositional
)

func (s Shape) String() string {
	switch s {
	case ShapeUnit:
		return "unit"
	case ShapeNamed:
		return "named"
	case ShapePositional:
		return "positional"
	}
	return "Shape(" + strconv.Itoa(int(s)) + ")"
}

// SelectorKind is the kind of a [Selector].
type SelectorKind int

const (
	ByName SelectorKind = iota + 1
	ByPosition
)

// Selector selects a field of a record either by name or by position.
type Selector struct {
	Kind     SelectorKind
	Name     string
	Position int
}

// Named returns a selector for the named field.
func Named(name string) Selector {
	return Selector{Kind: ByName, Name: name}
}

// Positional returns a selector for the field at the zero-based position.
func Positional(pos int) Selector {
	return Selector{Kind: ByPosition, Position: pos}
}

// String returns the name of a named selector or the decimal position of a
// positional one.
func (s Selector) String() string {
	if s.Kind == ByPosition {
		return strconv.Itoa(s.Position)
	}
	return s.Name
}

// Field describes a field of a record.
type Field struct {
	Selector

	// Type is the written form of the field type. It is compared by text.
	Type string

	// Pos and End locate the field type in the source, if known.
	Pos, End token.Pos
}

// Record describes a record type. Fields are in declaration order.
type Record struct {
	Name   string
	Shape  Shape
	Fields []Field
}

// Diagnostic reports a field whose type differs from the first field.
type Diagnostic struct {
	Field   Field
	Want    string
	Message string
}

func (d Diagnostic) Error() string  { return d.Message }
func (d Diagnostic) Pos() token.Pos { return d.Field.Pos }
func (d Diagnostic) End() token.Pos { return d.Field.End }

// IndexError is the failure of an index out of bounds. Its message is the
// same as the panic message of the generated accessors.
type IndexError struct {
	Len   int
	Index int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf(OutOfBoundsFormat, e.Len, e.Index)
}
