package namedarray

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// AccessorKind distinguishes the read accessor from the write accessor.
type AccessorKind int

const (
	Read AccessorKind = iota + 1
	Write
)

func (k AccessorKind) String() string {
	switch k {
	case Read:
		return "read"
	case Write:
		return "write"
	}
	return fmt.Sprintf("AccessorKind(%d)", int(k))
}

// Accessor specifies an accessor to generate. Table maps each index to the
// selector of the field at the index.
type Accessor struct {
	Kind  AccessorKind
	Elem  string
	Table []Selector
	Stub  bool
}

// Len returns the number of valid indices.
func (a Accessor) Len() int { return len(a.Table) }

// Format returns the out-of-bounds message with the length of the dispatch
// table filled in, leaving a %d verb for the index given at run time.
func (a Accessor) Format() string {
	return strings.Replace(OutOfBoundsFormat, "%d", strconv.Itoa(len(a.Table)), 1)
}

// Message returns the message of the failure when the accessor is called with
// the given index. It returns "" if the index is valid.
func (a Accessor) Message(index int) string {
	if a.Stub {
		return StubMessage
	}
	if 0 <= index && index < len(a.Table) {
		return ""
	}
	return (&IndexError{Len: len(a.Table), Index: index}).Error()
}

// Artifact is the generated accessor pair of a record.
type Artifact struct {
	Record string
	Len    int
	Elem   string
	Read   Accessor
	Write  Accessor

	// Stub is true if the accessors were generated after validation failure.
	// Then they always fail with [StubMessage].
	Stub bool
}

// Resolve evaluates the dispatch table as the generated accessors would. It
// returns the selector of the field at the index, or an [*IndexError] if the
// index is out of bounds. A stub artifact always fails.
func (a Artifact) Resolve(index int) (Selector, error) {
	if a.Stub {
		return Selector{}, errors.New(StubMessage)
	}
	if index < 0 || index >= len(a.Read.Table) {
		return Selector{}, &IndexError{Len: len(a.Read.Table), Index: index}
	}
	return a.Read.Table[index], nil
}

// Generate builds the accessors of the record from its extracted fields and
// the validated element type. Index i selects fields[i].
func Generate(rec Record, fields []Field, elem string) Artifact {
	table := make([]Selector, len(fields))
	for i, f := range fields {
		table[i] = f.Selector
	}
	return Artifact{
		Record: rec.Name,
		Len:    len(table),
		Elem:   elem,
		Read:   Accessor{Kind: Read, Elem: elem, Table: table},
		Write:  Accessor{Kind: Write, Elem: elem, Table: table},
	}
}

// Recover builds stub accessors for a record which failed validation. The
// element type is the type of the first field, so that the stub signatures
// match what the user most likely intended.
func Recover(rec Record, fields []Field, diags []Diagnostic) Artifact {
	elem := ""
	if len(fields) != 0 {
		elem = fields[0].Type
	} else if len(diags) != 0 {
		elem = diags[0].Want
	}

	a := Generate(rec, fields, elem)
	a.Stub = true
	a.Read.Stub = true
	a.Write.Stub = true
	return a
}

// Result is the outcome of [Derive]. Diagnostics is non-empty if and only if
// the artifact is a stub.
type Result struct {
	Artifact    Artifact
	Diagnostics []Diagnostic
}

// Stubbed reports whether the artifact is a stub because of diagnostics.
func (r Result) Stubbed() bool { return r.Artifact.Stub }

// Derive runs the whole transformation for a record: extraction, validation,
// and then either generation or recovery. Structural errors are returned as an
// error, and no artifact is produced. Validation errors are returned as
// diagnostics along with a stub artifact.
//
// Derive is pure. It may be called concurrently for different records.
func Derive(rec Record) (Result, error) {
	fields, err := Extract(rec)
	if err != nil {
		return Result{}, err
	}

	outcome := Validate(fields)
	if !outcome.Valid() {
		return Result{
			Artifact:    Recover(rec, fields, outcome.Diagnostics),
			Diagnostics: outcome.Diagnostics,
		}, nil
	}

	return Result{Artifact: Generate(rec, fields, outcome.Elem)}, nil
}
