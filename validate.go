package namedarray

import "fmt"

// Outcome is the result of [Validate]. It is valid if there are no
// diagnostics. Elem is the type of the first field either way.
type Outcome struct {
	Elem        string
	Diagnostics []Diagnostic
}

// Valid reports whether all fields have the same type.
func (o Outcome) Valid() bool { return len(o.Diagnostics) == 0 }

// Validate checks that all fields have the same type signature as the first
// field. It reports every mismatching field rather than stopping at the first
// one.
//
// Signatures are equal only if they are written identically. Validate cannot
// tell that two different spellings refer to the same type.
func Validate(fields []Field) Outcome {
	if len(fields) == 0 {
		return Outcome{}
	}

	want := fields[0].Type
	var diags []Diagnostic
	for _, f := range fields[1:] {
		if f.Type == want {
			continue
		}
		diags = append(diags, Diagnostic{
			Field:   f,
			Want:    want,
			Message: fmt.Sprintf("all fields must have the same type %s; got %s", want, f.Type),
		})
	}
	return Outcome{Elem: want, Diagnostics: diags}
}
