package namedarray

import (
	"errors"
	"fmt"
	"slices"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Extract returns the fields of the record in declaration order. It fails with
// [ErrUnsupportedShape] if the record is unit-shaped or has no fields.
//
// Every redeclared name is reported, in the order of the first declarations.
// Named fields keep their names. Positional fields are selected by their
// positions regardless of the given selectors. Types are not compared here;
// see [Validate].
func Extract(rec Record) ([]Field, error) {
	switch rec.Shape {
	case ShapeNamed, ShapePositional:
	case ShapeUnit:
		return nil, fmt.Errorf("%w: %s has no fields; only structs with named or positional fields are supported", ErrUnsupportedShape, rec.Name)
	default:
		return nil, fmt.Errorf("%w: %s has unknown shape %v", ErrUnsupportedShape, rec.Name, rec.Shape)
	}

	if len(rec.Fields) == 0 {
		return nil, fmt.Errorf("%w: %s must have at least one field", ErrUnsupportedShape, rec.Name)
	}

	fields := slices.Clone(rec.Fields)
	if rec.Shape == ShapePositional {
		for i := range fields {
			fields[i].Selector = Positional(i)
		}
		return fields, nil
	}

	// Selectors are unique. The map remembers the names in the order of their
	// first declarations, so that redeclarations are reported in that order.
	decls := linkedhashmap.New() // name -> []int
	for i, f := range fields {
		if f.Kind != ByName {
			return nil, fmt.Errorf("%w: %s mixes named and positional fields", ErrUnsupportedShape, rec.Name)
		}
		if f.Name == "" || f.Name == "_" {
			return nil, fmt.Errorf("%w: %s has a field at %d which cannot be selected by name", ErrUnsupportedShape, rec.Name, i)
		}
		indices, _ := decls.Get(f.Name)
		idx, _ := indices.([]int)
		decls.Put(f.Name, append(idx, i))
	}

	var errs error
	it := decls.Iterator()
	for it.Next() {
		indices := it.Value().([]int)
		for _, i := range indices[1:] {
			errs = errors.Join(errs, fmt.Errorf("%s: field %s redeclared at %d; first declared at %d", rec.Name, it.Key(), i, indices[0]))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return fields, nil
}
