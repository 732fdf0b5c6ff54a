package typeinfo

import (
	"go/types"
)

// Type describes a type information. It holds information of [types.Type] that
// is necessary to derive accessors of a record.
type Type struct {
	T types.Type

	Struct *types.Struct
	Named  *types.Named
}

func (t Type) Type() types.Type { return t.T }
func (t Type) String() string   { return t.T.String() }

func (t Type) IsStruct() bool { return t.Struct != nil }
func (t Type) IsNamed() bool  { return t.Named != nil }

// IsValid reports whether the type was resolved. A type expression which
// failed to type-check has the invalid type.
func (t Type) IsValid() bool {
	return t.T != nil && t.T != types.Typ[types.Invalid]
}

// Identical reports whether t and u are identical types. Invalid types are
// never identical to anything.
func (t Type) Identical(u Type) bool {
	if !t.IsValid() || !u.IsValid() {
		return false
	}
	return types.Identical(t.T, u.T)
}

// TypeOf inspects the given type and returns a new [Type]. A nil type results
// in an invalid [Type].
func TypeOf(t types.Type) Type {
	if t == nil {
		return Type{T: types.Typ[types.Invalid]}
	}

	switch tt := types.Unalias(t).(type) {
	case *types.Struct:
		return Type{T: t, Struct: tt}
	case *types.Named:
		info := TypeOf(tt.Underlying())
		info.T = t
		info.Named = tt
		return info
	}
	return Type{T: t}
}

// Method returns the method with the given name declared on the named type,
// with either a value or a pointer receiver. If the type is not a named type
// or the method does not exist, it returns nil and false.
func (t Type) Method(name string) (*types.Func, bool) {
	if !t.IsNamed() {
		return nil, false
	}

	for method := range t.Named.Methods() {
		if method.Name() == name {
			return method, true
		}
	}

	return nil, false
}
