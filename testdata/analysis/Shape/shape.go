package testdata

type point struct{ X, Y int }

//namedarray:derive
type unit int // want `unsupported record shape: unit has no fields; only structs with named or positional fields are supported`

//namedarray:derive
type empty struct{} // want `unsupported record shape: empty must have at least one field`

//namedarray:derive
type alias = point // want `cannot derive alias alias; derive the aliased type instead`

//namedarray:derive
type defined point // want `cannot derive defined declared by point; derive the struct type literal instead`

type (
	//namedarray:derive
	grouped struct{ A, B int } // ok

	ungrouped struct{ A, B int }
)
