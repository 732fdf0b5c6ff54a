package testdata

import (
	"sync/atomic"
	. "sync/atomic"
	"time"
)

//namedarray:derive
type same struct { // ok
	A, B int
	C    int
}

//namedarray:derive
type mixed struct {
	A int
	B string // want `mixed.B: all fields must have the same type int; got string`
	C int
	D float64 // want `mixed.D: all fields must have the same type int; got float64`
	E int
}

type Duration = time.Duration

// Different spellings of the same type are still different.
//
//namedarray:derive
type spelled struct {
	A time.Duration
	B Duration // want `spelled.B: all fields must have the same type time.Duration; got Duration\n\ttime.Duration and Duration are identical types but written differently`
}

//namedarray:derive
type qualified struct {
	A Pointer[int]
	B atomic.Pointer[int] // want `qualified.B: all fields must have the same type Pointer\[int\]; got atomic.Pointer\[int\]\n\tPointer\[int\] and atomic.Pointer\[int\] are identical types`
}

// Spaces are not part of the type.
//
//namedarray:derive
type spaced struct { // ok
	A map[string]int
	B map[string]int
}

//namedarray:derive
type pair[T any] struct { // ok
	First, Second T
}

//namedarray:derive
type mixedPair[T, U any] struct {
	First  T
	Second U // want `mixedPair.Second: all fields must have the same type T; got U`
}
