package main

import "fmt"

// The type parameter hides the fmt package in the generated methods.
//
//namedarray:derive
type Pair[fmt any] struct {
	A, B fmt
}

//namedarray:derive
type XY struct {
	X, Y int
}

func main() {
	p := Pair[string]{A: "a", B: "b"}
	fmt.Println(p.At(0), *p.Ptr(1))

	xy := XY{X: 1, Y: 2}
	fmt.Println(xy.At(1))

	defer func() { fmt.Println(recover()) }()
	p.At(2)
}
