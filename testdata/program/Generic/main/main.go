package main

import (
	"os"
	"strconv"
)

// fmt is not the fmt package. Generated code must import it by another name.
var fmt = "fmt"

//namedarray:derive read=Get write=Ref len=Size
type Pair[T any] struct {
	First, Second T
}

// The type parameter must not be shadowed by the receiver.
//
//namedarray:derive len=-
type Box[r any] struct {
	x, y r
}

func say(s string) {
	_, _ = os.Stdout.WriteString(s + "\n")
}

func main() {
	p := Pair[int]{First: 10, Second: 20}
	*p.Ref(0) += 1
	for i := 0; i < p.Size(); i++ {
		say(strconv.Itoa(p.Get(i)))
	}

	b := Box[string]{x: "x", y: fmt}
	say(b.At(0) + *b.Ptr(1))

	defer func() { say(recover().(string)) }()
	p.Get(2)
}
