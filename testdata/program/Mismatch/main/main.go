package main

import "fmt"

//namedarray:derive
type Mixed struct {
	A int
	B string
	C int
	D float64
}

func main() {
	m := Mixed{}
	fmt.Println(m.Len())

	defer func() { fmt.Println(recover()) }()
	m.At(0)
}
