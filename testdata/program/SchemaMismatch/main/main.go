package main

import "fmt"

func main() {
	m := Mixed{A: 1, B: 2}
	fmt.Println(m.Len())

	defer func() { fmt.Println(recover()) }()
	m.At(0)
}
