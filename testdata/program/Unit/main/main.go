package main

//namedarray:derive
type Unit struct{}

func main() {
	panic("namedarray will fail")
}
