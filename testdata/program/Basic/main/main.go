package main

import "fmt"

//namedarray:derive
type ABC struct {
	A, B, C uint32
}

func main() {
	abc := ABC{A: 1, B: 2, C: 3}
	for i := range abc.Len() {
		fmt.Println(abc.At(i))
	}

	*abc.Ptr(1) = 20
	fmt.Println(abc.B)

	fmt.Println(catch(func() { abc.At(3) }))
	fmt.Println(catch(func() { abc.Ptr(-1) }))
}

func catch(f func()) (msg any) {
	defer func() { msg = recover() }()
	f()
	return nil
}
