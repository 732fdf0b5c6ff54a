package main

import (
	"fmt"
	"time"
)

func main() {
	c := RGB{Red: 255, Green: 128, Blue: 0}
	for i := range c.Len() {
		fmt.Println(c.At(i))
	}

	t := Triple{F0: time.Second, F1: time.Minute, F2: time.Hour}
	*t.Ref(2) = 2 * time.Hour
	for i := range 3 {
		fmt.Println(t.Get(i))
	}

	defer func() { fmt.Println(recover()) }()
	t.Get(3)
}
