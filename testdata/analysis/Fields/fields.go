package testdata

import "time"

type Inner struct{ V int }

//namedarray:derive
type embedded struct { // ok
	Inner
	Other Inner
}

//namedarray:derive
type embeddedPtr struct {
	*Inner
	Other Inner // want `embeddedPtr.Other: all fields must have the same type \*Inner; got Inner`
}

//namedarray:derive
type embeddedQualified struct { // ok
	time.Duration
	Timeout time.Duration
}

//namedarray:derive
type blank struct {
	A int
	_ int // want `cannot index blank field of blank`
	B int
}

//namedarray:derive
type tagged struct { // ok
	A int `json:"a"`
	B int `json:"b"`
}
