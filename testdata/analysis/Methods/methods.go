package testdata

//namedarray:derive read=Get write=Ref len=Size
type renamed struct{ A, B int } // ok

//namedarray:derive len=-
type noLen struct{ A, B int } // ok

func (noLen) Len() int { return 0 }

//namedarray:derive
type declared struct{ A, B int } // want `cannot generate method declared.Len; already declared at .+methods.go:14:17`

func (declared) Len() int { return 0 }

//namedarray:derive
type ptrDeclared struct{ A, B int } // want `cannot generate method ptrDeclared.At; already declared at .+`

func (*ptrDeclared) At(int) int { return 0 }

//namedarray:derive
type fieldAt struct{ At, B int } // want `cannot generate method fieldAt.At; field At has the same name`
