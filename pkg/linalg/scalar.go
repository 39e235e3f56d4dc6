// Package linalg implements fixed-size vector and matrix arithmetic whose
// dimensions are part of the type.
//
// A Vector is built on an array type, so Vector[[3]Scalar] and
// Vector[[4]Scalar] are distinct types and adding one to the other does not
// compile. A Matrix is built on a column array type and a grid of such
// columns. Relations between dimensions that Go generics cannot express
// (a square matrix, the inner dimension of a product, the shape of a
// transpose) are checked when the operation runs and panic with a
// *DimensionError.
package linalg

import "fmt"

// Scalar is the element type of every vector and matrix
type Scalar = float32

// MaxDim is the largest dimension an Array may have
const MaxDim = 8

// Array is the set of component arrays a Vector can be built on
type Array interface {
	~[1]Scalar | ~[2]Scalar | ~[3]Scalar | ~[4]Scalar |
		~[5]Scalar | ~[6]Scalar | ~[7]Scalar | ~[8]Scalar
}

// Columns is the set of column grids a Matrix with column type C can be built on
type Columns[C Array] interface {
	~[1]C | ~[2]C | ~[3]C | ~[4]C | ~[5]C | ~[6]C | ~[7]C | ~[8]C
}

// DimensionError reports operands whose shapes do not fit the operation.
type DimensionError struct {
	Op   string
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("linalg: %s: dimension mismatch: want %d, got %d", e.Op, e.Want, e.Got)
}

// mustDim panics with a *DimensionError unless want == got.
func mustDim(op string, want, got int) {
	if want != got {
		panic(&DimensionError{Op: op, Want: want, Got: got})
	}
}

func dim[A Array]() int {
	var a A
	return len(a)
}
