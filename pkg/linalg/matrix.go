package linalg

import "github.com/chewxy/math32"

// Matrix is an immutable grid of len(G) columns holding len(C) rows each.
// The first index selects the column, the second the row within it, which
// is the layout OpenGL style backends expect.
type Matrix[C Array, G Columns[C]] struct {
	cols G
}

// Common matrix shapes
type (
	Matrix2 = Matrix[[2]Scalar, [2][2]Scalar]
	Matrix3 = Matrix[[3]Scalar, [3][3]Scalar]
	Matrix4 = Matrix[[4]Scalar, [4][4]Scalar]
)

// Mat creates a matrix from its columns
func Mat[C Array, G Columns[C]](cols G) Matrix[C, G] {
	return Matrix[C, G]{cols: cols}
}

// Mat3 creates a 3x3 matrix from its columns
func Mat3(cols [3][3]Scalar) Matrix3 {
	return Matrix3{cols: cols}
}

// Mat4 creates a 4x4 matrix from its columns
func Mat4(cols [4][4]Scalar) Matrix4 {
	return Matrix4{cols: cols}
}

// Identity returns the square matrix with ones on the diagonal
func Identity[C Array, G Columns[C]]() Matrix[C, G] {
	var m Matrix[C, G]
	m.mustSquare("Identity")
	for n := 0; n < len(m.cols); n++ {
		col := m.cols[n]
		col[n] = 1
		m.cols[n] = col
	}
	return m
}

// Identity3 returns the 3x3 identity matrix
func Identity3() Matrix3 {
	return Identity[[3]Scalar, [3][3]Scalar]()
}

// Identity4 returns the 4x4 identity matrix
func Identity4() Matrix4 {
	return Identity[[4]Scalar, [4][4]Scalar]()
}

// Rows returns the number of rows
func (m Matrix[C, G]) Rows() int {
	return dim[C]()
}

// Cols returns the number of columns
func (m Matrix[C, G]) Cols() int {
	return len(m.cols)
}

// At returns the element in column col and row row
func (m Matrix[C, G]) At(col, row int) Scalar {
	return m.cols[col][row]
}

// With returns a copy of m with the element at (col, row) set to s
func (m Matrix[C, G]) With(col, row int, s Scalar) Matrix[C, G] {
	c := m.cols[col]
	c[row] = s
	m.cols[col] = c
	return m
}

// Col returns column n as a vector
func (m Matrix[C, G]) Col(n int) Vector[C] {
	return Vector[C]{c: m.cols[n]}
}

// Array returns a copy of the columns
func (m Matrix[C, G]) Array() G {
	return m.cols
}

// Floats returns the elements column by column
func (m Matrix[C, G]) Floats() []Scalar {
	rows := m.Rows()
	out := make([]Scalar, 0, rows*len(m.cols))
	for n := 0; n < len(m.cols); n++ {
		col := m.cols[n]
		for r := 0; r < rows; r++ {
			out = append(out, col[r])
		}
	}
	return out
}

// ApproxEqual reports whether every element differs by at most tol
func (m Matrix[C, G]) ApproxEqual(o Matrix[C, G], tol Scalar) bool {
	for n := 0; n < len(m.cols); n++ {
		if !m.Col(n).ApproxEqual(o.Col(n), tol) {
			return false
		}
	}
	return true
}

func (m Matrix[C, G]) mustSquare(op string) {
	mustDim(op, m.Rows(), len(m.cols))
}

// Transposed swaps rows and columns of a square matrix
func (m Matrix[C, G]) Transposed() Matrix[C, G] {
	m.mustSquare("Transposed")
	return Transpose[C, G](m)
}

// Transpose returns the transpose of m as a matrix of shape (TC, TG). The
// destination must have len(G) rows and len(C) columns.
func Transpose[TC Array, TG Columns[TC], C Array, G Columns[C]](m Matrix[C, G]) Matrix[TC, TG] {
	var t Matrix[TC, TG]
	mustDim("Transpose rows", len(m.cols), t.Rows())
	mustDim("Transpose cols", m.Rows(), len(t.cols))
	for n := 0; n < len(t.cols); n++ {
		col := t.cols[n]
		for r := 0; r < len(col); r++ {
			col[r] = m.cols[r][n]
		}
		t.cols[n] = col
	}
	return t
}

// UpperLeft returns the top-left corner of m with the shape of (SC, SG)
func UpperLeft[SC Array, SG Columns[SC], C Array, G Columns[C]](m Matrix[C, G]) Matrix[SC, SG] {
	var s Matrix[SC, SG]
	if s.Rows() > m.Rows() {
		panic(&DimensionError{Op: "UpperLeft rows", Want: m.Rows(), Got: s.Rows()})
	}
	if len(s.cols) > len(m.cols) {
		panic(&DimensionError{Op: "UpperLeft cols", Want: len(m.cols), Got: len(s.cols)})
	}
	for n := 0; n < len(s.cols); n++ {
		col := s.cols[n]
		for r := 0; r < len(col); r++ {
			col[r] = m.cols[n][r]
		}
		s.cols[n] = col
	}
	return s
}

// UpperLeft3 returns the rotational 3x3 part of a 4x4 transform
func UpperLeft3(m Matrix4) Matrix3 {
	return UpperLeft[[3]Scalar, [3][3]Scalar](m)
}

// Mul returns the product m·o of two square matrices. Each element is the
// dot product of a row of m, taken as a column of its transpose, with a
// column of o.
func (m Matrix[C, G]) Mul(o Matrix[C, G]) Matrix[C, G] {
	lhs := m.Transposed()
	var out Matrix[C, G]
	for n := 0; n < len(out.cols); n++ {
		col := out.cols[n]
		for l := 0; l < len(col); l++ {
			col[l] = lhs.Col(l).Dot(o.Col(n))
		}
		out.cols[n] = col
	}
	return out
}

// MulVec returns the product m·v of a square matrix and a vector
func (m Matrix[C, G]) MulVec(v Vector[C]) Vector[C] {
	m.mustSquare("MulVec")
	return Apply(m, v)
}

// Product returns a·b for an L×M matrix a and an M×N matrix b. The result
// grid RG must hold as many columns as b.
func Product[RG Columns[L], L Array, LG Columns[L], M Array, MG Columns[M]](a Matrix[L, LG], b Matrix[M, MG]) Matrix[L, RG] {
	var out Matrix[L, RG]
	mustDim("Product inner", len(a.cols), b.Rows())
	mustDim("Product cols", len(b.cols), len(out.cols))
	for n := 0; n < len(out.cols); n++ {
		col := out.cols[n]
		for l := 0; l < len(col); l++ {
			var sum Scalar
			for k := 0; k < len(a.cols); k++ {
				sum += a.cols[k][l] * b.cols[n][k]
			}
			col[l] = sum
		}
		out.cols[n] = col
	}
	return out
}

// Apply returns m·v for an L×M matrix m and a vector of dimension M
func Apply[L Array, G Columns[L], M Array](m Matrix[L, G], v Vector[M]) Vector[L] {
	mustDim("Apply", len(m.cols), len(v.c))
	var out Vector[L]
	for n := 0; n < len(m.cols); n++ {
		col := m.cols[n]
		for l := 0; l < len(out.c); l++ {
			out.c[l] += col[l] * v.c[n]
		}
	}
	return out
}

// Det returns the determinant of a square matrix
func (m Matrix[C, G]) Det() Scalar {
	m.mustSquare("Det")
	return leibniz(len(m.cols), m.At)
}

// RotationX returns the 3x3 rotation by angle radians around the x axis
func RotationX(angle Scalar) Matrix3 {
	s, c := math32.Sin(angle), math32.Cos(angle)
	return Mat3([3][3]Scalar{
		{1, 0, 0},
		{0, c, s},
		{0, -s, c},
	})
}

// RotationY returns the 3x3 rotation by angle radians around the y axis
func RotationY(angle Scalar) Matrix3 {
	s, c := math32.Sin(angle), math32.Cos(angle)
	return Mat3([3][3]Scalar{
		{c, 0, -s},
		{0, 1, 0},
		{s, 0, c},
	})
}
