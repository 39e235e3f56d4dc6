package linalg

import "github.com/chewxy/math32"

// Vector is an immutable point, direction or color with len(A) components
type Vector[A Array] struct {
	c A
}

// Common vector shapes
type (
	Vector2 = Vector[[2]Scalar]
	Vector3 = Vector[[3]Scalar]
	Vector4 = Vector[[4]Scalar]
)

// Vec creates a vector from its component array
func Vec[A Array](c A) Vector[A] {
	return Vector[A]{c: c}
}

// Vec2 creates a new 2D vector
func Vec2(x, y Scalar) Vector2 {
	return Vector2{c: [2]Scalar{x, y}}
}

// Vec3 creates a new 3D vector
func Vec3(x, y, z Scalar) Vector3 {
	return Vector3{c: [3]Scalar{x, y, z}}
}

// Vec4 creates a new 4D vector
func Vec4(x, y, z, w Scalar) Vector4 {
	return Vector4{c: [4]Scalar{x, y, z, w}}
}

// Dim returns the number of components
func (v Vector[A]) Dim() int {
	return len(v.c)
}

// At returns component i
func (v Vector[A]) At(i int) Scalar {
	return v.c[i]
}

// Array returns a copy of the components
func (v Vector[A]) Array() A {
	return v.c
}

// With returns a copy of v with component i set to s
func (v Vector[A]) With(i int, s Scalar) Vector[A] {
	v.c[i] = s
	return v
}

// Add returns the sum of two vectors
func (v Vector[A]) Add(w Vector[A]) Vector[A] {
	for i := 0; i < len(v.c); i++ {
		v.c[i] += w.c[i]
	}
	return v
}

// Sub returns the difference between two vectors
func (v Vector[A]) Sub(w Vector[A]) Vector[A] {
	for i := 0; i < len(v.c); i++ {
		v.c[i] -= w.c[i]
	}
	return v
}

// Scale multiplies the vector by a scalar
func (v Vector[A]) Scale(s Scalar) Vector[A] {
	for i := 0; i < len(v.c); i++ {
		v.c[i] *= s
	}
	return v
}

// Neg returns the vector pointing the other way
func (v Vector[A]) Neg() Vector[A] {
	return v.Scale(-1)
}

// Dot returns the sum of the component-wise products
func (v Vector[A]) Dot(w Vector[A]) Scalar {
	sum := v.c[0] * w.c[0]
	for i := 1; i < len(v.c); i++ {
		sum += v.c[i] * w.c[i]
	}
	return sum
}

// Length returns the magnitude of the vector
func (v Vector[A]) Length() Scalar {
	return math32.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector in the same direction. It reports false
// for the zero vector, which has no direction.
func (v Vector[A]) Normalize() (Vector[A], bool) {
	lenSq := v.Dot(v)
	if lenSq == 0 {
		return Vector[A]{}, false
	}
	return v.Scale(1 / math32.Sqrt(lenSq)), true
}

// Min returns a vector with the minimum components of two vectors
func (v Vector[A]) Min(w Vector[A]) Vector[A] {
	for i := 0; i < len(v.c); i++ {
		if w.c[i] < v.c[i] {
			v.c[i] = w.c[i]
		}
	}
	return v
}

// Max returns a vector with the maximum components of two vectors
func (v Vector[A]) Max(w Vector[A]) Vector[A] {
	for i := 0; i < len(v.c); i++ {
		if w.c[i] > v.c[i] {
			v.c[i] = w.c[i]
		}
	}
	return v
}

// ApproxEqual reports whether every component differs by at most tol
func (v Vector[A]) ApproxEqual(w Vector[A], tol Scalar) bool {
	for i := 0; i < len(v.c); i++ {
		if math32.Abs(v.c[i]-w.c[i]) > tol {
			return false
		}
	}
	return true
}

// Resize copies v into a vector of another dimension, dropping surplus
// components or filling missing ones with zero.
func Resize[B Array, A Array](v Vector[A]) Vector[B] {
	var out Vector[B]
	for i := 0; i < len(out.c) && i < len(v.c); i++ {
		out.c[i] = v.c[i]
	}
	return out
}

// Point returns the homogeneous form (x, y, z, 1) of a 3D point
func Point(v Vector3) Vector4 {
	return Resize[[4]Scalar](v).With(3, 1)
}

// Cross returns a vector orthogonal to all n-1 given vectors of dimension n.
//
// Component i is the signed minor obtained by dropping component i from the
// stacked inputs, so for n = 3 this is the ordinary cross product a × b. The
// result is the zero vector when the inputs are linearly dependent.
func Cross[A Array](vs ...Vector[A]) Vector[A] {
	var out Vector[A]
	n := len(out.c)
	mustDim("Cross", n-1, len(vs))
	for i := 0; i < n; i++ {
		minor := leibniz(n-1, func(col, row int) Scalar {
			if col >= i {
				col++
			}
			return vs[row].c[col]
		})
		if i%2 == 1 {
			minor = -minor
		}
		out.c[i] = minor
	}
	return out
}
