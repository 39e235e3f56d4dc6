package geometry

import (
	"fmt"

	"github.com/philipparndt/flyview/pkg/linalg"
)

// BoxBounds represents an axis-aligned bounding box in len(A) dimensions
type BoxBounds[A linalg.Array] struct {
	Min linalg.Vector[A]
	Max linalg.Vector[A]
}

// Bounds3 is the bounding box of a 3D mesh
type Bounds3 = BoxBounds[[3]linalg.Scalar]

// NewBoxBounds creates a degenerate bounding box with both corners on seed
func NewBoxBounds[A linalg.Array](seed linalg.Vector[A]) BoxBounds[A] {
	return BoxBounds[A]{Min: seed, Max: seed}
}

// BoundsOf creates the smallest bounding box containing all given points
func BoundsOf[A linalg.Array](first linalg.Vector[A], rest ...linalg.Vector[A]) BoxBounds[A] {
	b := NewBoxBounds(first)
	for _, p := range rest {
		b.Extend(p)
	}
	return b
}

// Extend expands the bounding box to include a point
func (b *BoxBounds[A]) Extend(point linalg.Vector[A]) {
	for i := 0; i < point.Dim(); i++ {
		p := point.At(i)
		if p < b.Min.At(i) {
			b.Min = b.Min.With(i, p)
		}
		if p > b.Max.At(i) {
			b.Max = b.Max.With(i, p)
		}
	}
}

// ExtendFlat expands the bounding box to include every point of a packed
// coordinate stream such as a mesh position buffer. It panics if the stream
// does not hold a whole number of points.
func (b *BoxBounds[A]) ExtendFlat(coords []linalg.Scalar) {
	n := b.Min.Dim()
	if len(coords)%n != 0 {
		panic(fmt.Sprintf("geometry: %d coordinates do not form %d-dimensional points", len(coords), n))
	}
	for off := 0; off < len(coords); off += n {
		var p linalg.Vector[A]
		for i := 0; i < n; i++ {
			p = p.With(i, coords[off+i])
		}
		b.Extend(p)
	}
}

// Union returns the smallest bounding box containing both boxes
func (b BoxBounds[A]) Union(o BoxBounds[A]) BoxBounds[A] {
	return BoxBounds[A]{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Contains reports whether the point lies inside the box, borders included
func (b BoxBounds[A]) Contains(point linalg.Vector[A]) bool {
	for i := 0; i < point.Dim(); i++ {
		if point.At(i) < b.Min.At(i) || point.At(i) > b.Max.At(i) {
			return false
		}
	}
	return true
}

// Size returns the dimensions of the bounding box
func (b BoxBounds[A]) Size() linalg.Vector[A] {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box
func (b BoxBounds[A]) Center() linalg.Vector[A] {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Diagonal returns the length of the bounding box diagonal
func (b BoxBounds[A]) Diagonal() linalg.Scalar {
	return b.Size().Length()
}

// Volume returns the volume of the bounding box
func (b BoxBounds[A]) Volume() linalg.Scalar {
	size := b.Size()
	v := size.At(0)
	for i := 1; i < size.Dim(); i++ {
		v *= size.At(i)
	}
	return v
}
