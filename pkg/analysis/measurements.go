// Package analysis measures triangle meshes.
package analysis

import (
	"math"
	"sort"

	"github.com/philipparndt/flyview/pkg/geometry"
	"github.com/philipparndt/flyview/pkg/linalg"
	"github.com/philipparndt/flyview/pkg/stl"
)

// Edge is one side of a triangle
type Edge struct {
	Start    linalg.Vector3
	End      linalg.Vector3
	Length   linalg.Scalar
	Triangle int
}

// Result contains the measurements of a mesh
type Result struct {
	Bounds        geometry.Bounds3
	TriangleCount int
	SurfaceArea   linalg.Scalar
	MinEdgeLength linalg.Scalar
	MaxEdgeLength linalg.Scalar
	AvgEdgeLength linalg.Scalar
	Edges         []Edge
}

// Analyze measures every triangle of a mesh. Shared edges are counted once
// per triangle.
func Analyze(mesh *stl.Mesh) *Result {
	n := mesh.TriangleCount()
	result := &Result{
		TriangleCount: n,
		Edges:         make([]Edge, 0, 3*n),
	}
	if b, ok := mesh.Bounds(); ok {
		result.Bounds = b
	}
	if n == 0 {
		return result
	}

	// accumulate in float64, large meshes lose precision otherwise
	var area, total float64
	result.MinEdgeLength = math.MaxFloat32

	for i := 0; i < n; i++ {
		v1, v2, v3 := mesh.Triangle(i)
		area += float64(linalg.Cross(v2.Sub(v1), v3.Sub(v1)).Length()) / 2

		for _, e := range [3][2]linalg.Vector3{{v1, v2}, {v2, v3}, {v3, v1}} {
			length := e[1].Sub(e[0]).Length()
			result.Edges = append(result.Edges, Edge{Start: e[0], End: e[1], Length: length, Triangle: i})

			total += float64(length)
			result.MinEdgeLength = min(result.MinEdgeLength, length)
			result.MaxEdgeLength = max(result.MaxEdgeLength, length)
		}
	}

	result.SurfaceArea = linalg.Scalar(area)
	result.AvgEdgeLength = linalg.Scalar(total / float64(len(result.Edges)))
	return result
}

// EdgeCount returns the number of triangle edges
func (r *Result) EdgeCount() int {
	return len(r.Edges)
}

// EdgesByLength returns the edges whose length lies in [minLength, maxLength]
func (r *Result) EdgesByLength(minLength, maxLength linalg.Scalar) []Edge {
	var edges []Edge
	for _, e := range r.Edges {
		if e.Length >= minLength && e.Length <= maxLength {
			edges = append(edges, e)
		}
	}
	return edges
}

// LongestEdges returns up to count edges, longest first
func (r *Result) LongestEdges(count int) []Edge {
	return r.sorted(count, func(a, b Edge) bool { return a.Length > b.Length })
}

// ShortestEdges returns up to count edges, shortest first
func (r *Result) ShortestEdges(count int) []Edge {
	return r.sorted(count, func(a, b Edge) bool { return a.Length < b.Length })
}

func (r *Result) sorted(count int, less func(a, b Edge) bool) []Edge {
	edges := make([]Edge, len(r.Edges))
	copy(edges, r.Edges)
	sort.SliceStable(edges, func(i, j int) bool { return less(edges[i], edges[j]) })
	return edges[:min(count, len(edges))]
}

// NearestVertex returns the mesh vertex closest to point and its distance.
// It reports false for an empty mesh.
func NearestVertex(mesh *stl.Mesh, point linalg.Vector3) (linalg.Vector3, linalg.Scalar, bool) {
	var nearest linalg.Vector3
	best := linalg.Scalar(math.MaxFloat32)
	found := false

	p := mesh.Positions
	for i := 0; i+2 < len(p); i += 3 {
		v := linalg.Vec3(p[i], p[i+1], p[i+2])
		if d := v.Sub(point).Length(); d < best {
			nearest, best, found = v, d, true
		}
	}
	return nearest, best, found
}
