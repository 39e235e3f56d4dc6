package stl

import (
	"github.com/philipparndt/flyview/pkg/geometry"
	"github.com/philipparndt/flyview/pkg/linalg"
)

// Mesh is an unindexed triangle list read from an STL file. Every vertex
// carries the normal of its facet.
type Mesh struct {
	Name      string
	Positions []linalg.Scalar // x, y, z per vertex
	Normals   []linalg.Scalar // x, y, z per vertex
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.Positions) / 9
}

// VertexCount returns the number of vertices in the mesh
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// Bounds returns the bounding box of all vertices. An empty mesh has none.
func (m *Mesh) Bounds() (geometry.Bounds3, bool) {
	if len(m.Positions) < 3 {
		return geometry.Bounds3{}, false
	}
	b := geometry.NewBoxBounds(linalg.Vec3(m.Positions[0], m.Positions[1], m.Positions[2]))
	b.ExtendFlat(m.Positions[3:])
	return b, true
}

// addFacet appends a triangle. A zero normal, which many exporters write,
// is replaced by the normal of the winding.
func (m *Mesh) addFacet(normal linalg.Vector3, v1, v2, v3 linalg.Vector3) {
	n, ok := normal.Normalize()
	if !ok {
		n, _ = linalg.Cross(v2.Sub(v1), v3.Sub(v1)).Normalize()
	}
	for _, v := range [3]linalg.Vector3{v1, v2, v3} {
		m.Positions = append(m.Positions, v.At(0), v.At(1), v.At(2))
		m.Normals = append(m.Normals, n.At(0), n.At(1), n.At(2))
	}
}

// Triangle returns the corners of triangle i
func (m *Mesh) Triangle(i int) (v1, v2, v3 linalg.Vector3) {
	p := m.Positions[i*9 : i*9+9]
	return linalg.Vec3(p[0], p[1], p[2]), linalg.Vec3(p[3], p[4], p[5]), linalg.Vec3(p[6], p[7], p[8])
}
