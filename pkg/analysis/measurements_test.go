package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/flyview/pkg/linalg"
	"github.com/philipparndt/flyview/pkg/stl"
)

// two right triangles forming a 3 by 4 rectangle in the z=0 plane
const rectangle = `solid rect
facet normal 0 0 1
outer loop
vertex 0 0 0
vertex 3 0 0
vertex 3 4 0
endloop
endfacet
facet normal 0 0 1
outer loop
vertex 0 0 0
vertex 3 4 0
vertex 0 4 0
endloop
endfacet
endsolid rect
`

func rect(t *testing.T) *stl.Mesh {
	t.Helper()
	mesh, err := stl.Decode(strings.NewReader(rectangle))
	require.NoError(t, err)
	return mesh
}

func TestAnalyze(t *testing.T) {
	r := Analyze(rect(t))

	assert.Equal(t, 2, r.TriangleCount)
	assert.Equal(t, 6, r.EdgeCount())
	assert.InDelta(t, 12, r.SurfaceArea, 1e-5)
	assert.Equal(t, linalg.Scalar(3), r.MinEdgeLength)
	assert.Equal(t, linalg.Scalar(5), r.MaxEdgeLength)
	assert.InDelta(t, (3+4+5+5+3+4)/6.0, r.AvgEdgeLength, 1e-5)
	assert.Equal(t, linalg.Vec3(3, 4, 0), r.Bounds.Max)
}

func TestAnalyzeEmpty(t *testing.T) {
	r := Analyze(&stl.Mesh{})

	assert.Zero(t, r.TriangleCount)
	assert.Zero(t, r.EdgeCount())
	assert.Zero(t, r.SurfaceArea)
}

func TestEdgeQueries(t *testing.T) {
	r := Analyze(rect(t))

	longest := r.LongestEdges(2)
	require.Len(t, longest, 2)
	assert.Equal(t, linalg.Scalar(5), longest[0].Length)
	assert.Equal(t, 0, longest[0].Triangle)
	assert.Equal(t, 1, longest[1].Triangle)

	shortest := r.ShortestEdges(100)
	assert.Len(t, shortest, 6)
	assert.Equal(t, linalg.Scalar(3), shortest[0].Length)

	assert.Len(t, r.EdgesByLength(3.5, 4.5), 2)
	assert.Empty(t, r.EdgesByLength(6, 10))
}

func TestNearestVertex(t *testing.T) {
	v, d, ok := NearestVertex(rect(t), linalg.Vec3(2.9, 4.2, 1))
	require.True(t, ok)
	assert.Equal(t, linalg.Vec3(3, 4, 0), v)
	assert.InDelta(t, 1.0247, d, 1e-3)

	_, _, ok = NearestVertex(&stl.Mesh{}, linalg.Vec3(0, 0, 0))
	assert.False(t, ok)
}
