package stl

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/flyview/pkg/geometry"
	"github.com/philipparndt/flyview/pkg/linalg"
)

const asciiCube = `solid corner piece
  facet normal 0 0 1
    outer loop
      vertex 0 0 1
      vertex 1 0 1
      vertex 0 1 1
    endloop
  endfacet
  facet normal 0 0 0
    outer loop
      vertex 0 0 0
      vertex 0 2 0
      vertex 3 0 0
    endloop
  endfacet
endsolid corner piece
`

func TestDecodeASCII(t *testing.T) {
	mesh, err := Decode(strings.NewReader(asciiCube))
	require.NoError(t, err)

	assert.Equal(t, "corner piece", mesh.Name)
	assert.Equal(t, 2, mesh.TriangleCount())
	assert.Equal(t, 6, mesh.VertexCount())
	assert.Equal(t, []linalg.Scalar{0, 0, 1, 1, 0, 1, 0, 1, 1}, mesh.Positions[:9])
	assert.Equal(t, []linalg.Scalar{0, 0, 1, 0, 0, 1, 0, 0, 1}, mesh.Normals[:9])
}

func TestDecodeASCIIComputesMissingNormals(t *testing.T) {
	mesh, err := Decode(strings.NewReader(asciiCube))
	require.NoError(t, err)

	// (0,2,0) × (3,0,0) points down
	for v := 3; v < 6; v++ {
		n := linalg.Vec3(mesh.Normals[v*3], mesh.Normals[v*3+1], mesh.Normals[v*3+2])
		assert.True(t, n.ApproxEqual(linalg.Vec3(0, 0, -1), 1e-6), "vertex %d normal %v", v, n)
	}
}

func TestDecodeASCIIErrors(t *testing.T) {
	cases := map[string]string{
		"short facet":  "solid x\nfacet normal 0 0 1\nvertex 0 0 0\nvertex 1 0 0\nendfacet\n",
		"bad number":   "solid x\nfacet normal 0 0 1\nvertex 0 zero 0\n",
		"short vertex": "solid x\nfacet normal 0 0 1\nvertex 0 0\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(src))
			assert.Error(t, err)
		})
	}
}

func writeBinary(t *testing.T, name string, facets []facet) []byte {
	t.Helper()
	var buf bytes.Buffer
	header := make([]byte, 80)
	copy(header, name)
	buf.Write(header)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(len(facets))))
	for _, f := range facets {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, f))
	}
	return buf.Bytes()
}

func TestDecodeBinary(t *testing.T) {
	data := writeBinary(t, "part", []facet{
		{Normal: [3]float32{1, 0, 0}, Vertices: [3][3]float32{{1, 0, 0}, {1, 1, 0}, {1, 0, 1}}},
		{Vertices: [3][3]float32{{-1, -2, -3}, {0, 0, 0}, {4, 5, 6}}},
	})

	mesh, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "part", mesh.Name)
	assert.Equal(t, 2, mesh.TriangleCount())
	assert.Equal(t, []linalg.Scalar{1, 0, 0}, mesh.Normals[:3])

	b, ok := mesh.Bounds()
	require.True(t, ok)
	assert.Equal(t, geometry.BoundsOf(linalg.Vec3(-1, -2, -3), linalg.Vec3(4, 5, 6)), b)
}

func TestDecodeBinaryTruncated(t *testing.T) {
	data := writeBinary(t, "part", []facet{{}, {}})

	_, err := Decode(bytes.NewReader(data[:len(data)-10]))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "triangle 1")
}

func TestDecodeBinaryHugeCountWithoutData(t *testing.T) {
	data := make([]byte, 84)
	binary.LittleEndian.PutUint32(data[80:], 0xFFFFFFFF)

	_, err := Decode(bytes.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "triangle 0")
}

func TestDecodeBinaryWithSolidHeader(t *testing.T) {
	data := writeBinary(t, "solid exported by cad", []facet{
		{Normal: [3]float32{0, 0, 1}, Vertices: [3][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}},
	})

	mesh, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1, mesh.TriangleCount())
	assert.Equal(t, "solid exported by cad", mesh.Name)
}

func TestDecodeTruncatedBinaryWithSolidHeader(t *testing.T) {
	data := writeBinary(t, "solid exported by cad", []facet{{}, {}})

	_, err := Decode(bytes.NewReader(data[:len(data)-10]))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "triangle 1")
}

func TestDecodeEmptyASCIISolid(t *testing.T) {
	mesh, err := Decode(strings.NewReader("solid empty\nendsolid empty\n"))
	require.NoError(t, err)
	assert.Equal(t, "empty", mesh.Name)
	assert.Zero(t, mesh.TriangleCount())
}

func TestDecodeEmpty(t *testing.T) {
	_, err := Decode(bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.stl")
	require.NoError(t, os.WriteFile(path, []byte(asciiCube), 0o644))

	mesh, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, 2, mesh.TriangleCount())

	_, err = Parse(filepath.Join(t.TempDir(), "missing.stl"))
	assert.Error(t, err)
}

func TestEmptyMeshHasNoBounds(t *testing.T) {
	_, ok := (&Mesh{}).Bounds()
	assert.False(t, ok)
}
