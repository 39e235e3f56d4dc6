package raylib

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/philipparndt/flyview/pkg/geometry"
	"github.com/philipparndt/flyview/pkg/linalg"
	"github.com/philipparndt/flyview/pkg/openscad"
	"github.com/philipparndt/flyview/pkg/scene"
	"github.com/philipparndt/flyview/pkg/stl"
)

// Asset is a model resident on the GPU together with its scene description.
// Shape i of Model draws mesh i.
type Asset struct {
	Model *scene.Model

	model     rl.Model
	meshes    []rl.Mesh
	materials []rl.Material
	fallback  *rl.Material
}

// LoadModel loads an OBJ, glTF, IQM or VOX file through raylib, or an STL
// file through the stl package, and uploads it. OpenSCAD sources are
// rendered to STL first.
func LoadModel(path string, lights *scene.Lights, log logrus.FieldLogger) (*Asset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrap(err, "model")
	}

	var m rl.Model
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		mesh, err := stl.Parse(path)
		if err != nil {
			return nil, err
		}
		if m, err = loadMesh(path, mesh); err != nil {
			return nil, err
		}
	case ".scad":
		mesh, err := renderSCAD(path, log)
		if err != nil {
			return nil, err
		}
		if m, err = loadMesh(path, mesh); err != nil {
			return nil, err
		}
	default:
		m = rl.LoadModel(path)
	}
	if m.MeshCount == 0 {
		rl.UnloadModel(m)
		return nil, errors.Errorf("%s: no meshes", path)
	}

	a := &Asset{
		Model:  &scene.Model{Name: filepath.Base(path)},
		model:  m,
		meshes: unsafe.Slice(m.Meshes, m.MeshCount),
	}

	var materials []rl.Material
	if m.MaterialCount > 0 && m.Materials != nil {
		materials = unsafe.Slice(m.Materials, m.MaterialCount)
	}
	var meshMaterial []int32
	if m.MeshMaterial != nil {
		meshMaterial = unsafe.Slice(m.MeshMaterial, m.MeshCount)
	}

	for i, mesh := range a.meshes {
		material := scene.DefaultMaterial()
		var rm rl.Material
		if i < len(meshMaterial) && int(meshMaterial[i]) < len(materials) {
			rm = materials[meshMaterial[i]]
			if c, ok := diffuseColor(rm); ok {
				material.Diffuse = toColor(c)
			}
		} else {
			rm = a.defaultMaterial()
		}
		a.materials = append(a.materials, rm)

		shape := scene.NewShape(i, material, meshBounds(mesh), lights)
		a.Model.Shapes = append(a.Model.Shapes, shape)
	}

	bounds, _ := a.Model.Bounds()
	log.WithFields(logrus.Fields{
		"file":   path,
		"shapes": a.Model.Len(),
		"min":    bounds.Min.Array(),
		"max":    bounds.Max.Array(),
	}).Info("model loaded")

	return a, nil
}

func (a *Asset) defaultMaterial() rl.Material {
	if a.fallback == nil {
		m := rl.LoadMaterialDefault()
		a.fallback = &m
	}
	return *a.fallback
}

// diffuseColor returns the albedo color of a material. Plain white is what
// raylib assigns when a file has no material, so it counts as unset.
func diffuseColor(m rl.Material) (color.RGBA, bool) {
	if m.Maps == nil {
		return color.RGBA{}, false
	}
	c := m.Maps.Color
	if c == (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		return c, false
	}
	return c, true
}

func loadMesh(path string, mesh *stl.Mesh) (rl.Model, error) {
	if mesh.TriangleCount() == 0 {
		return rl.Model{}, errors.Errorf("%s: no triangles", path)
	}
	return rl.LoadModelFromMesh(uploadMesh(mesh)), nil
}

// renderSCAD runs openscad on path and parses the resulting STL
func renderSCAD(path string, log logrus.FieldLogger) (*stl.Mesh, error) {
	log.WithField("file", path).Info("rendering with openscad")
	tmp, err := openscad.NewRenderer(filepath.Dir(path)).RenderTemp(context.Background(), path)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp)

	mesh, err := stl.Parse(tmp)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: rendered output", path)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// meshBounds accumulates the bounds of a mesh's position stream
func meshBounds(mesh rl.Mesh) geometry.Bounds3 {
	if mesh.VertexCount == 0 || mesh.Vertices == nil {
		return geometry.NewBoxBounds(linalg.Vector3{})
	}
	positions := unsafe.Slice(mesh.Vertices, int(mesh.VertexCount)*3)
	b := geometry.NewBoxBounds(linalg.Vec3(positions[0], positions[1], positions[2]))
	b.ExtendFlat(positions[3:])
	return b
}

// uploadMesh copies an STL mesh into raylib owned memory and uploads it.
// The memory is released by UnloadModel.
func uploadMesh(m *stl.Mesh) rl.Mesh {
	mesh := rl.Mesh{
		VertexCount:   int32(m.VertexCount()),
		TriangleCount: int32(m.TriangleCount()),
		Vertices:      cfloats(m.Positions),
		Normals:       cfloats(m.Normals),
	}
	rl.UploadMesh(&mesh, false)
	return mesh
}

func cfloats(src []linalg.Scalar) *float32 {
	p := (*float32)(rl.MemAlloc(uint32(len(src) * 4)))
	copy(unsafe.Slice(p, len(src)), src)
	return p
}

// Relight points every shape at a new lighting setup
func (a *Asset) Relight(lights *scene.Lights) {
	for _, s := range a.Model.Shapes {
		s.Lights = lights
	}
}

// Unload frees the GPU and CPU copies of the model
func (a *Asset) Unload() {
	rl.UnloadModel(a.model)
	if a.fallback != nil {
		rl.UnloadMaterial(*a.fallback)
	}
}
