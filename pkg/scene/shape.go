package scene

import (
	"github.com/pkg/errors"

	"github.com/philipparndt/flyview/pkg/geometry"
	"github.com/philipparndt/flyview/pkg/linalg"
)

// Uniforms is everything a shader needs to draw one mesh. Positions and
// directions are in eye space.
type Uniforms struct {
	ModelView  linalg.Matrix4
	Projection linalg.Matrix4

	AmbientColor         linalg.Vector3
	DirectionalColor     linalg.Vector3
	DirectionalDirection linalg.Vector3
	PointColor           linalg.Vector3
	PointPosition        linalg.Vector3

	Diffuse   linalg.Vector3
	Specular  linalg.Vector3
	Roughness linalg.Scalar // Already raised to the fourth power
}

// Shape is a single mesh placed in the world
type Shape struct {
	Name      string
	Mesh      int
	Material  Material
	Bounds    geometry.Bounds3
	Transform linalg.Matrix4
	Lights    *Lights
}

// NewShape creates a shape with an identity transform
func NewShape(mesh int, material Material, bounds geometry.Bounds3, lights *Lights) *Shape {
	return &Shape{
		Mesh:      mesh,
		Material:  material,
		Bounds:    bounds,
		Transform: linalg.Identity4(),
		Lights:    lights,
	}
}

// Uniforms derives the shader inputs for the given camera
func (s *Shape) Uniforms(projection, view linalg.Matrix4) Uniforms {
	lights := s.Lights
	if lights == nil {
		lights = DefaultLights()
	}

	point := view.MulVec(linalg.Point(lights.Point.Position))
	r2 := s.Material.Roughness * s.Material.Roughness

	return Uniforms{
		ModelView:  view.Mul(s.Transform),
		Projection: projection,

		AmbientColor:         lights.Ambient.Color,
		DirectionalColor:     lights.Directional.Color,
		DirectionalDirection: linalg.UpperLeft3(view).MulVec(lights.Directional.Direction),
		PointColor:           lights.Point.Color,
		PointPosition:        linalg.Resize[[3]linalg.Scalar](point),

		Diffuse:   s.Material.Diffuse,
		Specular:  s.Material.Specular,
		Roughness: r2 * r2,
	}
}

// Draw submits the shape's mesh to t
func (s *Shape) Draw(t Target, projection, view linalg.Matrix4) error {
	return errors.Wrapf(t.DrawMesh(s.Mesh, s.Uniforms(projection, view)), "draw mesh %d", s.Mesh)
}
