package scene

import (
	"github.com/chewxy/math32"

	"github.com/philipparndt/flyview/pkg/linalg"
)

// Material describes how a surface reflects light
type Material struct {
	Diffuse   linalg.Vector3
	Specular  linalg.Vector3
	Roughness linalg.Scalar
}

// DefaultMaterial is a light grey, mostly matte surface
func DefaultMaterial() Material {
	return Material{
		Diffuse:   linalg.Vec3(0.75, 0.75, 0.75),
		Specular:  linalg.Vec3(0.02, 0.02, 0.02),
		Roughness: 0.5,
	}
}

// MaterialFromShininess converts a Phong style material into one with
// roughness 2/sqrt(2+shininess).
func MaterialFromShininess(diffuse, specular linalg.Vector3, shininess linalg.Scalar) Material {
	return Material{
		Diffuse:   diffuse,
		Specular:  specular,
		Roughness: 2 / math32.Sqrt(2+shininess),
	}
}
