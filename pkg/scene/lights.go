package scene

import (
	"github.com/chewxy/math32"

	"github.com/philipparndt/flyview/pkg/linalg"
)

// AmbientLight lights every surface evenly
type AmbientLight struct {
	Color linalg.Vector3
}

// DirectionalLight shines from infinitely far away. Direction points
// towards the light and is given in world space.
type DirectionalLight struct {
	Color     linalg.Vector3
	Direction linalg.Vector3
}

// PointLight shines from a world space position
type PointLight struct {
	Color    linalg.Vector3
	Position linalg.Vector3
}

// Lights is the lighting setup shared by all shapes of a scene. It is built
// once and read during drawing.
type Lights struct {
	Ambient     AmbientLight
	Directional DirectionalLight
	Point       PointLight
}

// DefaultLights returns a bluish ambient term, a warm white directional
// light from (1, 1, 1) and a white point light one unit above the origin.
func DefaultLights() *Lights {
	const pi = math32.Pi
	return &Lights{
		Ambient: AmbientLight{
			Color: linalg.Vec3(0.1*pi, 0.1*pi, 0.2*pi),
		},
		Directional: DirectionalLight{
			Color:     linalg.Vec3(0.9*pi, 0.9*pi, 0.8*pi),
			Direction: linalg.Vec3(1, 1, 1),
		},
		Point: PointLight{
			Color:    linalg.Vec3(pi, pi, pi),
			Position: linalg.Vec3(0, 1, 0),
		},
	}
}
