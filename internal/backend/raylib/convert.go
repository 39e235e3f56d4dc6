package raylib

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/flyview/pkg/linalg"
)

// toMatrix converts a column-major matrix; raylib's M0..M3 is the first column
func toMatrix(m linalg.Matrix4) rl.Matrix {
	f := m.Floats()
	return rl.Matrix{
		M0: f[0], M1: f[1], M2: f[2], M3: f[3],
		M4: f[4], M5: f[5], M6: f[6], M7: f[7],
		M8: f[8], M9: f[9], M10: f[10], M11: f[11],
		M12: f[12], M13: f[13], M14: f[14], M15: f[15],
	}
}

// toColor converts an 8-bit color to linear components in [0, 1]
func toColor(c color.RGBA) linalg.Vector3 {
	return linalg.Vec3(
		linalg.Scalar(c.R)/255,
		linalg.Scalar(c.G)/255,
		linalg.Scalar(c.B)/255,
	)
}
