package viewer

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/philipparndt/flyview/pkg/linalg"
)

// ErrDegenerateBasis is returned when a camera has no facing direction or
// its up vector is parallel to it.
var ErrDegenerateBasis = errors.New("viewer: degenerate camera basis")

// FieldOfViewDeg returns the perspective projection for a symmetric frustum
// with the given field of view in degrees.
func FieldOfViewDeg(near, far, width, height, fov linalg.Scalar) linalg.Matrix4 {
	return FieldOfViewRad(near, far, width, height, fov*math32.Pi/180)
}

// FieldOfViewRad returns the perspective projection for a symmetric frustum
// with the given field of view in radians. The half-width of the near plane
// is near·sin(fov/2) and its half-height follows the viewport aspect.
//
// A zero width yields a matrix with non-finite entries.
func FieldOfViewRad(near, far, width, height, fov linalg.Scalar) linalg.Matrix4 {
	right := near * math32.Sin(fov/2)
	top := right * height / width
	return Frustum(near, far, -right, right, -top, top)
}

// Frustum returns the off-center perspective projection mapping the given
// view frustum to clip space. Clip w is the negated eye z.
func Frustum(near, far, left, right, bottom, top linalg.Scalar) linalg.Matrix4 {
	n, f, l, r, b, t := near, far, left, right, bottom, top

	return linalg.Mat4([4][4]linalg.Scalar{
		{2 * n / (r - l), 0, 0, 0},
		{0, 2 * n / (t - b), 0, 0},
		{(r + l) / (r - l), (t + b) / (t - b), -(f + n) / (f - n), -1},
		{0, 0, -2 * f * n / (f - n), 0},
	})
}

// View returns the matrix mapping world coordinates into the eye space of a
// camera at position facing forward. The eye basis is right handed: its x
// axis is up×forward, its z axis is forward and its y axis completes the
// basis, so a camera at the origin facing +z with +y up yields identity.
func View(position, forward, up linalg.Vector3) (linalg.Matrix4, error) {
	if !finite(forward) || !finite(up) {
		return linalg.Matrix4{}, errors.Wrapf(ErrDegenerateBasis, "non-finite direction forward %v up %v", forward.Array(), up.Array())
	}
	f, ok := forward.Normalize()
	if !ok {
		return linalg.Matrix4{}, errors.Wrap(ErrDegenerateBasis, "zero forward vector")
	}
	s, ok := linalg.Cross(up, f).Normalize()
	if !ok {
		return linalg.Matrix4{}, errors.Wrapf(ErrDegenerateBasis, "up %v is parallel to forward %v", up.Array(), forward.Array())
	}
	u, ok := linalg.Cross(f, s).Normalize()
	if !ok {
		return linalg.Matrix4{}, errors.Wrap(ErrDegenerateBasis, "no true up vector")
	}

	// rotate the negated position into the eye basis
	basis := linalg.Mat3([3][3]linalg.Scalar{s.Array(), u.Array(), f.Array()})
	p := basis.Transposed().MulVec(position.Neg())

	return linalg.Mat4([4][4]linalg.Scalar{
		{s.At(0), u.At(0), f.At(0), 0},
		{s.At(1), u.At(1), f.At(1), 0},
		{s.At(2), u.At(2), f.At(2), 0},
		{p.At(0), p.At(1), p.At(2), 1},
	}), nil
}

func finite(v linalg.Vector3) bool {
	for i := 0; i < v.Dim(); i++ {
		if x := v.At(i); math32.IsNaN(x) || math32.IsInf(x, 0) {
			return false
		}
	}
	return true
}
