package viewer

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/flyview/pkg/linalg"
)

func TestViewAtOriginIsIdentity(t *testing.T) {
	view, err := View(linalg.Vec3(0, 0, 0), linalg.Vec3(0, 0, 1), linalg.Vec3(0, 1, 0))
	require.NoError(t, err)

	assert.True(t, view.ApproxEqual(linalg.Identity4(), 1e-6), "got %v", view.Floats())
}

func TestViewTranslatesByNegatedPosition(t *testing.T) {
	view, err := View(linalg.Vec3(1, 2, 3), linalg.Vec3(0, 0, 1), linalg.Vec3(0, 1, 0))
	require.NoError(t, err)

	assert.Equal(t, linalg.Vec4(-1, -2, -3, 1), view.Col(3))
	assert.Equal(t, linalg.Vec4(0, 0, 0, 1), view.MulVec(linalg.Vec4(1, 2, 3, 1)))
}

func TestViewBasisIsOrthonormal(t *testing.T) {
	view, err := View(linalg.Vec3(4, -1, 2), linalg.Vec3(1, 0.5, -2), linalg.Vec3(0, 1, 0))
	require.NoError(t, err)

	rot := linalg.UpperLeft3(view)
	assert.InDelta(t, 1, rot.Det(), 1e-5)
	assert.True(t, rot.Mul(rot.Transposed()).ApproxEqual(linalg.Identity3(), 1e-5))

	// the facing direction maps onto eye +z
	f, _ := linalg.Vec3(1, 0.5, -2).Normalize()
	assert.True(t, rot.MulVec(f).ApproxEqual(linalg.Vec3(0, 0, 1), 1e-5))
}

func TestViewRightHanded(t *testing.T) {
	view, err := View(linalg.Vec3(0, 0, 0), linalg.Vec3(1, 0, 0), linalg.Vec3(0, 1, 0))
	require.NoError(t, err)

	s := linalg.Vec3(view.At(0, 0), view.At(1, 0), view.At(2, 0))
	u := linalg.Vec3(view.At(0, 1), view.At(1, 1), view.At(2, 1))
	f := linalg.Vec3(view.At(0, 2), view.At(1, 2), view.At(2, 2))
	assert.True(t, linalg.Cross(s, u).ApproxEqual(f, 1e-6))
	assert.True(t, s.ApproxEqual(linalg.Vec3(0, 0, -1), 1e-6), "got %v", s)
}

func TestViewDegenerate(t *testing.T) {
	_, err := View(linalg.Vec3(0, 0, 0), linalg.Vec3(0, 0, 0), linalg.Vec3(0, 1, 0))
	require.Error(t, err)
	assert.Equal(t, ErrDegenerateBasis, errors.Cause(err))

	_, err = View(linalg.Vec3(0, 0, 0), linalg.Vec3(0, 2, 0), linalg.Vec3(0, 1, 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDegenerateBasis)
}

func TestViewRejectsNonFiniteDirection(t *testing.T) {
	_, err := View(linalg.Vec3(0, 0, 0), linalg.Vec3(math32.NaN(), 0, 1), linalg.Vec3(0, 1, 0))
	assert.ErrorIs(t, err, ErrDegenerateBasis)

	_, err = View(linalg.Vec3(0, 0, 0), linalg.Vec3(0, 0, 1), linalg.Vec3(0, math32.Inf(1), 0))
	assert.ErrorIs(t, err, ErrDegenerateBasis)
}

func TestFrustumAgainstMathgl(t *testing.T) {
	got := Frustum(0.5, 100, -1, 2, -0.5, 1.5)
	want := mgl32.Frustum(-1, 2, -0.5, 1.5, 0.5, 100)

	floats := got.Floats()
	for i := range want {
		assert.InDelta(t, want[i], floats[i], 1e-5, "element %d", i)
	}
}

func TestFieldOfViewSquareViewport(t *testing.T) {
	proj := FieldOfViewDeg(0.1, 1024, 600, 600, 90)

	assert.InDelta(t, proj.At(0, 0), proj.At(1, 1), 1e-6)
	assert.Equal(t, linalg.Scalar(-1), proj.At(2, 3))
	assert.Equal(t, linalg.Scalar(0), proj.At(3, 3))

	// right = near·sin(45°)
	right := 0.1 * math32.Sin(math32.Pi/4)
	assert.InDelta(t, 0.1/right, proj.At(0, 0), 1e-5)
}

func TestFieldOfViewAspect(t *testing.T) {
	proj := FieldOfViewRad(1, 10, 800, 400, math32.Pi/2)

	// a wide viewport halves the vertical extent of the near plane
	assert.InDelta(t, 2*proj.At(0, 0), proj.At(1, 1), 1e-5)
}

func TestFieldOfViewDegMatchesRad(t *testing.T) {
	deg := FieldOfViewDeg(0.1, 50, 640, 480, 60)
	rad := FieldOfViewRad(0.1, 50, 640, 480, math32.Pi/3)

	assert.True(t, deg.ApproxEqual(rad, 1e-6))
}

func TestProjectionKeepsPointsInFrontVisible(t *testing.T) {
	view, err := View(linalg.Vec3(0, 0, 0), linalg.Vec3(0, 0, 1), linalg.Vec3(0, 1, 0))
	require.NoError(t, err)
	proj := FieldOfViewDeg(0.1, 1024, 800, 600, 90)

	clip := proj.Mul(view).MulVec(linalg.Point(linalg.Vec3(0.5, 0.5, -5)))
	require.Greater(t, clip.At(3), linalg.Scalar(0))
	for i := 0; i < 3; i++ {
		assert.LessOrEqual(t, math32.Abs(clip.At(i)/clip.At(3)), linalg.Scalar(1), "axis %d", i)
	}
}
