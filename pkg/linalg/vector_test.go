package linalg

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = Scalar(1e-5)

func TestVectorAdd(t *testing.T) {
	v1 := Vec3(1, 2, 3)
	v2 := Vec3(4, 5, 6)

	assert.Equal(t, Vec3(5, 7, 9), v1.Add(v2))
}

func TestVectorSub(t *testing.T) {
	v1 := Vec3(5, 7, 9)
	v2 := Vec3(1, 2, 3)

	assert.Equal(t, Vec3(4, 5, 6), v1.Sub(v2))
}

func TestVectorAddSubRoundTrip(t *testing.T) {
	a := Vec4(0.1, -2.5, 1e3, 7)
	b := Vec4(3.3, 0.25, -12, 1e-3)

	assert.True(t, a.Add(b).Sub(b).ApproxEqual(a, 1e-3))

	x := Vec([6]Scalar{1, 2, 3, 4, 5, 6})
	y := Vec([6]Scalar{-6, 5, -4, 3, -2, 1})
	assert.True(t, x.Add(y).Sub(y).ApproxEqual(x, tol))
}

func TestVectorScale(t *testing.T) {
	assert.Equal(t, Vec2(2, -4), Vec2(1, -2).Scale(2))
	assert.Equal(t, Vec3(-1, -2, -3), Vec3(1, 2, 3).Neg())
}

func TestVectorDot(t *testing.T) {
	assert.Equal(t, Scalar(32), Vec3(1, 2, 3).Dot(Vec3(4, 5, 6))) // 1*4 + 2*5 + 3*6
	assert.Equal(t, Scalar(-6), Vec([1]Scalar{2}).Dot(Vec([1]Scalar{-3})))
}

func TestVectorLength(t *testing.T) {
	assert.InDelta(t, 5.0, Vec3(3, 4, 0).Length(), 1e-6)
}

func TestVectorNormalize(t *testing.T) {
	n, ok := Vec3(3, 4, 0).Normalize()
	require.True(t, ok)
	assert.InDelta(t, 1.0, n.Length(), 1e-6)
	assert.True(t, n.ApproxEqual(Vec3(0.6, 0.8, 0), tol))

	n4, ok := Vec4(0, 0, -9, 0).Normalize()
	require.True(t, ok)
	assert.Equal(t, Vec4(0, 0, -1, 0), n4)
}

func TestVectorNormalizeZero(t *testing.T) {
	_, ok := Vec3(0, 0, 0).Normalize()
	assert.False(t, ok)

	_, ok = Vector4{}.Normalize()
	assert.False(t, ok)
}

func TestVectorMinMax(t *testing.T) {
	a := Vec3(1, 5, -2)
	b := Vec3(3, -1, -2)

	assert.Equal(t, Vec3(1, -1, -2), a.Min(b))
	assert.Equal(t, Vec3(3, 5, -2), a.Max(b))
}

func TestResize(t *testing.T) {
	v := Vec3(1, 2, 3)

	assert.Equal(t, Vec4(1, 2, 3, 0), Resize[[4]Scalar](v))
	assert.Equal(t, Vec2(1, 2), Resize[[2]Scalar](v))
	assert.Equal(t, Vec4(1, 2, 3, 1), Point(v))
}

func TestCross3(t *testing.T) {
	assert.Equal(t, Vec3(0, 0, 1), Cross(Vec3(1, 0, 0), Vec3(0, 1, 0)))
	assert.Equal(t, Vec3(1, 0, 0), Cross(Vec3(0, 1, 0), Vec3(0, 0, 1)))
	assert.Equal(t, Vec3(-3, 6, -3), Cross(Vec3(1, 2, 3), Vec3(4, 5, 6)))

	a := mgl32.Vec3{0.3, -1.2, 2}
	b := mgl32.Vec3{4, 0.5, -0.7}
	want := a.Cross(b)
	got := Cross(Vec3(a[0], a[1], a[2]), Vec3(b[0], b[1], b[2]))
	assert.True(t, got.ApproxEqual(Vec3(want[0], want[1], want[2]), tol), "got %v, want %v", got, want)
}

func TestCrossOrthogonal(t *testing.T) {
	a, b := Vec3(0.5, 2, -1), Vec3(-3, 1, 4)
	c := Cross(a, b)
	assert.InDelta(t, 0, c.Dot(a), 1e-5)
	assert.InDelta(t, 0, c.Dot(b), 1e-5)

	u := Vec4(1, 2, 0, 1)
	v := Vec4(0, 1, 3, 2)
	w := Vec4(2, 0, 1, 1)
	x := Cross(u, v, w)
	assert.Equal(t, Vec4(3, 5, 7, -13), x)
	for _, in := range []Vector4{u, v, w} {
		assert.InDelta(t, 0, x.Dot(in), 1e-5)
	}
}

func TestCrossDependent(t *testing.T) {
	assert.Equal(t, Vec3(0, 0, 0), Cross(Vec3(1, 2, 3), Vec3(2, 4, 6)))
}

func TestCrossArity(t *testing.T) {
	assert.PanicsWithError(t, "linalg: Cross: dimension mismatch: want 3, got 2", func() {
		Cross(Vec4(1, 0, 0, 0), Vec4(0, 1, 0, 0))
	})
}
