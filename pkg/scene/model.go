package scene

import (
	"github.com/pkg/errors"

	"github.com/philipparndt/flyview/pkg/geometry"
	"github.com/philipparndt/flyview/pkg/linalg"
)

// Model is a set of shapes loaded from one file
type Model struct {
	Name   string
	Shapes []*Shape
}

// Len returns the number of shapes
func (m *Model) Len() int {
	return len(m.Shapes)
}

// Draw draws every shape
func (m *Model) Draw(t Target, projection, view linalg.Matrix4) error {
	for i, s := range m.Shapes {
		if err := s.Draw(t, projection, view); err != nil {
			return errors.Wrapf(err, "shape %d of %q", i, m.Name)
		}
	}
	return nil
}

// Select returns shape i, or the whole model when i equals Len. Any other
// index reports false.
func (m *Model) Select(i int) (Drawable, bool) {
	switch {
	case i == len(m.Shapes):
		return m, true
	case i >= 0 && i < len(m.Shapes):
		return m.Shapes[i], true
	default:
		return nil, false
	}
}

// Bounds returns the union of all shape bounds. An empty model has none.
func (m *Model) Bounds() (geometry.Bounds3, bool) {
	if len(m.Shapes) == 0 {
		return geometry.Bounds3{}, false
	}
	b := m.Shapes[0].Bounds
	for _, s := range m.Shapes[1:] {
		b = b.Union(s.Bounds)
	}
	return b, true
}

// Frame returns a camera position in front of the model that keeps all of
// it in view. The camera looks down -z, as a fresh Camera does.
func (m *Model) Frame() (linalg.Vector3, bool) {
	b, ok := m.Bounds()
	if !ok {
		return linalg.Vector3{}, false
	}
	c := b.Center()
	return c.With(2, b.Max.At(2)+b.Diagonal()), true
}
