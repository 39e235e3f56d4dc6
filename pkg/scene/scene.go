// Package scene holds what the viewer draws: a tree of drawables whose
// leaves are shapes with a material, bounds and lighting.
package scene

import (
	"github.com/pkg/errors"

	"github.com/philipparndt/flyview/pkg/linalg"
)

// Target receives draw calls from the scene. Meshes are identified by the
// index the backend handed out when loading them.
type Target interface {
	DrawMesh(mesh int, u Uniforms) error
}

// Drawable is anything that can submit itself to a Target
type Drawable interface {
	Draw(t Target, projection, view linalg.Matrix4) error
}

// Tree draws its children in order
type Tree struct {
	Children []Drawable
}

// NewTree creates a tree over the given children
func NewTree(children ...Drawable) *Tree {
	return &Tree{Children: children}
}

// Add appends a child
func (tr *Tree) Add(d Drawable) {
	tr.Children = append(tr.Children, d)
}

// Draw draws every child and stops at the first failure
func (tr *Tree) Draw(t Target, projection, view linalg.Matrix4) error {
	for i, child := range tr.Children {
		if err := child.Draw(t, projection, view); err != nil {
			return errors.Wrapf(err, "child %d", i)
		}
	}
	return nil
}
