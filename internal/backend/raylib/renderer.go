package raylib

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/philipparndt/flyview/pkg/linalg"
	"github.com/philipparndt/flyview/pkg/scene"
)

// Renderer draws the current asset with one shader. It implements both
// viewer.Renderer and scene.Target.
type Renderer struct {
	Background color.RGBA

	shader *Shader
	asset  *Asset
	log    logrus.FieldLogger
}

// NewRenderer creates a renderer clearing to blue
func NewRenderer(shader *Shader, log logrus.FieldLogger) *Renderer {
	return &Renderer{
		Background: rl.NewColor(0, 0, 255, 255),
		shader:     shader,
		log:        log,
	}
}

// Asset returns the asset being drawn
func (r *Renderer) Asset() *Asset {
	return r.asset
}

// Replace starts drawing a and unloads the previous asset
func (r *Renderer) Replace(a *Asset) {
	old := r.asset
	r.asset = a
	if old != nil {
		old.Unload()
	}
}

// Draw renders one frame. Selection picks a shape; any index outside the
// model draws all of it.
func (r *Renderer) Draw(view, projection linalg.Matrix4, selection int) error {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(r.Background)
	if r.asset == nil {
		return nil
	}

	rl.DrawRenderBatchActive()
	rl.SetMatrixProjection(toMatrix(projection))
	rl.EnableDepthTest()
	rl.EnableBackfaceCulling()

	d, ok := r.asset.Model.Select(selection)
	if !ok {
		d = r.asset.Model
	}
	err := d.Draw(r, projection, view)

	rl.DrawRenderBatchActive()
	return err
}

// DrawMesh draws one mesh of the current asset
func (r *Renderer) DrawMesh(mesh int, u scene.Uniforms) error {
	if r.asset == nil || mesh < 0 || mesh >= len(r.asset.meshes) {
		return errors.Errorf("no mesh %d loaded", mesh)
	}

	rl.SetMatrixModelview(toMatrix(u.ModelView))
	r.shader.Apply(u)

	material := r.asset.materials[mesh]
	material.Shader = r.shader.shader
	rl.DrawMesh(r.asset.meshes[mesh], material, rl.MatrixIdentity())
	return nil
}

// Close unloads the asset and the shader
func (r *Renderer) Close() {
	r.Replace(nil)
	r.shader.Unload()
	r.log.Debug("renderer closed")
}
