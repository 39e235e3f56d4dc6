package raylib

import (
	_ "embed"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/philipparndt/flyview/pkg/linalg"
	"github.com/philipparndt/flyview/pkg/scene"
)

var (
	//go:embed shaders/lit.vs
	litVertexShader string
	//go:embed shaders/lit.fs
	litFragmentShader string
)

const (
	locModelView = iota
	locProjection
	locAmbientColor
	locDirectionalColor
	locDirectionalDirection
	locPointColor
	locPointPosition
	locDiffuse
	locSpecular
	locRoughness
	uniformCount
)

var uniformNames = [uniformCount]string{
	locModelView:            "u_model_view_matrix",
	locProjection:           "u_perspective_matrix",
	locAmbientColor:         "u_lights.ambient.color",
	locDirectionalColor:     "u_lights.directional.color",
	locDirectionalDirection: "u_lights.directional.direction",
	locPointColor:           "u_lights.point.color",
	locPointPosition:        "u_lights.point.position",
	locDiffuse:              "u_diffuse",
	locSpecular:             "u_specular",
	locRoughness:            "u_roughness",
}

// Shader is a compiled program fed from scene.Uniforms
type Shader struct {
	shader rl.Shader
	locs   [uniformCount]int32
}

// LoadShader compiles the given GLSL files, or the built-in physically
// based lighting shader when both paths are empty. Uniforms a shader does
// not declare are skipped.
func LoadShader(vsPath, fsPath string, log logrus.FieldLogger) (*Shader, error) {
	vs, fs := litVertexShader, litFragmentShader
	if vsPath != "" || fsPath != "" {
		var err error
		if vs, err = readSource(vsPath); err != nil {
			return nil, err
		}
		if fs, err = readSource(fsPath); err != nil {
			return nil, err
		}
	}

	s := &Shader{shader: rl.LoadShaderFromMemory(vs, fs)}
	if s.shader.ID == 0 {
		return nil, errors.New("shader failed to compile")
	}

	var missing []string
	for i, name := range uniformNames {
		s.locs[i] = rl.GetShaderLocation(s.shader, name)
		if s.locs[i] < 0 {
			missing = append(missing, name)
		}
	}
	log.WithFields(logrus.Fields{
		"vertex":   vsPath,
		"fragment": fsPath,
		"unused":   missing,
	}).Debug("shader loaded")

	return s, nil
}

func readSource(path string) (string, error) {
	if path == "" {
		return "", errors.New("shader: vertex and fragment source must be given together")
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "shader")
	}
	return string(src), nil
}

// Apply uploads the uniforms for the next draw call
func (s *Shader) Apply(u scene.Uniforms) {
	s.matrix(locModelView, u.ModelView)
	s.matrix(locProjection, u.Projection)
	s.vec3(locAmbientColor, u.AmbientColor)
	s.vec3(locDirectionalColor, u.DirectionalColor)
	s.vec3(locDirectionalDirection, u.DirectionalDirection)
	s.vec3(locPointColor, u.PointColor)
	s.vec3(locPointPosition, u.PointPosition)
	s.vec3(locDiffuse, u.Diffuse)
	s.vec3(locSpecular, u.Specular)
	if loc := s.locs[locRoughness]; loc >= 0 {
		rl.SetShaderValue(s.shader, loc, []float32{u.Roughness}, rl.ShaderUniformFloat)
	}
}

func (s *Shader) matrix(i int, m linalg.Matrix4) {
	if loc := s.locs[i]; loc >= 0 {
		rl.SetShaderValueMatrix(s.shader, loc, toMatrix(m))
	}
}

func (s *Shader) vec3(i int, v linalg.Vector3) {
	if loc := s.locs[i]; loc >= 0 {
		a := v.Array()
		rl.SetShaderValue(s.shader, loc, a[:], rl.ShaderUniformVec3)
	}
}

// Unload frees the program
func (s *Shader) Unload() {
	rl.UnloadShader(s.shader)
}
