// Package config loads the viewer configuration from a TOML file layered
// over built-in defaults.
package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/philipparndt/flyview/pkg/linalg"
	"github.com/philipparndt/flyview/pkg/scene"
	"github.com/philipparndt/flyview/pkg/viewer"
)

// Config is the complete viewer configuration
type Config struct {
	LogLevel string `toml:"log_level"`
	// Model is the OBJ, glTF or STL file to show
	Model string `toml:"model"`
	// VertexShader and FragmentShader replace the built-in lighting shader
	VertexShader   string        `toml:"vertex_shader"`
	FragmentShader string        `toml:"fragment_shader"`
	Tick           time.Duration `toml:"tick"`
	Watch          bool          `toml:"watch"`

	Window Window `toml:"window"`
	Camera Camera `toml:"camera"`
	Keys   Keys   `toml:"keys"`
	Lights Lights `toml:"lights"`
}

// Window configures the native window
type Window struct {
	Width     int32  `toml:"width"`
	Height    int32  `toml:"height"`
	Title     string `toml:"title"`
	TargetFPS int32  `toml:"target_fps"`
	MSAA      bool   `toml:"msaa"`
}

// Camera mirrors viewer.Settings
type Camera struct {
	Near             float32 `toml:"near"`
	Far              float32 `toml:"far"`
	FieldOfView      float32 `toml:"fov"`
	MouseSensitivity float32 `toml:"mouse_sensitivity"`
	LookSpeed        float32 `toml:"look_speed"`
	WalkSpeed        float32 `toml:"walk_speed"`
	SprintSpeed      float32 `toml:"sprint_speed"`
	Damping          float32 `toml:"damping"`
	// Frame places the camera in front of a freshly loaded model
	Frame bool `toml:"frame"`
}

// Keys names the key bound to each camera action
type Keys struct {
	Right     string `toml:"right"`
	Left      string `toml:"left"`
	Up        string `toml:"up"`
	Down      string `toml:"down"`
	Back      string `toml:"back"`
	Forward   string `toml:"forward"`
	Sprint    string `toml:"sprint"`
	LookLeft  string `toml:"look_left"`
	LookRight string `toml:"look_right"`
	LookUp    string `toml:"look_up"`
	LookDown  string `toml:"look_down"`
	Next      string `toml:"next"`
	Previous  string `toml:"previous"`
}

// Lights mirrors scene.Lights
type Lights struct {
	Ambient              [3]float32 `toml:"ambient"`
	DirectionalColor     [3]float32 `toml:"directional_color"`
	DirectionalDirection [3]float32 `toml:"directional_direction"`
	PointColor           [3]float32 `toml:"point_color"`
	PointPosition        [3]float32 `toml:"point_position"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	s := viewer.DefaultSettings()
	l := scene.DefaultLights()

	return Config{
		LogLevel: "info",
		Model:    filepath.Join("assets", "OBJ", "default.obj"),
		Tick:     viewer.TimePerTick,
		Watch:    true,
		Window: Window{
			Width:     1280,
			Height:    720,
			Title:     "flyview",
			TargetFPS: 60,
			MSAA:      true,
		},
		Camera: Camera{
			Near:             s.Near,
			Far:              s.Far,
			FieldOfView:      s.FieldOfView,
			MouseSensitivity: s.MouseSensitivity,
			LookSpeed:        s.LookSpeed,
			WalkSpeed:        s.WalkSpeed,
			SprintSpeed:      s.SprintSpeed,
			Damping:          s.Damping,
		},
		Keys: Keys{
			Right:     "D",
			Left:      "A",
			Up:        "Space",
			Down:      "C",
			Back:      "S",
			Forward:   "W",
			Sprint:    "LeftShift",
			LookLeft:  "Left",
			LookRight: "Right",
			LookUp:    "Up",
			LookDown:  "Down",
			Next:      "J",
			Previous:  "K",
		},
		Lights: Lights{
			Ambient:              l.Ambient.Color.Array(),
			DirectionalColor:     l.Directional.Color.Array(),
			DirectionalDirection: l.Directional.Direction.Array(),
			PointColor:           l.Point.Color.Array(),
			PointPosition:        l.Point.Position.Array(),
		},
	}
}

// Load reads path over the defaults. Unknown keys are logged and ignored.
// Relative file names inside the file are taken relative to its directory.
func Load(path string, log logrus.FieldLogger) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, errors.Wrap(err, "open config")
	}
	defer f.Close()

	if err := cfg.decode(f, log); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}

	dir := filepath.Dir(path)
	cfg.Model = resolve(dir, cfg.Model)
	cfg.VertexShader = resolve(dir, cfg.VertexShader)
	cfg.FragmentShader = resolve(dir, cfg.FragmentShader)

	return cfg, nil
}

// Decode reads TOML from r over the defaults
func Decode(r io.Reader, log logrus.FieldLogger) (Config, error) {
	cfg := Default()
	err := cfg.decode(r, log)
	return cfg, err
}

func (c *Config) decode(r io.Reader, log logrus.FieldLogger) error {
	md, err := toml.NewDecoder(r).Decode(c)
	if err != nil {
		return errors.Wrap(err, "decode")
	}
	if log != nil {
		for _, key := range md.Undecoded() {
			log.WithField("key", key.String()).Warn("unknown config key")
		}
	}
	return nil
}

func resolve(dir, file string) string {
	if file == "" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(dir, file)
}

// Encode writes c as TOML
func (c Config) Encode(w io.Writer) error {
	return errors.Wrap(toml.NewEncoder(w).Encode(c), "encode config")
}

// Validate reports the first setting that cannot work
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}
	if c.Model == "" {
		return errors.New("model: no file given")
	}
	if (c.VertexShader == "") != (c.FragmentShader == "") {
		return errors.New("vertex_shader and fragment_shader must be set together")
	}
	if c.Tick <= 0 {
		return errors.Errorf("tick: must be positive, got %s", c.Tick)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("window: invalid size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TargetFPS < 0 {
		return errors.Errorf("window.target_fps: must not be negative, got %d", c.Window.TargetFPS)
	}

	cam := c.Camera
	if cam.Near <= 0 || cam.Far <= cam.Near {
		return errors.Errorf("camera: need 0 < near < far, got near %g far %g", cam.Near, cam.Far)
	}
	if cam.FieldOfView <= 0 || cam.FieldOfView >= 180 {
		return errors.Errorf("camera.fov: must be between 0 and 180 degrees, got %g", cam.FieldOfView)
	}
	if cam.Damping < 0 || cam.Damping >= 1 {
		return errors.Errorf("camera.damping: must be in [0, 1), got %g", cam.Damping)
	}
	if cam.WalkSpeed < 0 || cam.SprintSpeed < 0 || cam.LookSpeed < 0 || cam.MouseSensitivity < 0 {
		return errors.New("camera: speeds and sensitivity must not be negative")
	}
	return nil
}

// Level returns the parsed log level, falling back to info
func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// Settings converts the camera section
func (c Config) Settings() viewer.Settings {
	return viewer.Settings{
		Near:             c.Camera.Near,
		Far:              c.Camera.Far,
		FieldOfView:      c.Camera.FieldOfView,
		MouseSensitivity: c.Camera.MouseSensitivity,
		LookSpeed:        c.Camera.LookSpeed,
		WalkSpeed:        c.Camera.WalkSpeed,
		SprintSpeed:      c.Camera.SprintSpeed,
		Damping:          c.Camera.Damping,
	}
}

// SceneLights converts the lights section
func (c Config) SceneLights() *scene.Lights {
	l := c.Lights
	return &scene.Lights{
		Ambient: scene.AmbientLight{Color: linalg.Vec(l.Ambient)},
		Directional: scene.DirectionalLight{
			Color:     linalg.Vec(l.DirectionalColor),
			Direction: linalg.Vec(l.DirectionalDirection),
		},
		Point: scene.PointLight{
			Color:    linalg.Vec(l.PointColor),
			Position: linalg.Vec(l.PointPosition),
		},
	}
}

// Bindings resolves key names through lookup
func (c Config) Bindings(lookup func(name string) (viewer.Key, bool)) (viewer.Bindings, error) {
	var b viewer.Bindings
	k := c.Keys

	for _, e := range []struct {
		field string
		name  string
		dst   *viewer.Key
	}{
		{"right", k.Right, &b.Right},
		{"left", k.Left, &b.Left},
		{"up", k.Up, &b.Up},
		{"down", k.Down, &b.Down},
		{"back", k.Back, &b.Back},
		{"forward", k.Forward, &b.Forward},
		{"sprint", k.Sprint, &b.Sprint},
		{"look_left", k.LookLeft, &b.LookLeft},
		{"look_right", k.LookRight, &b.LookRight},
		{"look_up", k.LookUp, &b.LookUp},
		{"look_down", k.LookDown, &b.LookDown},
		{"next", k.Next, &b.Next},
		{"previous", k.Previous, &b.Previous},
	} {
		key, ok := lookup(e.name)
		if !ok {
			return viewer.Bindings{}, errors.Errorf("keys.%s: unknown key %q", e.field, e.name)
		}
		*e.dst = key
	}
	return b, nil
}
