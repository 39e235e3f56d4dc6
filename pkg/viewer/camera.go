package viewer

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/philipparndt/flyview/pkg/linalg"
)

// Settings tunes projection and movement of a Camera
type Settings struct {
	Near        linalg.Scalar
	Far         linalg.Scalar
	FieldOfView linalg.Scalar // Horizontal field of view in degrees; the near plane half-width is near·sin(fov/2)

	MouseSensitivity linalg.Scalar // Radians per unit of mouse motion
	LookSpeed        linalg.Scalar // Radians per tick while a look key is held
	WalkSpeed        linalg.Scalar
	SprintSpeed      linalg.Scalar
	Damping          linalg.Scalar // Share of the previous velocity kept each tick
}

// DefaultSettings returns the stock camera tuning
func DefaultSettings() Settings {
	return Settings{
		Near:             0.1,
		Far:              1024,
		FieldOfView:      90,
		MouseSensitivity: 0.001,
		LookSpeed:        0.01,
		WalkSpeed:        2,
		SprintSpeed:      3,
		Damping:          0.9,
	}
}

// Bindings maps camera actions to keys
type Bindings struct {
	Right, Left    Key
	Up, Down       Key
	Back, Forward  Key
	Sprint         Key
	LookLeft       Key
	LookRight      Key
	LookUp         Key
	LookDown       Key
	Next, Previous Key
}

// Keys lists every bound key once, in declaration order
func (b Bindings) Keys() []Key {
	all := []Key{
		b.Right, b.Left, b.Up, b.Down, b.Back, b.Forward, b.Sprint,
		b.LookLeft, b.LookRight, b.LookUp, b.LookDown, b.Next, b.Previous,
	}
	seen := make(map[Key]bool, len(all))
	keys := all[:0]
	for _, k := range all {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}

// Camera is a fly-through camera driven by raw input events. Events are
// folded in as they arrive; Update advances the camera by one tick.
type Camera struct {
	settings Settings
	keys     Bindings
	input    *Input

	position linalg.Vector3
	movement linalg.Vector3
	rx       linalg.Scalar // pitch
	ry       linalg.Scalar // yaw

	view       linalg.Matrix4
	projection linalg.Matrix4

	selection int
	items     int
}

// NewCamera creates a camera at the origin facing +z. The selection index
// cycles over items entries plus one slot standing for all of them.
func NewCamera(settings Settings, keys Bindings, items int) *Camera {
	return &Camera{
		settings:   settings,
		keys:       keys,
		input:      NewInput(),
		view:       linalg.Identity4(),
		projection: linalg.Identity4(),
		items:      items,
	}
}

// Configure replaces the camera tuning; it takes effect on the next tick
func (c *Camera) Configure(settings Settings) {
	c.settings = settings
}

// Settings returns the current camera tuning
func (c *Camera) Settings() Settings {
	return c.settings
}

// SetItems changes the number of selectable items, keeping the selection in range
func (c *Camera) SetItems(items int) {
	c.items = items
	if c.selection > items {
		c.selection = items
	}
}

// MoveTo places the camera
func (c *Camera) MoveTo(position linalg.Vector3) {
	c.position = position
}

// Handle folds one input event into the camera state
func (c *Camera) Handle(ev Event) {
	switch ev.Kind {
	case KeyDown:
		c.input.Press(ev.Key)
	case KeyUp:
		c.input.Release(ev.Key)
	case MouseMotion:
		c.Look(ev.DX, ev.DY)
	}
}

// Look turns the camera by a mouse movement. Pitch is clamped straight away
// so the camera never flips over.
func (c *Camera) Look(dx, dy linalg.Scalar) {
	c.ry -= dx * c.settings.MouseSensitivity
	c.rx = clampPitch(c.rx - dy*c.settings.MouseSensitivity)
}

func clampPitch(rx linalg.Scalar) linalg.Scalar {
	return math32.Max(-math32.Pi/2, math32.Min(math32.Pi/2, rx))
}

// Update advances the camera by one tick of length dt and rebuilds the view
// and projection matrices for a viewport of width by height. When the view
// cannot be built the camera keeps its position, velocity and selection.
// The key edges of the tick are consumed either way.
func (c *Camera) Update(dt time.Duration, width, height linalg.Scalar) error {
	defer c.input.EndTick()

	selection := c.selection
	if c.input.Pressed(c.keys.Next) {
		if selection == c.items {
			selection = 0
		} else {
			selection++
		}
	}
	if c.input.Pressed(c.keys.Previous) {
		if selection == 0 {
			selection = c.items
		} else {
			selection--
		}
	}

	dir := linalg.Vec3(
		c.axis(c.keys.Right, c.keys.Left),
		c.axis(c.keys.Up, c.keys.Down),
		c.axis(c.keys.Back, c.keys.Forward),
	)

	c.ry += c.settings.LookSpeed * c.axis(c.keys.LookLeft, c.keys.LookRight)
	c.rx = clampPitch(c.rx + c.settings.LookSpeed*c.axis(c.keys.LookUp, c.keys.LookDown))

	ry := linalg.RotationY(c.ry)
	r := ry.Mul(linalg.RotationX(c.rx))
	forward := r.MulVec(linalg.Vec3(0, 0, 1))
	up := r.MulVec(linalg.Vec3(0, 1, 0))

	if ndir, ok := dir.Normalize(); ok {
		dir = ry.MulVec(ndir)
	}

	speed := c.settings.WalkSpeed
	if c.input.Down(c.keys.Sprint) {
		speed = c.settings.SprintSpeed
	}

	movement := damp(c.movement, dir, speed, c.settings.Damping, dt)
	position := c.position.Add(movement)

	view, err := View(position, forward, up)
	if err != nil {
		return errors.Wrapf(err, "camera at yaw %.3f pitch %.3f", c.ry, c.rx)
	}

	c.selection = selection
	c.movement = movement
	c.position = position
	c.view = view
	c.projection = FieldOfViewDeg(c.settings.Near, c.settings.Far, width, height, c.settings.FieldOfView)
	return nil
}

// axis returns +1 while only pos is held, -1 while only neg is held and 0
// otherwise.
func (c *Camera) axis(pos, neg Key) linalg.Scalar {
	var v linalg.Scalar
	if c.input.Down(pos) {
		v++
	}
	if c.input.Down(neg) {
		v--
	}
	return v
}

// damp integrates velocity with drag: dt·(damping·mov + speed·dir). The
// result is already scaled by dt and is added to the position as is.
func damp(mov, dir linalg.Vector3, speed, damping linalg.Scalar, dt time.Duration) linalg.Vector3 {
	s := linalg.Scalar(dt.Seconds())
	return mov.Scale(damping).Add(dir.Scale(speed)).Scale(s)
}

// View returns the view matrix of the last tick
func (c *Camera) View() linalg.Matrix4 {
	return c.view
}

// Projection returns the projection matrix of the last tick
func (c *Camera) Projection() linalg.Matrix4 {
	return c.projection
}

// Selection returns the selected item; Selection() == items means all items
func (c *Camera) Selection() int {
	return c.selection
}

// Position returns the camera position
func (c *Camera) Position() linalg.Vector3 {
	return c.position
}

// Velocity returns the movement applied during the last tick
func (c *Camera) Velocity() linalg.Vector3 {
	return c.movement
}

// Yaw returns the rotation around the y axis in radians
func (c *Camera) Yaw() linalg.Scalar {
	return c.ry
}

// Pitch returns the rotation around the x axis in radians
func (c *Camera) Pitch() linalg.Scalar {
	return c.rx
}
