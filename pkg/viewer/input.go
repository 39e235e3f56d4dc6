package viewer

import "github.com/philipparndt/flyview/pkg/linalg"

// Key identifies a keyboard key. Its values belong to the input source.
type Key int32

// EventKind tells what an Event reports
type EventKind int

const (
	KeyDown EventKind = iota
	KeyUp
	MouseMotion
)

// Event is a raw input event delivered by an input source
type Event struct {
	Kind EventKind
	Key  Key
	// DX and DY hold the pointer movement of a MouseMotion event
	DX, DY linalg.Scalar
}

type keySet map[Key]struct{}

// Input accumulates key state between two ticks
type Input struct {
	down     keySet
	pressed  keySet
	released keySet
}

// NewInput creates an empty input accumulator
func NewInput() *Input {
	return &Input{
		down:     make(keySet),
		pressed:  make(keySet),
		released: make(keySet),
	}
}

// Press records a key-down event
func (in *Input) Press(k Key) {
	in.down[k] = struct{}{}
	in.pressed[k] = struct{}{}
}

// Release records a key-up event
func (in *Input) Release(k Key) {
	delete(in.down, k)
	in.released[k] = struct{}{}
}

// Down reports whether the key is currently held
func (in *Input) Down(k Key) bool {
	_, ok := in.down[k]
	return ok
}

// Pressed reports whether the key went down since the last tick
func (in *Input) Pressed(k Key) bool {
	_, ok := in.pressed[k]
	return ok
}

// Released reports whether the key went up since the last tick
func (in *Input) Released(k Key) bool {
	_, ok := in.released[k]
	return ok
}

// EndTick forgets the edges of the finished tick. Held keys stay down.
func (in *Input) EndTick() {
	clear(in.pressed)
	clear(in.released)
}
