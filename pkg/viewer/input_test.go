package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputPressAndRelease(t *testing.T) {
	in := NewInput()
	in.Press(keyW)

	assert.True(t, in.Down(keyW))
	assert.True(t, in.Pressed(keyW))
	assert.False(t, in.Released(keyW))

	in.EndTick()
	assert.True(t, in.Down(keyW), "held key must survive the tick")
	assert.False(t, in.Pressed(keyW))

	in.Release(keyW)
	assert.False(t, in.Down(keyW))
	assert.True(t, in.Released(keyW))

	in.EndTick()
	assert.False(t, in.Released(keyW))
}

func TestInputTapWithinOneTick(t *testing.T) {
	in := NewInput()
	in.Press(keyN)
	in.Release(keyN)

	assert.False(t, in.Down(keyN))
	assert.True(t, in.Pressed(keyN), "a tap between ticks still counts as a press")
	assert.True(t, in.Released(keyN))
}

func TestInputUnknownKey(t *testing.T) {
	in := NewInput()

	assert.False(t, in.Down(Key(999)))
	assert.False(t, in.Pressed(Key(999)))
}
