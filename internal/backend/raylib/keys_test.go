package raylib

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"

	"github.com/philipparndt/flyview/internal/config"
	"github.com/philipparndt/flyview/pkg/viewer"
)

func TestKeyByName(t *testing.T) {
	cases := map[string]int32{
		"W":         rl.KeyW,
		"c":         rl.KeyC,
		"2":         rl.KeyTwo,
		"Space":     rl.KeySpace,
		"LeftShift": rl.KeyLeftShift,
		" left ":    rl.KeyLeft,
		"ESCAPE":    rl.KeyEscape,
	}
	for name, want := range cases {
		got, ok := KeyByName(name)
		assert.True(t, ok, name)
		assert.Equal(t, viewer.Key(want), got, name)
	}

	_, ok := KeyByName("Hyper")
	assert.False(t, ok)
	_, ok = KeyByName("")
	assert.False(t, ok)
}

func TestDefaultBindingsResolve(t *testing.T) {
	b, err := config.Default().Bindings(KeyByName)

	assert.NoError(t, err)
	assert.Equal(t, viewer.Key(rl.KeyJ), b.Next)
	assert.Equal(t, viewer.Key(rl.KeyC), b.Down)
}
