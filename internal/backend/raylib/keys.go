package raylib

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/flyview/pkg/viewer"
)

var namedKeys = map[string]int32{
	"space":        rl.KeySpace,
	"enter":        rl.KeyEnter,
	"tab":          rl.KeyTab,
	"backspace":    rl.KeyBackspace,
	"escape":       rl.KeyEscape,
	"left":         rl.KeyLeft,
	"right":        rl.KeyRight,
	"up":           rl.KeyUp,
	"down":         rl.KeyDown,
	"pageup":       rl.KeyPageUp,
	"pagedown":     rl.KeyPageDown,
	"home":         rl.KeyHome,
	"end":          rl.KeyEnd,
	"leftshift":    rl.KeyLeftShift,
	"rightshift":   rl.KeyRightShift,
	"leftcontrol":  rl.KeyLeftControl,
	"rightcontrol": rl.KeyRightControl,
	"leftalt":      rl.KeyLeftAlt,
	"rightalt":     rl.KeyRightAlt,
	"comma":        rl.KeyComma,
	"period":       rl.KeyPeriod,
	"minus":        rl.KeyMinus,
	"equal":        rl.KeyEqual,
}

// KeyByName resolves a key name such as "W", "7", "Space" or "LeftShift".
// Names are case insensitive.
func KeyByName(name string) (viewer.Key, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if len(n) == 1 {
		switch c := n[0]; {
		case c >= 'a' && c <= 'z':
			return viewer.Key(rl.KeyA + int32(c-'a')), true
		case c >= '0' && c <= '9':
			return viewer.Key(c), true // digit key codes are their ASCII values
		}
	}
	k, ok := namedKeys[n]
	return viewer.Key(k), ok
}
