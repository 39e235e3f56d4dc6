// Package raylib draws scenes and reads input through raylib.
//
// Everything here talks to the GL context and must run on the goroutine
// that called Open.
package raylib

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"

	"github.com/philipparndt/flyview/internal/config"
	"github.com/philipparndt/flyview/pkg/linalg"
	"github.com/philipparndt/flyview/pkg/viewer"
)

// Window is the native window and doubles as the loop's input source
type Window struct {
	log    logrus.FieldLogger
	keys   []viewer.Key
	events []viewer.Event
}

// Open creates the window and captures the cursor
func Open(cfg config.Window, log logrus.FieldLogger) *Window {
	flags := uint32(rl.FlagWindowResizable)
	if cfg.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags) // Must be before InitWindow
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(cfg.Width, cfg.Height, cfg.Title)
	if cfg.TargetFPS > 0 {
		rl.SetTargetFPS(cfg.TargetFPS)
	}
	rl.DisableCursor()

	log.WithFields(logrus.Fields{
		"width":  rl.GetRenderWidth(),
		"height": rl.GetRenderHeight(),
	}).Info("window opened")

	return &Window{log: log}
}

// Track sets the keys reported by PollEvents
func (w *Window) Track(keys []viewer.Key) {
	w.keys = append(w.keys[:0], keys...)
}

// PollEvents reports edges of tracked keys and the mouse movement since
// the previous frame. raylib refreshes its input state in EndDrawing.
func (w *Window) PollEvents() []viewer.Event {
	w.events = w.events[:0]
	for _, k := range w.keys {
		if rl.IsKeyPressed(int32(k)) {
			w.events = append(w.events, viewer.Event{Kind: viewer.KeyDown, Key: k})
		}
		if rl.IsKeyReleased(int32(k)) {
			w.events = append(w.events, viewer.Event{Kind: viewer.KeyUp, Key: k})
		}
	}

	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		w.events = append(w.events, viewer.Event{Kind: viewer.MouseMotion, DX: d.X, DY: d.Y})
	}
	return w.events
}

// ShouldClose reports a close request from the window manager or Escape
func (w *Window) ShouldClose() bool {
	return rl.WindowShouldClose()
}

// Viewport returns the framebuffer size in pixels
func (w *Window) Viewport() (linalg.Scalar, linalg.Scalar) {
	return linalg.Scalar(rl.GetRenderWidth()), linalg.Scalar(rl.GetRenderHeight())
}

// Close destroys the window
func (w *Window) Close() {
	rl.CloseWindow()
	w.log.Debug("window closed")
}
