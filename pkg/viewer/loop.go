package viewer

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/philipparndt/flyview/pkg/linalg"
)

// TimePerTick is the default simulation period, 60 ticks per second
const TimePerTick = 16_666_667 * time.Nanosecond

// Source delivers input and window state to the loop
type Source interface {
	// PollEvents returns the events received since the previous call
	PollEvents() []Event
	// ShouldClose reports whether the user asked to close the window
	ShouldClose() bool
	// Viewport returns the framebuffer size
	Viewport() (width, height linalg.Scalar)
}

// Renderer draws one frame from fresh camera matrices
type Renderer interface {
	Draw(view, projection linalg.Matrix4, selection int) error
}

// Clock tells the loop what time it is
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Loop drives a Camera at a fixed tick rate and draws on every pass. All
// state is owned by the goroutine calling Run.
type Loop struct {
	Camera   *Camera
	Source   Source
	Renderer Renderer
	Tick     time.Duration
	Clock    Clock
	Log      logrus.FieldLogger

	tasks       chan func()
	lastUpdated time.Time
	started     bool
	frames      int
	nextReport  time.Time
}

// NewLoop creates a loop with the default tick and the system clock
func NewLoop(camera *Camera, source Source, renderer Renderer) *Loop {
	return &Loop{
		Camera:   camera,
		Source:   source,
		Renderer: renderer,
		Tick:     TimePerTick,
		Clock:    systemClock{},
		Log:      logrus.StandardLogger(),
		tasks:    make(chan func(), 16),
	}
}

// Enqueue schedules fn to run on the loop goroutine before the next pass.
// It is safe to call from any goroutine and drops fn if the queue is full.
func (l *Loop) Enqueue(fn func()) bool {
	select {
	case l.tasks <- fn:
		return true
	default:
		return false
	}
}

// Run executes passes until the source asks to close, the context is done
// or a pass fails. A close request ends the loop without error.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if l.Source.ShouldClose() {
			l.Log.Debug("close requested")
			return nil
		}
		if _, err := l.Step(); err != nil {
			return err
		}
	}
}

// Step runs one pass: queued tasks, input, at most one update, one draw.
// It reports whether the camera was updated.
func (l *Loop) Step() (bool, error) {
	now := l.Clock.Now()
	if !l.started {
		l.started = true
		l.lastUpdated = now
		l.nextReport = now.Add(time.Second)
	}

	l.runTasks()

	for _, ev := range l.Source.PollEvents() {
		l.Camera.Handle(ev)
	}

	elapsed := now.Sub(l.lastUpdated)
	update := elapsed >= l.Tick
	if update {
		w, h := l.Source.Viewport()
		if err := l.Camera.Update(elapsed, w, h); err != nil {
			return false, errors.Wrap(err, "update")
		}
		l.lastUpdated = now
	}

	if err := l.Renderer.Draw(l.Camera.View(), l.Camera.Projection(), l.Camera.Selection()); err != nil {
		return update, errors.Wrap(err, "draw")
	}

	l.frames++
	if !now.Before(l.nextReport) {
		l.Log.WithField("fps", l.frames).Debug("frame rate")
		l.frames = 0
		l.nextReport = now.Add(time.Second)
	}
	return update, nil
}

func (l *Loop) runTasks() {
	for {
		select {
		case fn := <-l.tasks:
			fn()
		default:
			return
		}
	}
}
