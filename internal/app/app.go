package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/philipparndt/flyview/internal/backend/raylib"
	"github.com/philipparndt/flyview/internal/config"
	"github.com/philipparndt/flyview/pkg/scene"
	"github.com/philipparndt/flyview/pkg/viewer"
	"github.com/philipparndt/flyview/pkg/watcher"
)

// Options are the command line overrides. Zero values keep the
// configured setting.
type Options struct {
	ConfigPath  string
	Model       string
	FieldOfView float32
	LogLevel    string
	NoWatch     bool
}

// Stage holds the GPU side of the scene
type Stage interface {
	// Load reads a model, replaces the one being drawn and returns it
	Load(path string, lights *scene.Lights) (*scene.Model, error)
	// Relight switches the drawn model to new lights
	Relight(lights *scene.Lights)
}

// App is a running viewer
type App struct {
	opts   Options
	cfg    config.Config
	log    *logrus.Logger
	stage  Stage
	camera *viewer.Camera
	loop   *viewer.Loop

	watcher *watcher.FileWatcher
}

// NewLogger returns the logger used by the viewer
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	return log
}

// Run opens the window and shows the configured model until the window is
// closed or ctx is canceled. It must be called from the main goroutine
// with the OS thread locked.
func Run(ctx context.Context, opts Options, log *logrus.Logger) error {
	cfg, err := LoadConfig(opts, log)
	if err != nil {
		return err
	}
	log.SetLevel(cfg.Level())

	bindings, err := cfg.Bindings(raylib.KeyByName)
	if err != nil {
		return errors.Wrap(err, "invalid config")
	}

	win := raylib.Open(cfg.Window, log)
	defer win.Close()
	win.Track(bindings.Keys())

	shader, err := raylib.LoadShader(cfg.VertexShader, cfg.FragmentShader, log)
	if err != nil {
		return err
	}
	renderer := raylib.NewRenderer(shader, log)
	defer renderer.Close()

	a, err := newApp(opts, cfg, &raylibStage{renderer: renderer, log: log}, bindings, log)
	if err != nil {
		return err
	}

	a.loop = viewer.NewLoop(a.camera, win, renderer)
	a.loop.Tick = cfg.Tick
	a.loop.Log = log

	if cfg.Watch {
		if err := a.startWatching(); err != nil {
			log.WithError(err).Warn("auto-reload will not be available")
		} else {
			defer a.watcher.Close()
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = a.loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info("interrupted")
		return nil
	}
	return err
}

// newApp loads the first model and sets up the camera
func newApp(opts Options, cfg config.Config, stage Stage, bindings viewer.Bindings, log *logrus.Logger) (*App, error) {
	model, err := stage.Load(cfg.Model, cfg.SceneLights())
	if err != nil {
		return nil, err
	}

	a := &App{
		opts:   opts,
		cfg:    cfg,
		log:    log,
		stage:  stage,
		camera: viewer.NewCamera(cfg.Settings(), bindings, model.Len()),
	}
	if cfg.Camera.Frame {
		if pos, ok := model.Frame(); ok {
			a.camera.MoveTo(pos)
		}
	}
	return a, nil
}

// LoadConfig reads the config file and applies the command line overrides
func LoadConfig(opts Options, log logrus.FieldLogger) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath, log)
	if err != nil {
		return cfg, err
	}

	if opts.Model != "" {
		cfg.Model = opts.Model
	}
	if opts.FieldOfView > 0 {
		cfg.Camera.FieldOfView = opts.FieldOfView
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.NoWatch {
		cfg.Watch = false
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

type raylibStage struct {
	renderer *raylib.Renderer
	log      logrus.FieldLogger
}

func (s *raylibStage) Load(path string, lights *scene.Lights) (*scene.Model, error) {
	asset, err := raylib.LoadModel(path, lights, s.log)
	if err != nil {
		return nil, err
	}
	s.renderer.Replace(asset)
	return asset.Model, nil
}

func (s *raylibStage) Relight(lights *scene.Lights) {
	if asset := s.renderer.Asset(); asset != nil {
		asset.Relight(lights)
	}
}
