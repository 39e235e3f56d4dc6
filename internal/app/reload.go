package app

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/philipparndt/flyview/pkg/openscad"
	"github.com/philipparndt/flyview/pkg/watcher"
)

const reloadDebounce = 300 * time.Millisecond

// startWatching watches the config file and the model. Changes are handed
// to the loop so reloading happens between frames on the GL thread.
func (a *App) startWatching() error {
	fw, err := watcher.NewFileWatcher(reloadDebounce, a.log)
	if err != nil {
		return err
	}
	a.watcher = fw

	if err := a.watchFiles(); err != nil {
		fw.Close()
		a.watcher = nil
		return err
	}
	fw.Start()
	return nil
}

func (a *App) watchFiles() error {
	if err := a.watcher.RemoveAll(); err != nil {
		return err
	}
	if a.opts.ConfigPath != "" {
		if err := a.watcher.Watch([]string{a.opts.ConfigPath}, func(string) { a.enqueue(a.reloadConfig) }); err != nil {
			return err
		}
	}
	files, err := modelFiles(a.cfg.Model)
	if err != nil {
		return err
	}
	return a.watcher.Watch(files, func(string) { a.enqueue(a.reloadModel) })
}

// modelFiles lists the files a model is built from. For OpenSCAD sources
// that includes every used or included file.
func modelFiles(model string) ([]string, error) {
	if !strings.EqualFold(filepath.Ext(model), ".scad") {
		return []string{model}, nil
	}
	return openscad.NewRenderer(filepath.Dir(model)).ResolveDependencies(model)
}

func (a *App) enqueue(fn func()) {
	if a.loop == nil || !a.loop.Enqueue(fn) {
		a.log.Warn("reload dropped, loop is busy")
	}
}

// reloadConfig applies a changed config file. An invalid file is reported
// and the running configuration kept. Window and key settings need a
// restart.
func (a *App) reloadConfig() {
	cfg, err := LoadConfig(a.opts, a.log)
	if err != nil {
		a.log.WithError(err).Warn("keeping previous config")
		return
	}

	if cfg.Window != a.cfg.Window || cfg.Keys != a.cfg.Keys {
		a.log.Info("window and key changes take effect after a restart")
	}

	a.log.SetLevel(cfg.Level())
	a.camera.Configure(cfg.Settings())
	a.stage.Relight(cfg.SceneLights())

	modelChanged := cfg.Model != a.cfg.Model
	a.cfg = cfg
	a.log.Info("config reloaded")

	if modelChanged {
		a.reloadModel()
		if a.watcher != nil {
			if err := a.watchFiles(); err != nil {
				a.log.WithError(err).Warn("auto-reload will not be available")
			}
		}
	}
}

// reloadModel loads the configured model again. On failure the current
// model stays on screen.
func (a *App) reloadModel() {
	model, err := a.stage.Load(a.cfg.Model, a.cfg.SceneLights())
	if err != nil {
		a.log.WithError(err).Warn("keeping previous model")
		return
	}
	a.camera.SetItems(model.Len())

	// an edit may have added or dropped includes
	if a.watcher != nil && strings.EqualFold(filepath.Ext(a.cfg.Model), ".scad") {
		if err := a.watchFiles(); err != nil {
			a.log.WithError(err).Warn("auto-reload will not be available")
		}
	}
}
