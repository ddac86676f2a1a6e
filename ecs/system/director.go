package system

import (
	"github.com/milk9111/rigcam/ecs"
	"github.com/milk9111/rigcam/ecs/component"
	"github.com/milk9111/rigcam/prefabs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DirectorSystem runs each camera's director script and turns the script's
// requests into a wholesale configuration swap on the camera rig. It must run
// before CameraRigSystem so a swap lands in the same frame.
type DirectorSystem struct {
	scripts map[ecs.Entity]*directorRuntime
	failed  map[ecs.Entity]string
	ticks   map[ecs.Entity]int
	logger  zerolog.Logger

	// Load reads script sources. It defaults to prefabs.LoadScript.
	Load func(name string) ([]byte, error)
}

func NewDirectorSystem() *DirectorSystem {
	return &DirectorSystem{
		scripts: make(map[ecs.Entity]*directorRuntime),
		failed:  make(map[ecs.Entity]string),
		ticks:   make(map[ecs.Entity]int),
		logger:  log.With().Str("system", "director").Logger(),
		Load:    prefabs.LoadScript,
	}
}

func (ds *DirectorSystem) WithLogger(logger zerolog.Logger) *DirectorSystem {
	ds.logger = logger
	return ds
}

// Invalidate drops compiled scripts so they are reloaded on the next update.
// An empty path drops all of them.
func (ds *DirectorSystem) Invalidate(path string) {
	for e, rt := range ds.scripts {
		if path == "" || rt.scriptPath == path {
			delete(ds.scripts, e)
		}
	}
	for e, p := range ds.failed {
		if path == "" || p == path {
			delete(ds.failed, e)
		}
	}
}

func (ds *DirectorSystem) Update(w *ecs.World) {
	if ds == nil || w == nil {
		return
	}

	live := make(map[ecs.Entity]bool, len(ds.scripts))
	ecs.ForEach2(w, component.DirectorComponent.Kind(), component.CameraRigComponent.Kind(), func(e ecs.Entity, d *component.Director, cr *component.CameraRig) {
		live[e] = true

		if d.Every > 1 {
			ds.ticks[e]++
			if ds.ticks[e]%d.Every != 1 {
				return
			}
		}

		rt, ok := ds.runtime(e, d.Script)
		if !ok {
			return
		}

		logger := ds.logger.With().Str("script", d.Script).Str("camera", entityName(w, e)).Logger()
		edit := &directorEdit{cr: *cr}
		if err := rt.run(buildDirectorEngine(w, edit, logger)); err != nil {
			logger.Error().Err(err).Msg("director: run")
			return
		}
		if !edit.changed {
			return
		}

		cr.Param = edit.cr.Param
		cr.StationName = edit.cr.StationName
		cr.TargetName = edit.cr.TargetName
		cr.GazeName = edit.cr.GazeName
		cr.Dirty = true
		cr.Source = "director:" + d.Script
	})

	for e := range ds.scripts {
		if !live[e] {
			delete(ds.scripts, e)
			delete(ds.ticks, e)
		}
	}
	for e := range ds.failed {
		if !live[e] {
			delete(ds.failed, e)
		}
	}
}

func (ds *DirectorSystem) runtime(e ecs.Entity, path string) (*directorRuntime, bool) {
	if rt, ok := ds.scripts[e]; ok && rt.scriptPath == path {
		return rt, true
	}
	if ds.failed[e] == path {
		return nil, false
	}

	src, err := ds.Load(path)
	if err == nil {
		var rt *directorRuntime
		if rt, err = compileDirector(path, src); err == nil {
			ds.scripts[e] = rt
			delete(ds.failed, e)
			return rt, true
		}
	}
	// logged once per script until invalidated
	ds.logger.Error().Err(err).Str("script", path).Msg("director: load")
	ds.failed[e] = path
	return nil, false
}
