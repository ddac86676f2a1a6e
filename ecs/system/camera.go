package system

import (
	"github.com/milk9111/rigcam/ecs"
	"github.com/milk9111/rigcam/ecs/component"
	"github.com/milk9111/rigcam/ecs/entity"
	"github.com/milk9111/rigcam/prefabs"
	"github.com/milk9111/rigcam/rig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// CameraRigSystem drives every camera that carries a CameraRig. It owns the
// rig lifecycle: creation, binding the named rig points, swapping in changed
// configuration, and writing the updated pose back to the camera transform.
type CameraRigSystem struct {
	scene  rig.SceneQuery
	logger zerolog.Logger
}

func NewCameraRigSystem(scene rig.SceneQuery) *CameraRigSystem {
	return &CameraRigSystem{
		scene:  scene,
		logger: log.With().Str("system", "camera_rig").Logger(),
	}
}

// WithLogger replaces the system's logger.
func (cs *CameraRigSystem) WithLogger(logger zerolog.Logger) *CameraRigSystem {
	cs.logger = logger
	return cs
}

func (cs *CameraRigSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}

	cs.handleReloads(w)

	dt := float32(w.DeltaTime())
	finder := worldFinder{w: w}

	ecs.ForEach2(w, component.CameraRigComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, cr *component.CameraRig, t *component.Transform) {
		lens := rig.DefaultLens()
		if cam, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok {
			lens = cam.Lens()
		}

		logger := cs.logger.With().Str("camera", entityName(w, e)).Logger()
		if cr.Rig == nil {
			cr.Rig = rig.New(cr.Param,
				rig.WithScene(cs.scene),
				rig.WithOcclusion(cr.Occlusion),
				rig.WithLogger(logger),
				rig.WithPose(t.Pose()),
			)
			cr.Dirty = true
		}

		if !cr.Bound {
			cr.Rig.Bind(finder, cr.FirstPersonName, cr.ThirdPersonName)
			cr.Bound = true
			w.Events().Push(ecs.Event{Type: ecs.RigEventType, Data: ecs.RigEvent{Entity: e, Kind: ecs.RigEventBound, Source: cr.Source}})
		}

		if cr.Dirty {
			cr.Rig.SetParam(cs.resolveParam(finder, logger, cr))
			cr.Rig.SetOcclusion(cr.Occlusion)
			cr.Dirty = false
			w.Events().Push(ecs.Event{Type: ecs.RigEventType, Data: ecs.RigEvent{Entity: e, Kind: ecs.RigEventParamChanged, Source: cr.Source}})
		}

		t.SetPose(cr.Rig.Update(dt, lens))

		if cr.Rig.Frame().Correction.Hits > 0 {
			w.Events().Push(ecs.Event{Type: ecs.RigEventType, Data: ecs.RigEvent{Entity: e, Kind: ecs.RigEventOccluded}})
		}
	})
}

// resolveParam rebuilds the rig's references from the configured names.
func (cs *CameraRigSystem) resolveParam(f rig.Finder, logger zerolog.Logger, cr *component.CameraRig) rig.Param {
	p := cr.Param
	p.Station = findReference(f, logger, "station", cr.StationName)
	p.Target = findReference(f, logger, "target", cr.TargetName)
	p.GazeAt = findReference(f, logger, "gaze", cr.GazeName)
	return p
}

func findReference(f rig.Finder, logger zerolog.Logger, role, name string) rig.Reference {
	if name == "" {
		return nil
	}
	ref, ok := f.FindByName(name)
	if !ok {
		logger.Warn().Str(role, name).Msg("reference not found")
		return nil
	}
	return ref
}

// handleReloads applies and consumes pending ReloadRequest entities.
func (cs *CameraRigSystem) handleReloads(w *ecs.World) {
	var done []ecs.Entity
	ecs.ForEach(w, component.ReloadRequestComponent.Kind(), func(e ecs.Entity, req *component.ReloadRequest) {
		done = append(done, e)
		spec, err := prefabs.LoadCameraRigSpec(req.Prefab)
		if err != nil {
			cs.logger.Error().Err(err).Str("prefab", req.Prefab).Msg("reload camera rig")
			return
		}
		n := cs.Reload(w, spec, req.Prefab)
		cs.logger.Info().Str("prefab", req.Prefab).Int("rigs", n).Msg("camera rig reloaded")
	})
	for _, e := range done {
		ecs.DestroyEntity(w, e)
	}
}

// Reload swaps spec into every camera rig. The new configuration takes effect
// on the next update. It returns the number of rigs changed.
func (cs *CameraRigSystem) Reload(w *ecs.World, spec prefabs.CameraRigComponentSpec, source string) int {
	n := 0
	ecs.ForEach(w, component.CameraRigComponent.Kind(), func(_ ecs.Entity, cr *component.CameraRig) {
		entity.ApplyCameraRigSpec(cr, spec, source)
		n++
	})
	return n
}

// RequestReload queues a reload of prefab for the next update.
func RequestReload(w *ecs.World, prefab string) error {
	e := ecs.CreateEntity(w)
	return ecs.Add(w, e, component.ReloadRequestComponent.Kind(), &component.ReloadRequest{Prefab: prefab})
}

// worldFinder resolves names to live entity transforms.
type worldFinder struct {
	w *ecs.World
}

func (f worldFinder) FindByName(name string) (rig.Reference, bool) {
	e, ok := entity.FindByName(f.w, name)
	if !ok {
		return nil, false
	}
	return entityRef{w: f.w, e: e}, true
}

// entityRef reads an entity's transform each time it is asked, and reports
// unbound once the entity is destroyed or loses its transform.
type entityRef struct {
	w *ecs.World
	e ecs.Entity
}

func (r entityRef) Pose() (rig.Pose, bool) {
	t, ok := ecs.Get(r.w, r.e, component.TransformComponent.Kind())
	if !ok {
		return rig.Pose{}, false
	}
	return t.Pose(), true
}

func entityName(w *ecs.World, e ecs.Entity) string {
	if n, ok := ecs.Get(w, e, component.EntityNameComponent.Kind()); ok {
		return n.Name
	}
	return e.String()
}
