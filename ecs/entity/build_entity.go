package entity

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rigcam/common"
	"github.com/milk9111/rigcam/ecs"
	"github.com/milk9111/rigcam/ecs/component"
	"github.com/milk9111/rigcam/prefabs"
	"github.com/milk9111/rigcam/rig"
)

type buildContext struct {
	Source string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"camera_tag":      addCameraTag,
	"rig_point_tag":   addRigPointTag,
	"transform":       addTransform,
	"camera":          addCamera,
	"camera_rig":      addCameraRig,
	"director":        addDirector,
	"collision_layer": addCollisionLayer,
	"wall":            addWall,
	"floor":           addFloor,
	"patrol":          addPatrol,
	"attach":          addAttach,
}

// componentBuildOrder lists builders whose inputs depend on earlier ones;
// anything not listed runs afterwards in name order.
var componentBuildOrder = []string{
	"camera_tag",
	"rig_point_tag",
	"transform",
	"camera",
	"camera_rig",
	"director",
	"collision_layer",
	"wall",
	"floor",
}

// BuildPrefab creates an entity from the prefab file at path.
func BuildPrefab(w *ecs.World, path string) (ecs.Entity, error) {
	spec, err := prefabs.LoadEntityBuildSpec(path)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", path, err)
	}
	return BuildEntity(w, spec, path)
}

// BuildEntity creates an entity from spec. When spec names a prefab, the
// prefab's components are loaded first and spec's components overlay them.
func BuildEntity(w *ecs.World, spec prefabs.EntityBuildSpec, source string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	components := spec.Components
	if spec.Prefab != "" {
		base, err := prefabs.LoadEntityBuildSpec(spec.Prefab)
		if err != nil {
			return 0, fmt.Errorf("build entity %q: prefab: %w", spec.Name, err)
		}
		components = prefabs.MergeComponents(base.Components, spec.Components)
		if spec.Name == "" {
			spec.Name = base.Name
		}
	}
	if len(components) == 0 {
		return 0, fmt.Errorf("build entity: %q does not define components", spec.Name)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{Source: source}

	if spec.Name != "" {
		if err := ecs.Add(w, e, component.EntityNameComponent.Kind(), &component.EntityName{Name: spec.Name}); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add name: %w", spec.Name, err)
		}
	}

	remaining := make(map[string]any, len(components))
	for k, v := range components {
		remaining[k] = v
	}

	order := append([]string(nil), componentBuildOrder...)
	rest := make([]string, 0, len(remaining))
	for name := range remaining {
		if !contains(componentBuildOrder, name) {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	order = append(order, rest...)

	for _, name := range order {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		builder, ok := componentRegistry[name]
		if !ok {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", spec.Name, name)
		}
		if err := builder(w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", spec.Name, name, err)
		}
	}

	return e, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addRigPointTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.RigPointTagComponent.Kind(), &component.RigPointTag{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	t := component.NewTransform(
		prefabs.Vec3(spec.Position, mgl32.Vec3{}),
		common.EulerToQuat(prefabs.Vec3(spec.Rotation, mgl32.Vec3{})),
	)
	return ecs.Add(w, e, component.TransformComponent.Kind(), &t)
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Near:   spec.Near,
		FovY:   spec.FovY,
		Aspect: spec.Aspect,
	})
}

func addCameraRig(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeCameraRigSpec(raw)
	if err != nil {
		return err
	}
	cr := &component.CameraRig{}
	ApplyCameraRigSpec(cr, spec, ctx.Source)
	return ecs.Add(w, e, component.CameraRigComponent.Kind(), cr)
}

// ApplyCameraRigSpec overwrites the whole rig configuration with spec and
// marks it for rebinding. The running rig, if any, is kept so the camera
// blends from where it is.
func ApplyCameraRigSpec(cr *component.CameraRig, spec prefabs.CameraRigComponentSpec, source string) {
	if cr == nil {
		return
	}
	if cr.FirstPersonName != spec.FirstPerson || cr.ThirdPersonName != spec.ThirdPerson {
		cr.Bound = false
	}
	cr.FirstPersonName = spec.FirstPerson
	cr.ThirdPersonName = spec.ThirdPerson
	cr.StationName = spec.Station
	cr.TargetName = spec.Target
	cr.GazeName = spec.GazeAt
	cr.Param = spec.Param()
	cr.Occlusion = spec.OcclusionSettings()
	cr.Dirty = true
	cr.Source = source
}

// CameraRigSpec is the inverse of ApplyCameraRigSpec: the prefab form of the
// configuration currently held by cr.
func CameraRigSpec(cr *component.CameraRig) prefabs.CameraRigComponentSpec {
	if cr == nil {
		return prefabs.DefaultCameraRigComponentSpec()
	}
	p := cr.Param
	mask := uint32(cr.Occlusion.Mask)
	if cr.Occlusion.Mask == rig.AllLayers {
		mask = 0
	}
	return prefabs.CameraRigComponentSpec{
		FirstPerson:    cr.FirstPersonName,
		ThirdPerson:    cr.ThirdPersonName,
		AutoAvoid:      p.AutoAvoid,
		PositionMode:   p.PositionMode,
		RotationMode:   p.RotationMode,
		PositionHoming: p.PositionHoming,
		RotationHoming: p.RotationHoming,
		PositionRate:   []float32{p.PositionRate[0], p.PositionRate[1], p.PositionRate[2]},
		RotationRate:   p.RotationRate,
		Station:        cr.StationName,
		Target:         cr.TargetName,
		GazeAt:         cr.GazeName,
		CustomPosition: []float32{p.CustomPosition[0], p.CustomPosition[1], p.CustomPosition[2]},
		CustomRotation: []float32{p.CustomRotation[0], p.CustomRotation[1], p.CustomRotation[2]},
		Occlusion: prefabs.OcclusionSpec{
			Mask:       mask,
			Clearance:  cr.Occlusion.Clearance,
			EscapeTrap: cr.Occlusion.EscapeTrap,
			Probes:     cr.Occlusion.Probes,
		},
	}
}

func addDirector(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.DirectorComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode director spec: %w", err)
	}
	if spec.Script == "" {
		return fmt.Errorf("director: script is required")
	}
	return ecs.Add(w, e, component.DirectorComponent.Kind(), &component.Director{
		Script: spec.Script,
		Every:  spec.Every,
	})
}

func addCollisionLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CollisionLayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collision_layer spec: %w", err)
	}
	return ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: spec.Category})
}

func addWall(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.WallComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode wall spec: %w", err)
	}
	if spec.MaxY < spec.MinY {
		return fmt.Errorf("wall: max_y %v below min_y %v", spec.MaxY, spec.MinY)
	}
	return ecs.Add(w, e, component.WallComponent.Kind(), &component.Wall{
		A:      prefabs.Vec2(spec.A, mgl32.Vec2{}),
		B:      prefabs.Vec2(spec.B, mgl32.Vec2{}),
		MinY:   spec.MinY,
		MaxY:   spec.MaxY,
		Radius: spec.Radius,
	})
}

func addFloor(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.FloorComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode floor spec: %w", err)
	}
	lo := prefabs.Vec2(spec.Min, mgl32.Vec2{})
	hi := prefabs.Vec2(spec.Max, mgl32.Vec2{})
	for i := range lo {
		if lo[i] > hi[i] {
			lo[i], hi[i] = hi[i], lo[i]
		}
	}
	return ecs.Add(w, e, component.FloorComponent.Kind(), &component.Floor{Y: spec.Y, Min: lo, Max: hi})
}

func addPatrol(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PatrolComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode patrol spec: %w", err)
	}
	points := make([]mgl32.Vec3, 0, len(spec.Points))
	for _, p := range spec.Points {
		points = append(points, prefabs.Vec3(p, mgl32.Vec3{}))
	}
	return ecs.Add(w, e, component.PatrolComponent.Kind(), &component.Patrol{
		Points:     points,
		Speed:      spec.Speed,
		Loop:       spec.Loop,
		FaceMotion: spec.FaceMotion,
	})
}

func addAttach(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AttachComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode attach spec: %w", err)
	}
	if spec.Parent == "" {
		return fmt.Errorf("attach: parent is required")
	}
	return ecs.Add(w, e, component.AttachComponent.Kind(), &component.Attach{
		Parent:   spec.Parent,
		Offset:   prefabs.Vec3(spec.Offset, mgl32.Vec3{}),
		Rotation: common.EulerToQuat(prefabs.Vec3(spec.Rotation, mgl32.Vec3{})),
	})
}

// SetEntityPose moves e, adding a transform if it has none.
func SetEntityPose(w *ecs.World, e ecs.Entity, p rig.Pose) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		nt := component.NewTransform(p.Position, p.Rotation)
		return ecs.Add(w, e, component.TransformComponent.Kind(), &nt)
	}
	t.SetPose(p)
	return nil
}
