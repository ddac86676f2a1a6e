package scene

import (
	"fmt"

	"github.com/milk9111/rigcam/ecs"
	"github.com/milk9111/rigcam/ecs/component"
	"github.com/milk9111/rigcam/ecs/entity"
	"github.com/milk9111/rigcam/ecs/system"
	"github.com/milk9111/rigcam/levels"
	"github.com/milk9111/rigcam/rig"
)

// Scene is a loaded level with its systems wired in update order: movement,
// attachments, physics sync, director scripts, then the camera rigs.
type Scene struct {
	Level    *levels.Level
	World    *ecs.World
	Physics  *system.PhysicsSystem
	Director *system.DirectorSystem
	Cameras  *system.CameraRigSystem
}

// Load builds the named level.
func Load(name string) (*Scene, error) {
	lvl, err := levels.Load(name)
	if err != nil {
		return nil, err
	}
	return New(lvl)
}

func New(lvl *levels.Level) (*Scene, error) {
	w := ecs.NewWorld()
	if _, err := entity.BuildLevel(w, lvl); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	physics := system.NewPhysicsSystem()
	director := system.NewDirectorSystem()
	cameras := system.NewCameraRigSystem(physics)

	w.AddSystem(system.NewPatrolSystem())
	w.AddSystem(system.NewAttachSystem())
	w.AddSystem(physics)
	w.AddSystem(director)
	w.AddSystem(cameras)

	return &Scene{
		Level:    lvl,
		World:    w,
		Physics:  physics,
		Director: director,
		Cameras:  cameras,
	}, nil
}

// Step advances the scene by dt seconds.
func (s *Scene) Step(dt float64) {
	s.World.Update(dt)
}

// Camera returns the first camera rig entity.
func (s *Scene) Camera() (ecs.Entity, *component.CameraRig, bool) {
	e, ok := ecs.First(s.World, component.CameraRigComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	cr, ok := ecs.Get(s.World, e, component.CameraRigComponent.Kind())
	return e, cr, ok
}

// CameraPose returns the first camera's pose and the diagnostics of its last
// update.
func (s *Scene) CameraPose() (rig.Pose, rig.Frame, bool) {
	_, cr, ok := s.Camera()
	if !ok || cr.Rig == nil {
		return rig.IdentityPose(), rig.Frame{}, false
	}
	return cr.Rig.Pose(), cr.Rig.Frame(), true
}

// Edit applies fn to the first camera's configuration and schedules the swap
// for the next step.
func (s *Scene) Edit(source string, fn func(cr *component.CameraRig)) bool {
	_, cr, ok := s.Camera()
	if !ok {
		return false
	}
	fn(cr)
	cr.Dirty = true
	cr.Source = source
	return true
}
