package entity

import (
	"fmt"

	"github.com/milk9111/rigcam/ecs"
	"github.com/milk9111/rigcam/prefabs"
)

const CameraPrefab = "camera_rig.yaml"

// NewCamera builds a camera rig entity from the default camera prefab.
func NewCamera(w *ecs.World) (ecs.Entity, error) {
	camera, err := BuildPrefab(w, CameraPrefab)
	if err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}
	return camera, nil
}

// NewCameraWith builds the default camera with component overrides layered on
// top, the way level entries extend a prefab.
func NewCameraWith(w *ecs.World, name string, overrides map[string]any) (ecs.Entity, error) {
	camera, err := BuildEntity(w, prefabs.EntityBuildSpec{
		Name:       name,
		Prefab:     CameraPrefab,
		Components: overrides,
	}, CameraPrefab)
	if err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}
	return camera, nil
}
