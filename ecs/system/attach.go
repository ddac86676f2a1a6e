package system

import (
	"github.com/milk9111/rigcam/ecs"
	"github.com/milk9111/rigcam/ecs/component"
	"github.com/milk9111/rigcam/ecs/entity"
)

// AttachSystem pins attached entities to their parent's local frame. Parents
// are looked up by name every frame so a respawned parent is picked up.
type AttachSystem struct{}

func NewAttachSystem() *AttachSystem {
	return &AttachSystem{}
}

func (as *AttachSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.AttachComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, a *component.Attach, t *component.Transform) {
		parent, ok := entity.FindByName(w, a.Parent)
		if !ok {
			return
		}
		pt, ok := ecs.Get(w, parent, component.TransformComponent.Kind())
		if !ok {
			return
		}
		t.Position = pt.Position.Add(pt.Rotation.Rotate(a.Offset))
		t.Rotation = pt.Rotation.Mul(a.Rotation).Normalize()
	})
}
