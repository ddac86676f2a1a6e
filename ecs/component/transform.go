package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rigcam/rig"
)

// Transform is an entity's world pose. Rotation is kept normalized by the
// systems that write it.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

func NewTransform(pos mgl32.Vec3, rot mgl32.Quat) Transform {
	return Transform{Position: pos, Rotation: rot.Normalize()}
}

func (t Transform) Pose() rig.Pose {
	return rig.Pose{Position: t.Position, Rotation: t.Rotation}
}

func (t *Transform) SetPose(p rig.Pose) {
	t.Position = p.Position
	t.Rotation = p.Rotation
}

var TransformComponent = NewComponent[Transform]()
