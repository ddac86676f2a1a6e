package component

import "github.com/go-gl/mathgl/mgl32"

// Attach keeps an entity at a fixed offset in the local frame of the entity
// named Parent.
type Attach struct {
	Parent   string
	Offset   mgl32.Vec3
	Rotation mgl32.Quat
}

var AttachComponent = NewComponent[Attach]()
