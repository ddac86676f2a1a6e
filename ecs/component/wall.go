package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
)

// Wall is a vertical slab standing on the segment A-B of the XZ plane,
// spanning MinY to MaxY. Radius thickens it on both sides.
type Wall struct {
	A      mgl32.Vec2
	B      mgl32.Vec2
	MinY   float32
	MaxY   float32
	Radius float32

	// Shape is owned by the physics system.
	Shape *cp.Shape
}

var WallComponent = NewComponent[Wall]()
