package component

import "github.com/go-gl/mathgl/mgl32"

// Floor is a horizontal slab at height Y covering the XZ rectangle Min-Max.
// Ceilings are floors placed above the scene.
type Floor struct {
	Y   float32
	Min mgl32.Vec2
	Max mgl32.Vec2
}

var FloorComponent = NewComponent[Floor]()
