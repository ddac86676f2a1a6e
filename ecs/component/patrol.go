package component

import "github.com/go-gl/mathgl/mgl32"

// Patrol walks an entity along Points at Speed units per second.
type Patrol struct {
	Points []mgl32.Vec3
	Speed  float32
	// Loop wraps from the last point to the first; otherwise the walk
	// reverses at either end.
	Loop bool
	// FaceMotion turns the entity to look along its heading.
	FaceMotion bool

	Next    int
	Reverse bool
}

var PatrolComponent = NewComponent[Patrol]()
