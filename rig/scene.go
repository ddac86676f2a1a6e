package rig

import "github.com/go-gl/mathgl/mgl32"

// Mask selects which collision categories a segment cast considers.
type Mask uint32

const AllLayers Mask = ^Mask(0)

// Hit is the first blocking surface found along a segment.
type Hit struct {
	// Distance from the segment start to Point.
	Distance float32
	Point    mgl32.Vec3
}

// SceneQuery casts segments against scene geometry.
type SceneQuery interface {
	SegmentCast(from, to mgl32.Vec3, mask Mask) (Hit, bool)
}

// Finder resolves a rig point by name. It is consulted once, when the rig is bound.
type Finder interface {
	FindByName(name string) (Reference, bool)
}

// Lens is the per-frame camera projection the frustum probes are built from.
type Lens struct {
	Near float32
	// FovY is the vertical field of view in degrees.
	FovY   float32
	Aspect float32
}

func DefaultLens() Lens {
	return Lens{Near: 0.3, FovY: 60, Aspect: 16.0 / 9.0}
}
