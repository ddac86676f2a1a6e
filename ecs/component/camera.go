package component

import "github.com/milk9111/rigcam/rig"

// Camera holds the lens the rig's frustum probes are built from.
type Camera struct {
	Near   float32
	FovY   float32
	Aspect float32
}

func (c Camera) Lens() rig.Lens {
	l := rig.DefaultLens()
	if c.Near > 0 {
		l.Near = c.Near
	}
	if c.FovY > 0 {
		l.FovY = c.FovY
	}
	if c.Aspect > 0 {
		l.Aspect = c.Aspect
	}
	return l
}

var CameraComponent = NewComponent[Camera]()
