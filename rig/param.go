package rig

import "github.com/go-gl/mathgl/mgl32"

// Param is the rig's whole configuration. It is a value: Rig.SetParam swaps
// every field at once and there is no partial update.
type Param struct {
	AutoAvoid bool

	PositionMode PositionMode
	RotationMode RotationMode

	PositionHoming HomingMode
	RotationHoming HomingMode

	// PositionRate is the per-axis homing rate in 1/s.
	PositionRate mgl32.Vec3
	// RotationRate is the rotation homing rate in 1/s.
	RotationRate float32

	Station Reference
	// Target anchors occlusion checks when bound.
	Target Reference
	GazeAt Reference

	// CustomRotation holds Euler angles in degrees.
	CustomRotation mgl32.Vec3
	CustomPosition mgl32.Vec3
}

func DefaultParam() Param {
	return Param{
		AutoAvoid:      true,
		PositionMode:   PositionFirstPerson,
		RotationMode:   RotationFirstPerson,
		PositionHoming: HomingDirect,
		RotationHoming: HomingDirect,
		PositionRate:   mgl32.Vec3{2, 2, 2},
		RotationRate:   20,
	}
}

// Occlusion holds the corrector's scene settings. They belong to the rig, not
// to Param, so swapping Param never changes them.
type Occlusion struct {
	Mask Mask
	// Clearance keeps the camera this far short of a hit surface.
	Clearance float32
	// EscapeTrap is the distance below which a blocked move is clamped.
	EscapeTrap float32
	Probes     ProbePolicy
}

func DefaultOcclusion() Occlusion {
	return Occlusion{
		Mask:       AllLayers,
		Clearance:  0.1,
		EscapeTrap: 3.0,
		Probes:     ProbeCumulative,
	}
}
