package rig

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rigcam/common"
)

// Rigs holds the two named rig points bound at startup. Either may be nil.
type Rigs struct {
	FirstPerson Reference
	ThirdPerson Reference
}

// Resolve picks this frame's target pose from the active modes.
//
// When the position mode's reference is unbound the previous target position
// is kept. When the rotation mode's reference is unbound the custom rotation
// is used. current is the camera pose before the update; only Gaze reads it.
func Resolve(p Param, rigs Rigs, current Pose, previous mgl32.Vec3) Pose {
	target := Pose{
		Position: previous,
		Rotation: common.EulerToQuat(p.CustomRotation),
	}

	switch p.PositionMode {
	case PositionFirstPerson:
		if ref, ok := lookup(rigs.FirstPerson); ok {
			target.Position = ref.Position
		}
	case PositionThirdPerson:
		if ref, ok := lookup(rigs.ThirdPerson); ok {
			target.Position = ref.Position
		}
	case PositionStation:
		if ref, ok := lookup(p.Station); ok {
			target.Position = ref.Position
		}
	case PositionCustom:
		target.Position = p.CustomPosition
	}

	switch p.RotationMode {
	case RotationFirstPerson:
		if ref, ok := lookup(rigs.FirstPerson); ok {
			target.Rotation = ref.Rotation.Normalize()
		}
	case RotationThirdPerson:
		if ref, ok := lookup(rigs.ThirdPerson); ok {
			target.Rotation = ref.Rotation.Normalize()
		}
	case RotationStation:
		if ref, ok := lookup(p.Station); ok {
			target.Rotation = ref.Rotation.Normalize()
		}
	case RotationGaze:
		if ref, ok := lookup(p.GazeAt); ok {
			if q, ok := GazeRotation(current.Position, ref.Position); ok {
				target.Rotation = q
			}
		}
	case RotationCustom:
	}

	return target
}

// GazeRotation returns the shortest-arc rotation taking the forward axis onto
// the direction from eye to at. It reports false when the two points coincide.
func GazeRotation(eye, at mgl32.Vec3) (mgl32.Quat, bool) {
	dir := at.Sub(eye)
	if dir.Len() < Epsilon {
		return mgl32.QuatIdent(), false
	}
	return mgl32.QuatBetweenVectors(common.AxisZ, dir).Normalize(), true
}
