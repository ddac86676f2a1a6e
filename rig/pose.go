package rig

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rigcam/common"
)

// Epsilon is the shortest displacement the rig will normalize. Anything
// shorter is treated as degenerate and the dependent correction is skipped.
const Epsilon float32 = 1e-5

// Pose is a world-space position and orientation.
type Pose struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

func IdentityPose() Pose {
	return Pose{Rotation: mgl32.QuatIdent()}
}

func (p Pose) Forward() mgl32.Vec3 {
	return p.Rotation.Rotate(common.AxisZ)
}

func (p Pose) Up() mgl32.Vec3 {
	return p.Rotation.Rotate(common.AxisY)
}

func (p Pose) Right() mgl32.Vec3 {
	return p.Rotation.Rotate(common.AxisX)
}

// Reference is anything the rig can follow: a rig point, a station, an
// occlusion anchor or a gaze point. A nil Reference, or one that reports
// ok == false, is unbound for the current frame.
type Reference interface {
	Pose() (Pose, bool)
}

// Fixed is a Reference that never moves.
type Fixed Pose

func (f Fixed) Pose() (Pose, bool) {
	return Pose(f), true
}

func lookup(ref Reference) (Pose, bool) {
	if ref == nil {
		return Pose{}, false
	}
	return ref.Pose()
}
