package rig

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rigcam/common"
)

// BlendPosition moves current toward target. The per-axis factor is
// rate[axis]*dt, clamped to [0, 1]; Slerp eases each axis along a smoothstep
// curve instead of a straight line.
func BlendPosition(current, target mgl32.Vec3, mode HomingMode, rate mgl32.Vec3, dt float32) mgl32.Vec3 {
	switch mode {
	case HomingDirect:
		return target
	case HomingLerp:
		for i := range current {
			current[i] = common.Lerp(current[i], target[i], common.Clamp01(rate[i]*dt))
		}
	case HomingSlerp:
		for i := range current {
			current[i] = common.SmoothStep(current[i], target[i], rate[i]*dt)
		}
	case HomingStop:
	}
	return current
}

// BlendRotation turns current toward target by rate*dt, clamped to [0, 1].
// Lerp is a normalized linear blend, Slerp a spherical one; both take the
// shorter arc.
func BlendRotation(current, target mgl32.Quat, mode HomingMode, rate, dt float32) mgl32.Quat {
	switch mode {
	case HomingDirect:
		return target
	case HomingLerp:
		if current.Dot(target) < 0 {
			target = target.Scale(-1)
		}
		return mgl32.QuatNlerp(current, target, common.Clamp01(rate*dt))
	case HomingSlerp:
		return mgl32.QuatSlerp(current, target, common.Clamp01(rate*dt)).Normalize()
	case HomingStop:
	}
	return current
}
