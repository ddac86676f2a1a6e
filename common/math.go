package common

import "github.com/go-gl/mathgl/mgl32"

var (
	AxisX = mgl32.Vec3{1, 0, 0}
	AxisY = mgl32.Vec3{0, 1, 0}
	AxisZ = mgl32.Vec3{0, 0, 1}
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

func Clamp01(t float32) float32 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// SmoothStep eases from a to b along a cubic Hermite curve. t is clamped to [0, 1].
func SmoothStep(a, b, t float32) float32 {
	t = Clamp01(t)
	t = -2*t*t*t + 3*t*t
	return b*t + a*(1-t)
}

// EulerToQuat builds a rotation from Euler angles in degrees. Roll (Z) is
// applied first, then pitch (X), then yaw (Y).
func EulerToQuat(deg mgl32.Vec3) mgl32.Quat {
	yaw := mgl32.QuatRotate(mgl32.DegToRad(deg[1]), AxisY)
	pitch := mgl32.QuatRotate(mgl32.DegToRad(deg[0]), AxisX)
	roll := mgl32.QuatRotate(mgl32.DegToRad(deg[2]), AxisZ)
	return yaw.Mul(pitch).Mul(roll).Normalize()
}
