package rig

import (
	"bytes"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rigcam/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCustomDirect(t *testing.T) {
	p := DefaultParam()
	p.PositionMode = PositionCustom
	p.RotationMode = RotationCustom
	p.CustomPosition = mgl32.Vec3{1, 2, 3}
	p.CustomRotation = mgl32.Vec3{0, 90, 0}

	r := New(p, WithScene(&scriptedScene{}))
	got := r.Update(1.0/60, DefaultLens())

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, got.Position)
	s := float32(math.Sqrt2 / 2)
	assertQuatInDelta(t, mgl32.Quat{W: s, V: mgl32.Vec3{0, s, 0}}, got.Rotation, 1e-5, "rotation %v", got.Rotation)
	assert.Equal(t, got, r.Pose())
}

func TestUpdateAnchoredOcclusion(t *testing.T) {
	p := DefaultParam()
	p.PositionMode = PositionCustom
	p.CustomPosition = mgl32.Vec3{10, 0, 0}
	p.Target = at(0, 0, 0)

	scene := &scriptedScene{hit: hitFrom(mgl32.Vec3{}, 4)}
	r := New(p, WithScene(scene))
	got := r.Update(1.0/60, DefaultLens())

	assert.InDelta(t, 3.9, float64(got.Position[0]), 1e-5)
	frame := r.Frame()
	assert.True(t, frame.Avoided)
	assert.True(t, frame.Correction.Anchored)
	assert.Equal(t, mgl32.Vec3{10, 0, 0}, frame.Resolved.Position)
}

func TestUpdateAutoAvoidOffSkipsScene(t *testing.T) {
	p := DefaultParam()
	p.AutoAvoid = false
	p.PositionMode = PositionCustom
	p.CustomPosition = mgl32.Vec3{10, 0, 0}
	p.Target = at(0, 0, 0)

	scene := &scriptedScene{hit: hitFrom(mgl32.Vec3{}, 4)}
	r := New(p, WithScene(scene))
	got := r.Update(1.0/60, DefaultLens())

	assert.Equal(t, mgl32.Vec3{10, 0, 0}, got.Position)
	assert.Empty(t, scene.calls)
	assert.False(t, r.Frame().Avoided)
}

func TestUpdateKeepsPreviousTargetWhenRigDisappears(t *testing.T) {
	first := &movable{pose: Pose{Position: mgl32.Vec3{4, 1, 2}, Rotation: mgl32.QuatIdent()}, bound: true}
	p := DefaultParam()
	p.AutoAvoid = false
	p.PositionHoming = HomingLerp
	p.PositionRate = mgl32.Vec3{1, 1, 1}

	r := New(p, WithRigs(first, nil))
	r.Update(0.5, DefaultLens())
	assert.Equal(t, mgl32.Vec3{4, 1, 2}, r.Frame().Resolved.Position)

	first.bound = false
	first.pose.Position = mgl32.Vec3{-100, -100, -100}
	got := r.Update(0.5, DefaultLens())

	// keeps homing on the last known target
	assert.Equal(t, mgl32.Vec3{4, 1, 2}, r.Frame().Resolved.Position)
	assertVecInDelta(t, mgl32.Vec3{3, 0.75, 1.5}, got.Position, 1e-5, "position %v", got.Position)
}

func TestUpdateUnboundStartsFromCustomPosition(t *testing.T) {
	p := DefaultParam()
	p.AutoAvoid = false
	p.CustomPosition = mgl32.Vec3{0, 5, -5}

	r := New(p)
	got := r.Update(1.0/60, DefaultLens())
	assert.Equal(t, mgl32.Vec3{0, 5, -5}, got.Position)
}

func TestSetParamAppliesWholesale(t *testing.T) {
	first := at(1, 1, 1)
	third := at(0, 3, -6)

	p := DefaultParam()
	p.AutoAvoid = false
	r := New(p, WithRigs(first, third))
	r.Update(1.0/60, DefaultLens())
	require.Equal(t, first.Position, r.Pose().Position)

	next := DefaultParam()
	next.AutoAvoid = false
	next.PositionMode = PositionThirdPerson
	next.RotationMode = RotationCustom
	next.CustomRotation = mgl32.Vec3{0, 180, 0}
	r.SetParam(next)

	// nothing moves until the next update
	assert.Equal(t, first.Position, r.Pose().Position)
	assert.Equal(t, next, r.Param())

	got := r.Update(1.0/60, DefaultLens())
	assert.Equal(t, third.Position, got.Position)
	assert.InDelta(t, 1.0, float64(abs32(got.Rotation.Dot(common.EulerToQuat(next.CustomRotation)))), 1e-6)
}

func TestUpdateStopHoldsPose(t *testing.T) {
	p := DefaultParam()
	p.AutoAvoid = false
	p.PositionMode = PositionCustom
	p.RotationMode = RotationCustom
	p.PositionHoming = HomingStop
	p.RotationHoming = HomingStop
	p.CustomPosition = mgl32.Vec3{9, 9, 9}
	p.CustomRotation = mgl32.Vec3{45, 45, 0}

	start := Pose{Position: mgl32.Vec3{1, 0, 0}, Rotation: common.EulerToQuat(mgl32.Vec3{0, 10, 0})}
	r := New(p, WithPose(start))
	for i := 0; i < 10; i++ {
		r.Update(0.1, DefaultLens())
	}
	assert.Equal(t, start, r.Pose())
}

func TestBindLogsMissingRigPoints(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	r := New(DefaultParam(), WithLogger(logger))
	finder := finderMap{DefaultFirstPersonName: at(0, 1.6, 0)}
	r.Bind(finder, DefaultFirstPersonName, DefaultThirdPersonName)

	require.NotNil(t, r.FirstPersonRig())
	assert.Nil(t, r.ThirdPersonRig())
	assert.Contains(t, buf.String(), "rig point not found")
	assert.Contains(t, buf.String(), DefaultThirdPersonName)
	assert.NotContains(t, buf.String(), `"rig":"`+DefaultFirstPersonName+`"`)
}

func TestNilRigIsSafe(t *testing.T) {
	var r *Rig
	assert.NotPanics(t, func() {
		r.SetParam(DefaultParam())
		r.Bind(finderMap{}, "a", "b")
		r.SetPose(IdentityPose())
		assert.Equal(t, IdentityPose(), r.Update(1, DefaultLens()))
		assert.Nil(t, r.FirstPersonRig())
	})
}
