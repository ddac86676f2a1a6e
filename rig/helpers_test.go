package rig

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

type castCall struct {
	from mgl32.Vec3
	to   mgl32.Vec3
	mask Mask
}

// scriptedScene answers every cast with the result of hit and records the calls.
type scriptedScene struct {
	calls []castCall
	hit   func(from, to mgl32.Vec3) (Hit, bool)
}

func (s *scriptedScene) SegmentCast(from, to mgl32.Vec3, mask Mask) (Hit, bool) {
	s.calls = append(s.calls, castCall{from: from, to: to, mask: mask})
	if s.hit == nil {
		return Hit{}, false
	}
	return s.hit(from, to)
}

// planeZ is an infinite wall at z = Z facing -z.
type planeZ struct {
	Z float32
}

func (p planeZ) SegmentCast(from, to mgl32.Vec3, mask Mask) (Hit, bool) {
	dz := to[2] - from[2]
	if dz == 0 {
		return Hit{}, false
	}
	t := (p.Z - from[2]) / dz
	if t < 0 || t >= 1 {
		return Hit{}, false
	}
	d := to.Sub(from)
	return Hit{Distance: d.Len() * t, Point: from.Add(d.Mul(t))}, true
}

// hitFrom reports a hit at dist for any segment starting at origin.
func hitFrom(origin mgl32.Vec3, dist float32) func(from, to mgl32.Vec3) (Hit, bool) {
	return func(from, to mgl32.Vec3) (Hit, bool) {
		if from != origin {
			return Hit{}, false
		}
		dir := to.Sub(from).Normalize()
		return Hit{Distance: dist, Point: from.Add(dir.Mul(dist))}, true
	}
}

// movable is a Reference whose presence can be toggled.
type movable struct {
	pose  Pose
	bound bool
}

func (m *movable) Pose() (Pose, bool) {
	return m.pose, m.bound
}

type finderMap map[string]Reference

func (f finderMap) FindByName(name string) (Reference, bool) {
	ref, ok := f[name]
	return ref, ok
}

func at(x, y, z float32) Fixed {
	return Fixed{Position: mgl32.Vec3{x, y, z}, Rotation: mgl32.QuatIdent()}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func assertVecInDelta(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	ok := true
	for i := range want {
		ok = assert.InDelta(t, float64(want[i]), float64(got[i]), delta, msgAndArgs...) && ok
	}
	return ok
}

// assertQuatInDelta treats q and -q as the same rotation.
func assertQuatInDelta(t *testing.T, want, got mgl32.Quat, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	if want.Dot(got) < 0 {
		got = got.Scale(-1)
	}
	ok := assert.InDelta(t, float64(want.W), float64(got.W), delta, msgAndArgs...)
	return assertVecInDelta(t, want.V, got.V, delta, msgAndArgs...) && ok
}
