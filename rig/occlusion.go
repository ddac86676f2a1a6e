package rig

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ProbeCount is the size of the frustum probe set.
const ProbeCount = 9

// Correction is the outcome of one occlusion pass.
type Correction struct {
	Position mgl32.Vec3
	// Anchored is set when the pass ran against the Target anchor instead of
	// the camera itself.
	Anchored bool
	// Probes are the frustum probes used by the self-relative pass. They are
	// zero when Anchored is set.
	Probes [ProbeCount]mgl32.Vec3
	Hits   int
}

// FrustumProbes builds the nine near-plane probes for a camera oriented like
// axes: four corners, four edge midpoints and the forward axis, in that order.
func FrustumProbes(lens Lens, axes Pose) [ProbeCount]mgl32.Vec3 {
	tan := float32(math.Tan(float64(mgl32.DegToRad(lens.FovY)) / 2))

	f := axes.Forward().Normalize().Mul(lens.Near)
	u := axes.Up().Normalize().Mul(lens.Near * tan)
	r := axes.Right().Normalize().Mul(lens.Near * tan * lens.Aspect)

	return [ProbeCount]mgl32.Vec3{
		f.Add(u).Add(r),
		f.Sub(u).Add(r),
		f.Add(u).Sub(r),
		f.Sub(u).Sub(r),
		f.Add(u),
		f.Sub(u),
		f.Add(r),
		f.Sub(r),
		f,
	}
}

// Correct moves target out of geometry. With an anchor bound, target is pulled
// in front of the first surface between anchor and target. Otherwise the
// camera's own position guards against short blocked moves and the frustum
// probes keep the near plane out of walls.
func Correct(scene SceneQuery, occ Occlusion, anchor Reference, current Pose, lens Lens, target mgl32.Vec3) Correction {
	out := Correction{Position: target}
	if scene == nil {
		return out
	}

	if a, ok := lookup(anchor); ok {
		out.Anchored = true
		if hit, ok := scene.SegmentCast(a.Position, target, occ.Mask); ok {
			out.Hits++
			if p, ok := along(a.Position, target, hit.Distance-occ.Clearance); ok {
				out.Position = p
			}
		}
		return out
	}

	if hit, ok := scene.SegmentCast(current.Position, target, occ.Mask); ok {
		if target.Sub(current.Position).Len() < occ.EscapeTrap {
			out.Hits++
			if p, ok := along(current.Position, target, hit.Distance-occ.Clearance); ok {
				out.Position = p
			}
		}
	}

	out.Probes = FrustumProbes(lens, current)
	var hits int
	out.Position, hits = clearFrustum(scene, occ, out.Probes, out.Position)
	out.Hits += hits
	return out
}

// along returns the point dist along the ray from origin through target.
func along(origin, target mgl32.Vec3, dist float32) (mgl32.Vec3, bool) {
	d := target.Sub(origin)
	l := d.Len()
	if l < Epsilon {
		return target, false
	}
	return origin.Add(d.Mul(dist / l)), true
}

func clearFrustum(scene SceneQuery, occ Occlusion, probes [ProbeCount]mgl32.Vec3, target mgl32.Vec3) (mgl32.Vec3, int) {
	base := target
	var shift mgl32.Vec3
	hits := 0

	for _, probe := range probes {
		l := probe.Len()
		if l < Epsilon {
			continue
		}
		from := target
		if occ.Probes == ProbeIndependent {
			from = base
		}
		hit, ok := scene.SegmentCast(from, from.Add(probe), occ.Mask)
		if !ok {
			continue
		}
		hits++
		push := probe.Mul((l - hit.Distance) / l)
		if occ.Probes == ProbeIndependent {
			shift = shift.Sub(push)
		} else {
			target = target.Sub(push)
		}
	}

	if occ.Probes == ProbeIndependent && hits > 0 {
		target = base.Add(shift)
	}
	return target, hits
}
