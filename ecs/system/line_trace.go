package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigcam/ecs/component"
)

// clipSlab clips the parameter range [tmin, tmax] of the line p0 + t*d to
// the slab lo <= p <= hi along one axis.
func clipSlab(p0, d, lo, hi, tmin, tmax float64) (float64, float64, bool) {
	if d == 0 {
		if p0 < lo || p0 > hi {
			return 0, 0, false
		}
		return tmin, tmax, true
	}
	inv := 1.0 / d
	t1 := (lo - p0) * inv
	t2 := (hi - p0) * inv
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	tmin = math.Max(tmin, t1)
	tmax = math.Min(tmax, t2)
	return tmin, tmax, tmax >= tmin
}

// wallSpan intersects the footprint interval [tin, tout] of a wall, found in
// the XZ plane, with the wall's height range. It returns the parameter where
// the segment first enters the wall volume.
func wallSpan(y0, dy float64, wall wallBody, tin, tout float64) (float64, bool) {
	tmin, _, ok := clipSlab(y0, dy, wall.minY, wall.maxY, tin, tout)
	if !ok {
		return 0, false
	}
	return tmin, true
}

// footprintExit finds where the XZ segment a-b leaves shape by querying it
// backwards. It falls back to the entry when the reverse query misses, which
// happens for segments that end inside the shape.
func footprintExit(shape *cp.Shape, a, b cp.Vector, entry float64) float64 {
	var info cp.SegmentQueryInfo
	if !shape.SegmentQuery(b, a, 0, &info) {
		return entry
	}
	if info.Alpha == 0 {
		// b is inside the footprint
		return 1
	}
	return math.Max(entry, 1-info.Alpha)
}

// segmentFloorHit intersects the 3D segment p0 + t*d, t in [0, 1), with a
// horizontal floor. Segments starting on the floor's plane pass through it.
func segmentFloorHit(p0, d [3]float64, floor *component.Floor) (float64, bool) {
	y := float64(floor.Y)
	if d[1] == 0 || p0[1] == y {
		return 0, false
	}
	t := (y - p0[1]) / d[1]
	if t < 0 || t >= 1 {
		return 0, false
	}
	bb := cp.BB{L: float64(floor.Min[0]), B: float64(floor.Min[1]), R: float64(floor.Max[0]), T: float64(floor.Max[1])}
	hit := cp.Vector{X: p0[0] + d[0]*t, Y: p0[2] + d[2]*t}
	if !bb.ContainsVect(hit) {
		return 0, false
	}
	return t, true
}
