package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigcam/ecs"
	"github.com/milk9111/rigcam/ecs/component"
	"github.com/milk9111/rigcam/rig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addWall(t *testing.T, w *ecs.World, wall component.Wall, category uint32) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.WallComponent.Kind(), &wall))
	if category != 0 {
		require.NoError(t, ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: category}))
	}
	return e
}

func addFloor(t *testing.T, w *ecs.World, floor component.Floor) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.FloorComponent.Kind(), &floor))
	return e
}

func TestPhysicsSegmentCastWalls(t *testing.T) {
	w := ecs.NewWorld()
	// thin wall across x = 5, three units tall
	addWall(t, w, component.Wall{A: mgl32.Vec2{5, -10}, B: mgl32.Vec2{5, 10}, MinY: 0, MaxY: 3}, 0)
	// low hedge on layer 4 at x = 2
	addWall(t, w, component.Wall{A: mgl32.Vec2{2, -10}, B: mgl32.Vec2{2, 10}, MinY: 0, MaxY: 1}, 4)

	ps := NewPhysicsSystem()
	ps.Update(w)

	cases := []struct {
		name     string
		from, to mgl32.Vec3
		mask     rig.Mask
		hit      bool
		distance float32
	}{
		{"straight_through_wall", mgl32.Vec3{0, 2, 0}, mgl32.Vec3{10, 2, 0}, rig.AllLayers, true, 5},
		{"over_the_wall", mgl32.Vec3{0, 4, 0}, mgl32.Vec3{10, 4, 0}, rig.AllLayers, false, 0},
		{"hedge_blocks_low_ray", mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{10, 0.5, 0}, rig.AllLayers, true, 2},
		{"hedge_masked_out", mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{10, 0.5, 0}, rig.Mask(1), true, 5},
		{"everything_masked_out", mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{10, 0.5, 0}, rig.Mask(8), false, 0},
		{"short_of_wall", mgl32.Vec3{0, 2, 0}, mgl32.Vec3{4, 2, 0}, rig.AllLayers, false, 0},
		{"sloped_crossing", mgl32.Vec3{0, 4, 0}, mgl32.Vec3{10, 0, 0}, rig.Mask(1), true, float32(math.Sqrt(25 + 4))},
		{"vertical_segment", mgl32.Vec3{5, 10, 0}, mgl32.Vec3{5, -10, 0}, rig.AllLayers, false, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			hit, ok := ps.SegmentCast(c.from, c.to, c.mask)
			require.Equal(t, c.hit, ok)
			if !ok {
				return
			}
			assert.InDelta(t, float64(c.distance), float64(hit.Distance), 1e-4)
			dir := c.to.Sub(c.from).Normalize()
			assertVecInDelta(t, c.from.Add(dir.Mul(hit.Distance)), hit.Point, 1e-4)
		})
	}
}

func TestPhysicsThickWallEnteredFromAbove(t *testing.T) {
	w := ecs.NewWorld()
	addWall(t, w, component.Wall{A: mgl32.Vec2{0, -1}, B: mgl32.Vec2{0, 1}, MinY: 0, MaxY: 2, Radius: 0.5}, 0)
	ps := NewPhysicsSystem()
	ps.Update(w)

	// crosses the footprint between x = -0.5 and 0.5 while dropping from
	// y = 2.5 to 1.5, so it enters through the top at y = 2
	from := mgl32.Vec3{-3, 5, 0}
	to := mgl32.Vec3{3, -1, 0}
	hit, ok := ps.SegmentCast(from, to, rig.AllLayers)
	require.True(t, ok)
	assert.InDelta(t, 0.5*math.Sqrt(72), float64(hit.Distance), 1e-3)
	assert.InDelta(t, 2.0, float64(hit.Point[1]), 1e-3)
}

func TestPhysicsSegmentCastFloors(t *testing.T) {
	w := ecs.NewWorld()
	addFloor(t, w, component.Floor{Y: 0, Min: mgl32.Vec2{-5, -5}, Max: mgl32.Vec2{5, 5}})
	ps := NewPhysicsSystem()
	ps.Update(w)

	cases := []struct {
		name     string
		from, to mgl32.Vec3
		hit      bool
		distance float32
	}{
		{"down_through_floor", mgl32.Vec3{0, 2, 0}, mgl32.Vec3{0, -2, 0}, true, 2},
		{"up_through_floor", mgl32.Vec3{1, -1, 1}, mgl32.Vec3{1, 3, 1}, true, 1},
		{"outside_bounds", mgl32.Vec3{6, 2, 0}, mgl32.Vec3{6, -2, 0}, false, 0},
		{"starting_on_floor", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 3, 0}, false, 0},
		{"parallel", mgl32.Vec3{-4, 1, 0}, mgl32.Vec3{4, 1, 0}, false, 0},
		{"ends_on_floor", mgl32.Vec3{0, 2, 0}, mgl32.Vec3{0, 0, 0}, false, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			hit, ok := ps.SegmentCast(c.from, c.to, rig.AllLayers)
			require.Equal(t, c.hit, ok)
			if ok {
				assert.InDelta(t, float64(c.distance), float64(hit.Distance), 1e-5)
			}
		})
	}
}

func TestPhysicsNearestOfWallAndFloor(t *testing.T) {
	w := ecs.NewWorld()
	addWall(t, w, component.Wall{A: mgl32.Vec2{3, -10}, B: mgl32.Vec2{3, 10}, MinY: -10, MaxY: 10}, 0)
	addFloor(t, w, component.Floor{Y: 0, Min: mgl32.Vec2{-10, -10}, Max: mgl32.Vec2{10, 10}})
	ps := NewPhysicsSystem()
	ps.Update(w)

	// floor at x = 1, wall at x = 3
	hit, ok := ps.SegmentCast(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{4, -3, 0}, rig.AllLayers)
	require.True(t, ok)
	assert.InDelta(t, math.Sqrt2, float64(hit.Distance), 1e-4)
}

func TestPhysicsTracksWallLifecycle(t *testing.T) {
	w := ecs.NewWorld()
	e := addWall(t, w, component.Wall{A: mgl32.Vec2{5, -10}, B: mgl32.Vec2{5, 10}, MinY: 0, MaxY: 3}, 0)
	ps := NewPhysicsSystem()
	ps.Update(w)

	from, to := mgl32.Vec3{0, 1, 0}, mgl32.Vec3{10, 1, 0}
	_, ok := ps.SegmentCast(from, to, rig.AllLayers)
	require.True(t, ok)

	// a second sync must not add the shape twice
	ps.Update(w)
	count := 0
	ps.Space().EachShape(func(*cp.Shape) { count++ })
	assert.Equal(t, 1, count)

	require.True(t, ecs.DestroyEntity(w, e))
	ps.Update(w)
	_, ok = ps.SegmentCast(from, to, rig.AllLayers)
	assert.False(t, ok)
}

func TestPhysicsDegenerateSegment(t *testing.T) {
	ps := NewPhysicsSystem()
	ps.Update(ecs.NewWorld())
	p := mgl32.Vec3{1, 1, 1}
	_, ok := ps.SegmentCast(p, p, rig.AllLayers)
	assert.False(t, ok)
}
