package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigcam/ecs"
	"github.com/milk9111/rigcam/ecs/component"
	"github.com/milk9111/rigcam/rig"
)

// wallBody is stored as UserData on each wall shape.
type wallBody struct {
	entity ecs.Entity
	minY   float64
	maxY   float64
}

type floorBody struct {
	entity   ecs.Entity
	floor    component.Floor
	category uint32
}

// PhysicsSystem keeps a Chipmunk space of the level's walls and answers the
// camera rig's scene queries. Walls are vertical, so the space lives in the
// XZ plane and heights are checked after the fact. Floors are horizontal and
// tested directly.
type PhysicsSystem struct {
	space  *cp.Space
	walls  map[ecs.Entity]*cp.Shape
	floors []floorBody
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space: cp.NewSpace(),
		walls: make(map[ecs.Entity]*cp.Shape),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Update syncs the space with the world's wall and floor components.
func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	seen := make(map[ecs.Entity]bool, len(ps.walls))
	ecs.ForEach(w, component.WallComponent.Kind(), func(e ecs.Entity, wall *component.Wall) {
		seen[e] = true
		if wall.Shape != nil && ps.walls[e] == wall.Shape {
			return
		}
		ps.removeWall(e)
		wall.Shape = ps.addWall(e, wall, categoryOf(w, e))
		ps.walls[e] = wall.Shape
	})
	for e := range ps.walls {
		if !seen[e] {
			ps.removeWall(e)
		}
	}

	ps.floors = ps.floors[:0]
	ecs.ForEach(w, component.FloorComponent.Kind(), func(e ecs.Entity, floor *component.Floor) {
		ps.floors = append(ps.floors, floorBody{entity: e, floor: *floor, category: categoryOf(w, e)})
	})
}

func categoryOf(w *ecs.World, e ecs.Entity) uint32 {
	if layer, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok && layer.Category != 0 {
		return layer.Category
	}
	return 1
}

func (ps *PhysicsSystem) addWall(e ecs.Entity, wall *component.Wall, category uint32) *cp.Shape {
	a := cp.Vector{X: float64(wall.A[0]), Y: float64(wall.A[1])}
	b := cp.Vector{X: float64(wall.B[0]), Y: float64(wall.B[1])}
	shape := cp.NewSegment(ps.space.StaticBody, a, b, float64(wall.Radius))
	shape.Filter = cp.NewShapeFilter(cp.NO_GROUP, uint(category), cp.ALL_CATEGORIES)
	shape.UserData = wallBody{entity: e, minY: float64(wall.MinY), maxY: float64(wall.MaxY)}
	return ps.space.AddShape(shape)
}

func (ps *PhysicsSystem) removeWall(e ecs.Entity) {
	shape, ok := ps.walls[e]
	if !ok {
		return
	}
	if shape != nil && shape.Space() == ps.space {
		ps.space.RemoveShape(shape)
	}
	delete(ps.walls, e)
}

// SegmentCast reports the first wall or floor between from and to whose
// category is in mask.
func (ps *PhysicsSystem) SegmentCast(from, to mgl32.Vec3, mask rig.Mask) (rig.Hit, bool) {
	if ps == nil || ps.space == nil {
		return rig.Hit{}, false
	}

	p0 := [3]float64{float64(from[0]), float64(from[1]), float64(from[2])}
	d := [3]float64{float64(to[0]) - p0[0], float64(to[1]) - p0[1], float64(to[2]) - p0[2]}
	length := math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
	if length < float64(rig.Epsilon) {
		return rig.Hit{}, false
	}

	best := math.Inf(1)

	a := cp.Vector{X: p0[0], Y: p0[2]}
	b := cp.Vector{X: p0[0] + d[0], Y: p0[2] + d[2]}
	if a.Distance(b) >= float64(rig.Epsilon) {
		filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
		ps.space.SegmentQuery(a, b, 0, filter, func(shape *cp.Shape, _, _ cp.Vector, alpha float64, _ interface{}) {
			body, ok := shape.UserData.(wallBody)
			if !ok {
				return
			}
			exit := footprintExit(shape, a, b, alpha)
			t, ok := wallSpan(p0[1], d[1], body, alpha, exit)
			if ok && t < 1 && t < best {
				best = t
			}
		}, nil)
	}

	for i := range ps.floors {
		fb := &ps.floors[i]
		if uint32(mask)&fb.category == 0 {
			continue
		}
		if t, ok := segmentFloorHit(p0, d, &fb.floor); ok && t < best {
			best = t
		}
	}

	if math.IsInf(best, 1) {
		return rig.Hit{}, false
	}
	t := float32(best)
	return rig.Hit{
		Distance: float32(best * length),
		Point:    from.Add(to.Sub(from).Mul(t)),
	}, true
}
