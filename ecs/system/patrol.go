package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rigcam/ecs"
	"github.com/milk9111/rigcam/ecs/component"
	"github.com/milk9111/rigcam/rig"
)

// PatrolSystem walks entities along their patrol points.
type PatrolSystem struct{}

func NewPatrolSystem() *PatrolSystem {
	return &PatrolSystem{}
}

func (ps *PatrolSystem) Update(w *ecs.World) {
	dt := float32(w.DeltaTime())
	ecs.ForEach2(w, component.PatrolComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Patrol, t *component.Transform) {
		if len(p.Points) == 0 || p.Speed <= 0 || dt <= 0 {
			return
		}
		budget := p.Speed * dt
		// a long frame may pass several points
		for i := 0; i <= len(p.Points) && budget > 0; i++ {
			goal := p.Points[p.Next]
			delta := goal.Sub(t.Position)
			dist := delta.Len()
			if dist > budget {
				t.Position = t.Position.Add(delta.Mul(budget / dist))
				face(p, t, delta)
				return
			}
			t.Position = goal
			budget -= dist
			face(p, t, delta)
			advance(p)
		}
	})
}

func face(p *component.Patrol, t *component.Transform, heading mgl32.Vec3) {
	if !p.FaceMotion {
		return
	}
	heading[1] = 0
	if q, ok := rig.GazeRotation(mgl32.Vec3{}, heading); ok {
		t.Rotation = q
	}
}

func advance(p *component.Patrol) {
	n := len(p.Points)
	if n < 2 {
		return
	}
	if p.Loop {
		p.Next = (p.Next + 1) % n
		return
	}
	if p.Reverse {
		if p.Next == 0 {
			p.Reverse = false
			p.Next = 1
			return
		}
		p.Next--
		return
	}
	if p.Next == n-1 {
		p.Reverse = true
		p.Next = n - 2
		return
	}
	p.Next++
}
