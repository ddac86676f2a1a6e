package main

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigcam/ecs"
	"github.com/milk9111/rigcam/ecs/component"
	"github.com/milk9111/rigcam/scene"
	"golang.org/x/image/colornames"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
	viewMargin          = 40
)

// view maps the XZ plane to the screen with +Z up.
type view struct {
	centerX, centerZ float64
	scale            float64
	width, height    float64
}

func (v view) toScreen(x, z float64) (float32, float32) {
	sx := v.width/2 + (x-v.centerX)*v.scale
	sy := v.height/2 - (z-v.centerZ)*v.scale
	return float32(sx), float32(sy)
}

func (v view) vec(p mgl32.Vec3) (float32, float32) {
	return v.toScreen(float64(p[0]), float64(p[2]))
}

// fitView frames every wall and floor of the scene.
func fitView(s *scene.Scene, width, height int) view {
	bb := cp.BB{L: math.Inf(1), B: math.Inf(1), R: math.Inf(-1), T: math.Inf(-1)}
	grow := func(x, z float32) {
		bb = bb.Expand(cp.Vector{X: float64(x), Y: float64(z)})
	}
	ecs.ForEach(s.World, component.WallComponent.Kind(), func(_ ecs.Entity, w *component.Wall) {
		grow(w.A[0], w.A[1])
		grow(w.B[0], w.B[1])
	})
	ecs.ForEach(s.World, component.FloorComponent.Kind(), func(_ ecs.Entity, f *component.Floor) {
		grow(f.Min[0], f.Min[1])
		grow(f.Max[0], f.Max[1])
	})

	v := view{scale: 20, width: float64(width), height: float64(height)}
	if bb.L > bb.R {
		return v
	}
	c := bb.Center()
	v.centerX, v.centerZ = c.X, c.Y
	sx := (v.width - 2*viewMargin) / math.Max(bb.R-bb.L, 1)
	sz := (v.height - 2*viewMargin) / math.Max(bb.T-bb.B, 1)
	v.scale = math.Min(sx, sz)
	return v
}

func (vw *viewer) drawScene(screen *ebiten.Image) {
	s := vw.scene
	v := vw.view

	ecs.ForEach(s.World, component.FloorComponent.Kind(), func(_ ecs.Entity, f *component.Floor) {
		x0, y0 := v.toScreen(float64(f.Min[0]), float64(f.Max[1]))
		x1, y1 := v.toScreen(float64(f.Max[0]), float64(f.Min[1]))
		vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 1, color.RGBA{R: 0x40, G: 0x48, B: 0x50, A: 0xff}, false)
	})

	cp.DrawSpace(s.Physics.Space(), &spaceDrawer{screen: screen, view: v})

	ecs.ForEach2(s.World, component.EntityNameComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, n *component.EntityName, t *component.Transform) {
		switch {
		case ecs.Has(s.World, e, component.CameraRigComponent.Kind()):
			return
		case ecs.Has(s.World, e, component.RigPointTagComponent.Kind()):
			drawMarker(screen, v, t, 3, colornames.Skyblue)
		case ecs.Has(s.World, e, component.PatrolComponent.Kind()):
			drawMarker(screen, v, t, 6, colornames.Crimson)
		default:
			drawMarker(screen, v, t, 5, colornames.Gold)
		}
	})

	pose, frame, ok := s.CameraPose()
	if !ok {
		return
	}
	cx, cy := v.vec(pose.Position)

	if !frame.Correction.Anchored {
		for _, probe := range frame.Correction.Probes {
			// probes are short; stretch them so they read at level scale
			px, py := v.vec(pose.Position.Add(probe.Mul(4)))
			vector.StrokeLine(screen, cx, cy, px, py, 1, color.RGBA{R: 0x80, G: 0x80, B: 0xff, A: 0x90}, true)
		}
	}

	rx, ry := v.vec(frame.Resolved.Position)
	tx, ty := v.vec(frame.Correction.Position)
	vector.StrokeLine(screen, cx, cy, rx, ry, 1, colornames.Dimgray, true)
	vector.StrokeCircle(screen, rx, ry, 4, 1, colornames.Lightgray, true)
	if frame.Correction.Hits > 0 {
		vector.StrokeLine(screen, rx, ry, tx, ty, 1, colornames.Orange, true)
		vector.FillCircle(screen, tx, ty, 3, colornames.Orange, true)
	}

	fx, fy := v.vec(pose.Position.Add(pose.Forward().Mul(2)))
	vector.StrokeLine(screen, cx, cy, fx, fy, 2, colornames.Lime, true)
	vector.FillCircle(screen, cx, cy, 6, colornames.Lime, true)
}

func drawMarker(screen *ebiten.Image, v view, t *component.Transform, r float32, clr color.Color) {
	x, y := v.vec(t.Position)
	vector.FillCircle(screen, x, y, r, clr, true)
	hx, hy := v.vec(t.Position.Add(t.Rotation.Rotate(mgl32.Vec3{0, 0, 1}).Mul(1)))
	vector.StrokeLine(screen, x, y, hx, hy, 1, clr, true)
}

// spaceDrawer renders the physics space's wall footprints.
type spaceDrawer struct {
	screen *ebiten.Image
	view   view
}

func (d *spaceDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline, 1)
}

func (d *spaceDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill, 1)
}

func (d *spaceDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	width := float32(math.Max(2*radius*d.view.scale, 2))
	d.drawLine(a, b, fill, width)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *spaceDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	for i := 0; i < count; i++ {
		d.drawLine(verts[i], verts[(i+1)%count], outline, 1)
	}
}

func (d *spaceDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	x, y := d.view.toScreen(pos.X, pos.Y)
	vector.FillCircle(d.screen, x, y, float32(size/2), toNRGBA(fill), true)
}

func (d *spaceDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *spaceDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

// ShapeColor tints walls by collision category.
func (d *spaceDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	switch shape.Filter.Categories {
	case 1:
		return cp.FColor{R: 0.7, G: 0.7, B: 0.75, A: 1}
	case 2:
		return cp.FColor{R: 0.9, G: 0.6, B: 0.2, A: 1}
	case 4:
		return cp.FColor{R: 0.2, G: 0.7, B: 0.3, A: 1}
	default:
		return cp.FColor{R: 0.6, G: 0.4, B: 0.8, A: 1}
	}
}

func (d *spaceDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *spaceDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *spaceDrawer) Data() interface{} {
	return nil
}

func (d *spaceDrawer) drawLine(a, b cp.Vector, c cp.FColor, width float32) {
	x1, y1 := d.view.toScreen(a.X, a.Y)
	x2, y2 := d.view.toScreen(b.X, b.Y)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, width, toNRGBA(c), true)
}

func (d *spaceDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	if radius <= 0 {
		return
	}
	prev := cp.Vector{X: center.X + radius, Y: center.Y}
	for i := 1; i <= debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		next := cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius}
		d.drawLine(prev, next, c, 1)
		prev = next
	}
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(mgl32.Clamp(c.R, 0, 1) * 255),
		G: uint8(mgl32.Clamp(c.G, 0, 1) * 255),
		B: uint8(mgl32.Clamp(c.B, 0, 1) * 255),
		A: uint8(mgl32.Clamp(c.A, 0, 1) * 255),
	}
}
